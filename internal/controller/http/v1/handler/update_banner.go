package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/go-chi/chi/v5"
)

const (
	updateBannerURL = "/api/banners/{id}"
)

type UpdateBannerUsecase interface {
	UpdateBanner(ctx context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error)
}

type updateBannerHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     UpdateBannerUsecase
}

func NewUpdateBannerHandler(usecase UpdateBannerUsecase) *updateBannerHandler {
	return &updateBannerHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *updateBannerHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Put(updateBannerURL, handler.ServeHTTP)
}

func (h *updateBannerHandler) Middlewares(md ...func(http.Handler) http.Handler) *updateBannerHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *updateBannerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	var dto entity.UpdateBannerDTO

	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		http.Error(w, "error decoding json request body", http.StatusBadRequest)
		return
	}

	dto.BannerID = chi.URLParam(r, "id")

	banner, err := h.usecase.UpdateBanner(r.Context(), dto)
	if err != nil {
		switch errors.Code(err) {
		case errors.ErrNoDataFound:
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case errors.ErrInvalidBanner:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(banner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
