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
	createBannerURL = "/api/banners"
)

type CreateBannerUsecase interface {
	CreateBanner(ctx context.Context, dto entity.CreateBannerDTO) (entity.Banner, error)
}

type createBannerHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     CreateBannerUsecase
}

func NewCreateBannerHandler(usecase CreateBannerUsecase) *createBannerHandler {
	return &createBannerHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *createBannerHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Post(createBannerURL, handler.ServeHTTP)
}

func (h *createBannerHandler) Middlewares(md ...func(http.Handler) http.Handler) *createBannerHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *createBannerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	var dto entity.CreateBannerDTO

	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		http.Error(w, "error decoding json request body", http.StatusBadRequest)
		return
	}

	banner, err := h.usecase.CreateBanner(r.Context(), dto)
	if err != nil {
		switch errors.Code(err) {
		case errors.ErrInvalidBanner, errors.ErrAlreadyExists:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(banner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
