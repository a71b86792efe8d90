package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	getAllBannersURL = "/api/banners/all"
)

type GetAllBannersUsecase interface {
	GetAllBanners(ctx context.Context) ([]entity.AdminBanner, error)
}

type getAllBannersHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetAllBannersUsecase
}

func NewGetAllBannersHandler(usecase GetAllBannersUsecase) *getAllBannersHandler {
	return &getAllBannersHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getAllBannersHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getAllBannersURL, handler.ServeHTTP)
}

func (h *getAllBannersHandler) Middlewares(md ...func(http.Handler) http.Handler) *getAllBannersHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getAllBannersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	banners, err := h.usecase.GetAllBanners(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if banners == nil {
		banners = []entity.AdminBanner{}
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(banners)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
