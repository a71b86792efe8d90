package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	getBannerStatsURL = "/api/banners/stats"
)

type GetBannerStatsUsecase interface {
	GetBannerStats(ctx context.Context) (entity.BannerStats, error)
}

type getBannerStatsHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetBannerStatsUsecase
}

func NewGetBannerStatsHandler(usecase GetBannerStatsUsecase) *getBannerStatsHandler {
	return &getBannerStatsHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getBannerStatsHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getBannerStatsURL, handler.ServeHTTP)
}

func (h *getBannerStatsHandler) Middlewares(md ...func(http.Handler) http.Handler) *getBannerStatsHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getBannerStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	stats, err := h.usecase.GetBannerStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(stats)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
