package v1

import (
	"context"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/go-chi/chi/v5"
)

const (
	setBannerStatusURL = "/api/banners/{id}/status"
)

type SetBannerStatusUsecase interface {
	SetBannerStatus(ctx context.Context, dto entity.SetBannerStatusDTO) error
}

// setBannerStatusHandler is the quick pause/activate toggle from the
// admin list view, a status-only write without the full edit form.
type setBannerStatusHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     SetBannerStatusUsecase
}

func NewSetBannerStatusHandler(usecase SetBannerStatusUsecase) *setBannerStatusHandler {
	return &setBannerStatusHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *setBannerStatusHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Patch(setBannerStatusURL, handler.ServeHTTP)
}

func (h *setBannerStatusHandler) Middlewares(md ...func(http.Handler) http.Handler) *setBannerStatusHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *setBannerStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	status := entity.Status(r.URL.Query().Get("status"))
	if !status.Valid() {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	err := h.usecase.SetBannerStatus(r.Context(), entity.SetBannerStatusDTO{
		BannerID: chi.URLParam(r, "id"),
		Status:   status,
	})
	if err != nil {
		switch errors.Code(err) {
		case errors.ErrNoDataFound:
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
