package v1

import (
	"context"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/go-chi/chi/v5"
)

const (
	dismissPopupURL = "/api/banners/{id}/dismiss"
)

type DismissPopupUsecase interface {
	DismissPopup(ctx context.Context, dto entity.DismissPopupDTO) error
}

type dismissPopupHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     DismissPopupUsecase
}

func NewDismissPopupHandler(usecase DismissPopupUsecase) *dismissPopupHandler {
	return &dismissPopupHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *dismissPopupHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Post(dismissPopupURL, handler.ServeHTTP)
}

func (h *dismissPopupHandler) Middlewares(md ...func(http.Handler) http.Handler) *dismissPopupHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *dismissPopupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		http.Error(w, "missing "+SessionHeader+" header", http.StatusBadRequest)
		return
	}

	err := h.usecase.DismissPopup(r.Context(), entity.DismissPopupDTO{
		SessionID: sessionID,
		BannerID:  chi.URLParam(r, "id"),
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

	w.WriteHeader(http.StatusNoContent)
}
