package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	getPopupBannerURL = "/api/banners/popup"

	// SessionHeader carries the browsing-session identifier the popup
	// frequency gate keys its dismiss markers by.
	SessionHeader = "X-Session-ID"
)

type GetPopupBannerUsecase interface {
	GetPopupBanner(ctx context.Context, dto entity.GetPopupBannerDTO) (entity.Banner, bool, error)
}

type getPopupBannerHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetPopupBannerUsecase
}

func NewGetPopupBannerHandler(usecase GetPopupBannerUsecase) *getPopupBannerHandler {
	return &getPopupBannerHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getPopupBannerHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getPopupBannerURL, handler.ServeHTTP)
}

func (h *getPopupBannerHandler) Middlewares(md ...func(http.Handler) http.Handler) *getPopupBannerHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getPopupBannerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		http.Error(w, "missing "+SessionHeader+" header", http.StatusBadRequest)
		return
	}

	device := entity.Device(r.URL.Query().Get("device"))
	if device == "" {
		device = entity.DeviceDesktop
	}
	if !device.Valid() {
		http.Error(w, "unknown device class", http.StatusBadRequest)
		return
	}

	banner, found, err := h.usecase.GetPopupBanner(r.Context(), entity.GetPopupBannerDTO{
		SessionID: sessionID,
		Category:  r.URL.Query().Get("category"),
		Device:    device,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(banner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
