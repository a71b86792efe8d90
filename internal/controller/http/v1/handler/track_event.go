package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	trackImpressionURL = "/api/banners/{id}/impression"
	trackClickURL      = "/api/banners/{id}/click"
)

type TrackEventUsecase interface {
	Track(ctx context.Context, dto entity.TrackEventDTO) error
}

// trackEventHandler serves the exposure beacons. They are best-effort
// by contract: the response is 204 no matter what, failures are logged
// and never surfaced to the caller.
type trackEventHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     TrackEventUsecase
	event       entity.Event
}

func NewTrackImpressionHandler(usecase TrackEventUsecase) *trackEventHandler {
	return &trackEventHandler{
		usecase:     usecase,
		event:       entity.EventImpression,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func NewTrackClickHandler(usecase TrackEventUsecase) *trackEventHandler {
	return &trackEventHandler{
		usecase:     usecase,
		event:       entity.EventClick,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *trackEventHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	url := trackImpressionURL
	if h.event == entity.EventClick {
		url = trackClickURL
	}
	r.Post(url, handler.ServeHTTP)
}

func (h *trackEventHandler) Middlewares(md ...func(http.Handler) http.Handler) *trackEventHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *trackEventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	err := h.usecase.Track(r.Context(), entity.TrackEventDTO{
		BannerID: chi.URLParam(r, "id"),
		Event:    h.event,
	})
	if err != nil {
		slog.Debug("beacon not recorded", "error", err, "event", h.event)
	}

	w.WriteHeader(http.StatusNoContent)
}
