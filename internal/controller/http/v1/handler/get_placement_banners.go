package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/resolution"
	"github.com/go-chi/chi/v5"
)

const (
	getPlacementBannersURL = "/api/banners"
)

type GetPlacementBannersUsecase interface {
	GetPlacementBanners(ctx context.Context, dto entity.GetPlacementBannersDTO) ([]entity.Banner, error)
}

type getPlacementBannersHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetPlacementBannersUsecase
}

func NewGetPlacementBannersHandler(usecase GetPlacementBannersUsecase) *getPlacementBannersHandler {
	return &getPlacementBannersHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getPlacementBannersHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getPlacementBannersURL, handler.ServeHTTP)
}

func (h *getPlacementBannersHandler) Middlewares(md ...func(http.Handler) http.Handler) *getPlacementBannersHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getPlacementBannersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	placement := entity.Placement(r.URL.Query().Get("placement"))
	if !placement.Valid() {
		http.Error(w, "unknown placement", http.StatusBadRequest)
		return
	}

	device := entity.Device(r.URL.Query().Get("device"))
	if device == "" {
		// a caller may report its viewport width instead of a class
		if strWidth := r.URL.Query().Get("vw"); strWidth != "" {
			width, err := strconv.Atoi(strWidth)
			if err != nil {
				http.Error(w, "invalid viewport width", http.StatusBadRequest)
				return
			}
			device = resolution.DeviceClassFromWidth(width)
		} else {
			device = entity.DeviceDesktop
		}
	}
	if !device.Valid() {
		http.Error(w, "unknown device class", http.StatusBadRequest)
		return
	}

	banners, err := h.usecase.GetPlacementBanners(r.Context(), entity.GetPlacementBannersDTO{
		Placement: placement,
		Category:  r.URL.Query().Get("category"),
		Device:    device,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if banners == nil {
		banners = []entity.Banner{}
	}

	slog.Debug("resolved placement", "placement", placement, "count", len(banners))

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(banners)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
