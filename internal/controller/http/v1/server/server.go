package v1

import (
	"context"
	"net/http"

	handlers "github.com/kalakriti/banner-engine/internal/controller/http/v1/handler"
	middleware "github.com/kalakriti/banner-engine/internal/controller/http/v1/middleware"
	"github.com/go-chi/chi/v5"
)

type Usecases struct {
	CreateBanner        handlers.CreateBannerUsecase
	UpdateBanner        handlers.UpdateBannerUsecase
	SetBannerStatus     handlers.SetBannerStatusUsecase
	DeleteBanner        handlers.DeleteBannerUsecase
	GetPlacementBanners handlers.GetPlacementBannersUsecase
	GetAllBanners       handlers.GetAllBannersUsecase
	GetBannerStats      handlers.GetBannerStatsUsecase
	GetPopupBanner      handlers.GetPopupBannerUsecase
	DismissPopup        handlers.DismissPopupUsecase
	TrackEvent          handlers.TrackEventUsecase
	UploadImage         handlers.UploadImageUsecase
	OpenUpload          handlers.OpenUploadUsecase
	CheckToken          middleware.CheckTokenUsecase
}

type httpServer struct {
	server  *http.Server
	limiter *middleware.RateLimiter
}

func NewServer(address string, u Usecases, limiter *middleware.RateLimiter) (*httpServer, error) {

	auth := middleware.NewAuthMiddleware(u.CheckToken)

	r := chi.NewMux()

	// public storefront surface
	handlers.NewGetPlacementBannersHandler(u.GetPlacementBanners).AddToRouter(r)
	handlers.NewGetPopupBannerHandler(u.GetPopupBanner).AddToRouter(r)
	handlers.NewDismissPopupHandler(u.DismissPopup).AddToRouter(r)
	handlers.NewServeUploadHandler(u.OpenUpload).AddToRouter(r)

	// beacons, rate-limited per IP
	handlers.NewTrackImpressionHandler(u.TrackEvent).Middlewares(limiter.Do).AddToRouter(r)
	handlers.NewTrackClickHandler(u.TrackEvent).Middlewares(limiter.Do).AddToRouter(r)

	// admin surface
	handlers.NewCreateBannerHandler(u.CreateBanner).Middlewares(auth.Do).AddToRouter(r)
	handlers.NewUpdateBannerHandler(u.UpdateBanner).Middlewares(auth.Do).AddToRouter(r)
	handlers.NewSetBannerStatusHandler(u.SetBannerStatus).Middlewares(auth.Do).AddToRouter(r)
	handlers.NewDeleteBannerHandler(u.DeleteBanner).Middlewares(auth.Do).AddToRouter(r)
	handlers.NewGetAllBannersHandler(u.GetAllBanners).Middlewares(auth.Do).AddToRouter(r)
	handlers.NewGetBannerStatsHandler(u.GetBannerStats).Middlewares(auth.Do).AddToRouter(r)
	handlers.NewUploadImageHandler(u.UploadImage).Middlewares(auth.Do).AddToRouter(r)

	server := &http.Server{
		Addr:    address,
		Handler: r,
	}

	return &httpServer{server: server, limiter: limiter}, nil
}

func (s *httpServer) Start() error {
	return s.server.ListenAndServe()
}

func (s *httpServer) Stop(ctx context.Context) error {
	s.limiter.Stop()
	return s.server.Shutdown(ctx)
}
