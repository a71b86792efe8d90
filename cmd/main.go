package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	cache "github.com/kalakriti/banner-engine/internal/adapter/cache/redis"
	db "github.com/kalakriti/banner-engine/internal/adapter/db/postgres"
	"github.com/kalakriti/banner-engine/internal/config"
	middleware "github.com/kalakriti/banner-engine/internal/controller/http/v1/middleware"
	v1 "github.com/kalakriti/banner-engine/internal/controller/http/v1/server"
	"github.com/kalakriti/banner-engine/internal/domain/resolution"
	"github.com/kalakriti/banner-engine/internal/domain/service"
	"github.com/kalakriti/banner-engine/internal/domain/usecase"
	"github.com/kalakriti/banner-engine/internal/logger"
	"github.com/kalakriti/banner-engine/pkg/client/postgresql"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	configFile := os.Getenv("CONFIG_FILE")
	cfg := config.MustBuild(configFile)

	logger.Initialize(cfg.LogLevel)
	slog.Info("config is built", "struct", cfg)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", cfg.DB.Username, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.DbName)
	postgresClient, err := postgresql.NewClient(context.Background(), dsn)
	if err != nil {
		return err
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: "",
		DB:       0,
	})

	err = db.RunMigrations(dsn)
	if err != nil {
		return err
	}

	bannerStorage := db.NewBannerStorage(postgresClient)
	bannerCache := cache.NewRedisCache(redisClient, cfg.CacheExpiry)
	markerStore := cache.NewMarkerStore(redisClient)
	tokenStorage := db.NewTokenStorage(postgresClient)

	sessionTTL := time.Duration(cfg.SessionExpiry) * time.Second
	gate := resolution.NewGate(markerStore, sessionTTL)

	bannerService := service.NewBannerService(bannerStorage, bannerCache)
	popupService := service.NewPopupService(bannerService, bannerStorage, gate)
	trackerService := service.NewTrackerService(bannerStorage)
	tokenService := service.NewTokenService(tokenStorage)
	uploadService, err := service.NewUploadService(cfg.UploadDir)
	if err != nil {
		return err
	}

	uploadImageUsecase := usecase.NewUploadImageUsecase(uploadService)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.BeaconRate), cfg.BeaconBurst)

	s, err := v1.NewServer(
		cfg.RunAddress,
		v1.Usecases{
			CreateBanner:        usecase.NewCreateBannerUsecase(bannerService),
			UpdateBanner:        usecase.NewUpdateBannerUsecase(bannerService),
			SetBannerStatus:     usecase.NewSetBannerStatusUsecase(bannerService),
			DeleteBanner:        usecase.NewDeleteBannerUsecase(bannerService),
			GetPlacementBanners: usecase.NewGetPlacementBannersUsecase(bannerService),
			GetAllBanners:       usecase.NewGetAllBannersUsecase(bannerService),
			GetBannerStats:      usecase.NewGetBannerStatsUsecase(trackerService),
			GetPopupBanner:      usecase.NewGetPopupBannerUsecase(popupService),
			DismissPopup:        usecase.NewDismissPopupUsecase(popupService),
			TrackEvent:          usecase.NewTrackEventUsecase(trackerService),
			UploadImage:         uploadImageUsecase,
			OpenUpload:          uploadImageUsecase,
			CheckToken:          usecase.NewCheckTokenUsecase(tokenService),
		},
		limiter,
	)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		<-ctx.Done()

		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Stop(ctxShutdown)
		if err != nil {
			panic(err)
		}
		slog.Info("server was successfuly shutdown")
	}()

	slog.Info("starting server")
	if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
	}

	wg.Wait()

	return nil
}
