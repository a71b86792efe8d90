package service

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/usecase"
)

var _ usecase.TrackerService = new(trackerService)

type trackerService struct {
	storage BannerStorage
}

func NewTrackerService(storage BannerStorage) *trackerService {
	return &trackerService{storage: storage}
}

func (service *trackerService) Track(ctx context.Context, dto entity.TrackEventDTO) error {
	return service.storage.IncrementCounter(ctx, dto)
}

func (service *trackerService) GetStats(ctx context.Context) (entity.BannerStats, error) {
	return service.storage.GetStats(ctx)
}
