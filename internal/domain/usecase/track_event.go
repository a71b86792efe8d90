package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type TrackerService interface {
	Track(ctx context.Context, dto entity.TrackEventDTO) error
	GetStats(ctx context.Context) (entity.BannerStats, error)
}

type trackEventUsecase struct {
	trackerService TrackerService
}

func NewTrackEventUsecase(trackerService TrackerService) *trackEventUsecase {
	return &trackEventUsecase{trackerService}
}

func (u *trackEventUsecase) Track(ctx context.Context, dto entity.TrackEventDTO) error {
	return u.trackerService.Track(ctx, dto)
}
