package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type getBannerStatsUsecase struct {
	trackerService TrackerService
}

func NewGetBannerStatsUsecase(trackerService TrackerService) *getBannerStatsUsecase {
	return &getBannerStatsUsecase{trackerService}
}

func (u *getBannerStatsUsecase) GetBannerStats(ctx context.Context) (entity.BannerStats, error) {
	return u.trackerService.GetStats(ctx)
}
