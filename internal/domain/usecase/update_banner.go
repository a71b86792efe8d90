package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type updateBannerUsecase struct {
	bannerService BannerService
}

func NewUpdateBannerUsecase(bannerService BannerService) *updateBannerUsecase {
	return &updateBannerUsecase{bannerService}
}

func (u *updateBannerUsecase) UpdateBanner(ctx context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error) {
	return u.bannerService.UpdateBanner(ctx, dto)
}
