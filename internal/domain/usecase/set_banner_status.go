package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type setBannerStatusUsecase struct {
	bannerService BannerService
}

func NewSetBannerStatusUsecase(bannerService BannerService) *setBannerStatusUsecase {
	return &setBannerStatusUsecase{bannerService}
}

func (u *setBannerStatusUsecase) SetBannerStatus(ctx context.Context, dto entity.SetBannerStatusDTO) error {
	return u.bannerService.SetBannerStatus(ctx, dto)
}
