package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type getAllBannersUsecase struct {
	bannerService BannerService
}

func NewGetAllBannersUsecase(bannerService BannerService) *getAllBannersUsecase {
	return &getAllBannersUsecase{bannerService}
}

func (u *getAllBannersUsecase) GetAllBanners(ctx context.Context) ([]entity.AdminBanner, error) {
	return u.bannerService.GetAllBanners(ctx)
}
