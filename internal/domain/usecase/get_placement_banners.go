package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type getPlacementBannersUsecase struct {
	bannerService BannerService
}

func NewGetPlacementBannersUsecase(bannerService BannerService) *getPlacementBannersUsecase {
	return &getPlacementBannersUsecase{bannerService}
}

func (u *getPlacementBannersUsecase) GetPlacementBanners(ctx context.Context, dto entity.GetPlacementBannersDTO) ([]entity.Banner, error) {
	return u.bannerService.GetPlacementBanners(ctx, dto)
}
