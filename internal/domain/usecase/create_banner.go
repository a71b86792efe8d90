package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type BannerService interface {
	CreateBanner(ctx context.Context, dto entity.CreateBannerDTO) (entity.Banner, error)
	UpdateBanner(ctx context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error)
	SetBannerStatus(ctx context.Context, dto entity.SetBannerStatusDTO) error
	DeleteBanner(ctx context.Context, dto entity.DeleteBannerDTO) error
	GetPlacementBanners(ctx context.Context, dto entity.GetPlacementBannersDTO) ([]entity.Banner, error)
	GetAllBanners(ctx context.Context) ([]entity.AdminBanner, error)
}

type createBannerUsecase struct {
	bannerService BannerService
}

func NewCreateBannerUsecase(bannerService BannerService) *createBannerUsecase {
	return &createBannerUsecase{bannerService}
}

func (u *createBannerUsecase) CreateBanner(ctx context.Context, dto entity.CreateBannerDTO) (entity.Banner, error) {
	return u.bannerService.CreateBanner(ctx, dto)
}
