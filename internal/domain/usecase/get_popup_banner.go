package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type PopupService interface {
	GetPopupBanner(ctx context.Context, dto entity.GetPopupBannerDTO) (entity.Banner, bool, error)
	DismissPopup(ctx context.Context, dto entity.DismissPopupDTO) error
}

type getPopupBannerUsecase struct {
	popupService PopupService
}

func NewGetPopupBannerUsecase(popupService PopupService) *getPopupBannerUsecase {
	return &getPopupBannerUsecase{popupService}
}

func (u *getPopupBannerUsecase) GetPopupBanner(ctx context.Context, dto entity.GetPopupBannerDTO) (entity.Banner, bool, error) {
	return u.popupService.GetPopupBanner(ctx, dto)
}
