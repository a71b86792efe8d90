package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type dismissPopupUsecase struct {
	popupService PopupService
}

func NewDismissPopupUsecase(popupService PopupService) *dismissPopupUsecase {
	return &dismissPopupUsecase{popupService}
}

func (u *dismissPopupUsecase) DismissPopup(ctx context.Context, dto entity.DismissPopupDTO) error {
	return u.popupService.DismissPopup(ctx, dto)
}
