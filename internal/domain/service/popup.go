package service

import (
	"context"
	"log/slog"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/resolution"
	"github.com/kalakriti/banner-engine/internal/domain/usecase"
)

var _ usecase.PopupService = new(popupService)

type popupService struct {
	banners usecase.BannerService
	storage BannerStorage
	gate    *resolution.Gate
}

func NewPopupService(banners usecase.BannerService, storage BannerStorage, gate *resolution.Gate) *popupService {
	return &popupService{
		banners: banners,
		storage: storage,
		gate:    gate,
	}
}

// GetPopupBanner resolves the single popup slot and applies the
// frequency gate for the caller's session. found == false when no
// banner survives resolution or the gate holds it back; that is not an
// error, the page simply renders no popup.
func (service *popupService) GetPopupBanner(ctx context.Context, dto entity.GetPopupBannerDTO) (entity.Banner, bool, error) {
	selected, err := service.banners.GetPlacementBanners(ctx, entity.GetPlacementBannersDTO{
		Placement: entity.PlacementPopup,
		Category:  dto.Category,
		Device:    dto.Device,
	})
	if err != nil {
		return entity.Banner{}, false, err
	}
	if len(selected) == 0 {
		return entity.Banner{}, false, nil
	}

	banner := selected[0]

	allowed, err := service.gate.Allow(ctx, dto.SessionID, banner)
	if err != nil {
		return entity.Banner{}, false, err
	}
	if !allowed {
		slog.Debug("popup held back by frequency gate",
			"banner_id", banner.BannerID, "session", dto.SessionID)
		return entity.Banner{}, false, nil
	}

	return banner, true, nil
}

// DismissPopup sets the session marker per the banner's frequency and
// records the impression. Exposure is counted at dismiss time, not at
// display time.
func (service *popupService) DismissPopup(ctx context.Context, dto entity.DismissPopupDTO) error {
	banner, err := service.storage.GetBanner(ctx, dto.BannerID)
	if err != nil {
		return err
	}

	if err := service.gate.Dismiss(ctx, dto.SessionID, banner); err != nil {
		return err
	}

	if err := service.storage.IncrementCounter(ctx, entity.TrackEventDTO{
		BannerID: dto.BannerID,
		Event:    entity.EventImpression,
	}); err != nil {
		// exposure tracking is best-effort
		slog.Debug("dismiss impression not recorded", "error", err, "banner_id", dto.BannerID)
	}

	return nil
}
