package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/resolution"
	"github.com/kalakriti/banner-engine/internal/domain/usecase"
)

var _ usecase.BannerService = new(bannerService)

type BannerStorage interface {
	CreateBanner(ctx context.Context, bannerID string, dto entity.CreateBannerDTO) (entity.Banner, error)
	UpdateBanner(ctx context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error)
	SetBannerStatus(ctx context.Context, dto entity.SetBannerStatusDTO) error
	DeleteBanner(ctx context.Context, dto entity.DeleteBannerDTO) error
	GetBanner(ctx context.Context, bannerID string) (entity.Banner, error)
	GetPlacementBanners(ctx context.Context, placement entity.Placement) ([]entity.Banner, error)
	GetAllBanners(ctx context.Context) ([]entity.Banner, error)
	IncrementCounter(ctx context.Context, dto entity.TrackEventDTO) error
	GetStats(ctx context.Context) (entity.BannerStats, error)
}

type BannerCache interface {
	Set(ctx context.Context, placement entity.Placement, banners []entity.Banner) error
	Get(ctx context.Context, placement entity.Placement) ([]entity.Banner, error)
	Invalidate(ctx context.Context, placements ...entity.Placement) error
}

type bannerService struct {
	storage BannerStorage
	cache   BannerCache
	now     func() time.Time
}

func NewBannerService(storage BannerStorage, cache BannerCache) *bannerService {
	return &bannerService{
		storage: storage,
		cache:   cache,
		now:     time.Now,
	}
}

func newBannerID() string {
	return fmt.Sprintf("banner_%.12s", uuid.NewString())
}

func (service *bannerService) CreateBanner(ctx context.Context, dto entity.CreateBannerDTO) (entity.Banner, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return entity.Banner{}, err
	}

	banner, err := service.storage.CreateBanner(ctx, newBannerID(), dto)
	if err != nil {
		return entity.Banner{}, err
	}

	service.invalidate(ctx, banner.Placement)
	return banner, nil
}

func (service *bannerService) UpdateBanner(ctx context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return entity.Banner{}, err
	}

	// the edit form may move a banner between placements, both slots
	// must drop their cached candidate sets
	old, err := service.storage.GetBanner(ctx, dto.BannerID)
	if err != nil {
		return entity.Banner{}, err
	}

	banner, err := service.storage.UpdateBanner(ctx, dto)
	if err != nil {
		return entity.Banner{}, err
	}

	service.invalidate(ctx, old.Placement, banner.Placement)
	return banner, nil
}

func (service *bannerService) SetBannerStatus(ctx context.Context, dto entity.SetBannerStatusDTO) error {
	banner, err := service.storage.GetBanner(ctx, dto.BannerID)
	if err != nil {
		return err
	}

	if err := service.storage.SetBannerStatus(ctx, dto); err != nil {
		return err
	}

	service.invalidate(ctx, banner.Placement)
	return nil
}

func (service *bannerService) DeleteBanner(ctx context.Context, dto entity.DeleteBannerDTO) error {
	banner, err := service.storage.GetBanner(ctx, dto.BannerID)
	if err != nil {
		return err
	}

	if err := service.storage.DeleteBanner(ctx, dto); err != nil {
		return err
	}

	service.invalidate(ctx, banner.Placement)
	return nil
}

// GetPlacementBanners resolves the banners a page actually renders for
// one slot. The cache holds the storage candidate set (active banners of
// the placement); eligibility, targeting and slot capacity are applied
// per request because now and the caller's context vary.
func (service *bannerService) GetPlacementBanners(ctx context.Context, dto entity.GetPlacementBannersDTO) ([]entity.Banner, error) {
	candidates, err := service.cache.Get(ctx, dto.Placement)
	if err != nil {
		candidates, err = service.storage.GetPlacementBanners(ctx, dto.Placement)
		if err != nil {
			return nil, err
		}

		if err := service.cache.Set(ctx, dto.Placement, candidates); err != nil {
			slog.Debug("placement cache set failed", "error", err)
		}
	} else {
		slog.Debug("placement candidates found in cache", "placement", dto.Placement)
	}

	device := dto.Device
	if device == "" || device == entity.DeviceAll {
		device = entity.DeviceDesktop
	}

	return resolution.Resolve(candidates, resolution.Context{
		Placement: dto.Placement,
		Category:  dto.Category,
		Device:    device,
		Audience:  dto.Audience,
	}, service.now()), nil
}

func (service *bannerService) GetAllBanners(ctx context.Context) ([]entity.AdminBanner, error) {
	banners, err := service.storage.GetAllBanners(ctx)
	if err != nil {
		return nil, err
	}

	now := service.now()
	out := make([]entity.AdminBanner, 0, len(banners))
	for _, b := range banners {
		out = append(out, entity.AdminBanner{
			Banner:        b,
			ScheduleLabel: resolution.ResolveEligibility(b, now).Label,
		})
	}
	return out, nil
}

func (service *bannerService) invalidate(ctx context.Context, placements ...entity.Placement) {
	if err := service.cache.Invalidate(ctx, placements...); err != nil {
		slog.Debug("placement cache invalidation failed", "error", err)
	}
}
