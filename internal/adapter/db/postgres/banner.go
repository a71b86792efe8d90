package db

import (
	"context"
	"embed"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/service"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/kalakriti/banner-engine/pkg/client/postgresql"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ service.BannerStorage = new(bannerStorage)

type bannerStorage struct {
	client postgresql.Client
}

func NewBannerStorage(client postgresql.Client) *bannerStorage {
	return &bannerStorage{client: client}
}

//go:embed migration/*.sql
var migrationsDir embed.FS

func RunMigrations(dsn string) error {

	d, err := iofs.New(migrationsDir, "migration")
	if err != nil {
		slog.Error(err.Error())
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		slog.Error(err.Error())
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	if err := m.Up(); err != nil {
		if !stdErrors.Is(err, migrate.ErrNoChange) {
			slog.Error(err.Error())
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}

const bannerColumns = `banner_id, title, cta_text, link, link_type, content_type,
	image_desktop, image_mobile, video_url, html_content,
	placement, category, status, start_date, end_date,
	target_audience, target_device, position, popup_delay, popup_frequency,
	impressions, clicks, created_at, updated_at`

func scanBanner(row pgx.CollectableRow) (entity.Banner, error) {
	var b entity.Banner
	err := row.Scan(
		&b.BannerID, &b.Title, &b.CTAText, &b.Link, &b.LinkType, &b.ContentType,
		&b.ImageDesktop, &b.ImageMobile, &b.VideoURL, &b.HTMLContent,
		&b.Placement, &b.Category, &b.Status, &b.StartDate, &b.EndDate,
		&b.TargetAudience, &b.TargetDevice, &b.Position, &b.PopupDelay, &b.PopupFrequency,
		&b.Impressions, &b.Clicks, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (s *bannerStorage) CreateBanner(ctx context.Context, bannerID string, dto entity.CreateBannerDTO) (entity.Banner, error) {

	rows, err := s.client.Query(
		ctx,
		`INSERT INTO banners
			(banner_id, title, cta_text, link, link_type, content_type,
			image_desktop, image_mobile, video_url, html_content,
			placement, category, status, start_date, end_date,
			target_audience, target_device, position, popup_delay, popup_frequency)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING `+bannerColumns+`;`,
		bannerID, dto.Title, dto.CTAText, dto.Link, dto.LinkType, dto.ContentType,
		dto.ImageDesktop, dto.ImageMobile, dto.VideoURL, dto.HTMLContent,
		dto.Placement, dto.Category, dto.Status, dto.StartDate, dto.EndDate,
		dto.TargetAudience, dto.TargetDevice, dto.Position, dto.PopupDelay, dto.PopupFrequency,
	)
	if err != nil {
		slog.Error("error inserting into banners", "error", err)
		return entity.Banner{}, errors.NewDomainError(errors.ErrDB, "")
	}

	banner, err := pgx.CollectOneRow(rows, scanBanner)
	if err != nil {
		slog.Error("error scanning inserted banner", "error", err)
		var pgErr *pgconn.PgError
		if stdErrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return entity.Banner{}, errors.NewDomainError(errors.ErrAlreadyExists, "banner %s already exists", bannerID)
		}
		return entity.Banner{}, errors.NewDomainError(errors.ErrDB, "")
	}

	return banner, nil
}

func (s *bannerStorage) UpdateBanner(ctx context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error) {

	rows, err := s.client.Query(
		ctx,
		`UPDATE banners SET
			title = $2, cta_text = $3, link = $4, link_type = $5, content_type = $6,
			image_desktop = $7, image_mobile = $8, video_url = $9, html_content = $10,
			placement = $11, category = $12, status = $13, start_date = $14, end_date = $15,
			target_audience = $16, target_device = $17, position = $18,
			popup_delay = $19, popup_frequency = $20,
			updated_at = NOW()
		WHERE banner_id = $1
		RETURNING `+bannerColumns+`;`,
		dto.BannerID, dto.Title, dto.CTAText, dto.Link, dto.LinkType, dto.ContentType,
		dto.ImageDesktop, dto.ImageMobile, dto.VideoURL, dto.HTMLContent,
		dto.Placement, dto.Category, dto.Status, dto.StartDate, dto.EndDate,
		dto.TargetAudience, dto.TargetDevice, dto.Position, dto.PopupDelay, dto.PopupFrequency,
	)
	if err != nil {
		slog.Error("error updating banners", "error", err)
		return entity.Banner{}, errors.NewDomainError(errors.ErrDB, "")
	}

	banner, err := pgx.CollectOneRow(rows, scanBanner)
	if err != nil {
		if stdErrors.Is(err, pgx.ErrNoRows) {
			return entity.Banner{}, errors.NewDomainError(errors.ErrNoDataFound, "")
		}
		slog.Error("error scanning updated banner", "error", err)
		return entity.Banner{}, errors.NewDomainError(errors.ErrDB, "")
	}

	return banner, nil
}

func (s *bannerStorage) SetBannerStatus(ctx context.Context, dto entity.SetBannerStatusDTO) error {

	c, err := s.client.Exec(
		ctx,
		`UPDATE banners
		SET status = $2, updated_at = NOW()
		WHERE banner_id = $1;`,
		dto.BannerID, dto.Status,
	)
	if err != nil {
		slog.Error("error updating banner status", "error", err)
		return errors.NewDomainError(errors.ErrDB, "")
	}
	if c.RowsAffected() == 0 {
		return errors.NewDomainError(errors.ErrNoDataFound, "")
	}

	return nil
}

func (s *bannerStorage) DeleteBanner(ctx context.Context, dto entity.DeleteBannerDTO) error {

	c, err := s.client.Exec(
		ctx,
		`DELETE FROM banners
		WHERE banner_id = $1;`,
		dto.BannerID,
	)
	if err != nil {
		slog.Error("error deleting from banners", "error", err)
		return errors.NewDomainError(errors.ErrDB, "")
	}
	if c.RowsAffected() == 0 {
		return errors.NewDomainError(errors.ErrNoDataFound, "")
	}

	return nil
}

func (s *bannerStorage) GetBanner(ctx context.Context, bannerID string) (entity.Banner, error) {

	rows, err := s.client.Query(
		ctx,
		`SELECT `+bannerColumns+`
		FROM banners
		WHERE banner_id = $1;`,
		bannerID,
	)
	if err != nil {
		slog.Error("error selecting banner", "error", err)
		return entity.Banner{}, errors.NewDomainError(errors.ErrDB, "")
	}

	banner, err := pgx.CollectOneRow(rows, scanBanner)
	if err != nil {
		if stdErrors.Is(err, pgx.ErrNoRows) {
			return entity.Banner{}, errors.NewDomainError(errors.ErrNoDataFound, "")
		}
		slog.Error("error scanning banner", "error", err)
		return entity.Banner{}, errors.NewDomainError(errors.ErrDB, "")
	}

	return banner, nil
}

// GetPlacementBanners returns the active candidate set for one slot,
// position ascending. Category narrowing for category-scoped placements
// happens at resolution time, not here, so the cache can hold the whole
// placement.
func (s *bannerStorage) GetPlacementBanners(ctx context.Context, placement entity.Placement) ([]entity.Banner, error) {

	rows, err := s.client.Query(
		ctx,
		`SELECT `+bannerColumns+`
		FROM banners
		WHERE placement = $1 AND status = 'active'
		ORDER BY position ASC;`,
		placement,
	)
	if err != nil {
		slog.Error("error selecting placement banners", "error", err)
		return nil, errors.NewDomainError(errors.ErrDB, "")
	}

	banners, err := pgx.CollectRows(rows, scanBanner)
	if err != nil {
		slog.Error("error collecting rows", "error", err)
		return nil, errors.NewDomainError(errors.ErrDB, "")
	}

	return banners, nil
}

func (s *bannerStorage) GetAllBanners(ctx context.Context) ([]entity.Banner, error) {

	rows, err := s.client.Query(
		ctx,
		`SELECT `+bannerColumns+`
		FROM banners
		ORDER BY placement, position ASC;`,
	)
	if err != nil {
		slog.Error("error selecting all banners", "error", err)
		return nil, errors.NewDomainError(errors.ErrDB, "")
	}

	banners, err := pgx.CollectRows(rows, scanBanner)
	if err != nil {
		slog.Error("error collecting rows", "error", err)
		return nil, errors.NewDomainError(errors.ErrDB, "")
	}

	return banners, nil
}

func (s *bannerStorage) IncrementCounter(ctx context.Context, dto entity.TrackEventDTO) error {

	column := "impressions"
	if dto.Event == entity.EventClick {
		column = "clicks"
	}

	query := fmt.Sprintf(
		`UPDATE banners
		SET %s = %s + 1
		WHERE banner_id = $1;`,
		column, column,
	)

	c, err := s.client.Exec(ctx, query, dto.BannerID)
	if err != nil {
		slog.Error("error incrementing counter", "error", err, "event", dto.Event)
		return errors.NewDomainError(errors.ErrDB, "")
	}
	if c.RowsAffected() == 0 {
		return errors.NewDomainError(errors.ErrNoDataFound, "")
	}

	return nil
}

func (s *bannerStorage) GetStats(ctx context.Context) (entity.BannerStats, error) {

	rows, err := s.client.Query(
		ctx,
		`SELECT placement, COUNT(*), COALESCE(SUM(impressions), 0), COALESCE(SUM(clicks), 0)
		FROM banners
		GROUP BY placement;`,
	)
	if err != nil {
		slog.Error("error selecting stats", "error", err)
		return entity.BannerStats{}, errors.NewDomainError(errors.ErrDB, "")
	}
	defer rows.Close()

	stats := entity.BannerStats{ByPlacement: make(map[entity.Placement]entity.PlacementStats)}
	for rows.Next() {
		var placement entity.Placement
		var ps entity.PlacementStats
		if err := rows.Scan(&placement, &ps.Count, &ps.TotalImpressions, &ps.TotalClicks); err != nil {
			slog.Error("error scanning stats row", "error", err)
			return entity.BannerStats{}, errors.NewDomainError(errors.ErrDB, "")
		}
		stats.ByPlacement[placement] = ps
	}
	if err := rows.Err(); err != nil {
		slog.Error("error scanning stats rows", "error", err)
		return entity.BannerStats{}, errors.NewDomainError(errors.ErrDB, "")
	}

	return stats, nil
}
