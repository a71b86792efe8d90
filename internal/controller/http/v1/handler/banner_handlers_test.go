package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kalakriti/banner-engine/internal/adapter/cache/memory"
	middleware "github.com/kalakriti/banner-engine/internal/controller/http/v1/middleware"
	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/resolution"
	"github.com/kalakriti/banner-engine/internal/domain/service"
	"github.com/kalakriti/banner-engine/internal/domain/usecase"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// memStorage is an in-process BannerStorage so the handler chain can be
// exercised end to end without postgres.
type memStorage struct {
	banners map[string]entity.Banner
}

var _ service.BannerStorage = new(memStorage)

func newMemStorage() *memStorage {
	return &memStorage{banners: make(map[string]entity.Banner)}
}

func bannerFromFields(bannerID string, f entity.BannerFields) entity.Banner {
	now := time.Now().UTC()
	return entity.Banner{
		BannerID:       bannerID,
		Title:          f.Title,
		CTAText:        f.CTAText,
		Link:           f.Link,
		LinkType:       f.LinkType,
		ContentType:    f.ContentType,
		ImageDesktop:   f.ImageDesktop,
		ImageMobile:    f.ImageMobile,
		VideoURL:       f.VideoURL,
		HTMLContent:    f.HTMLContent,
		Placement:      f.Placement,
		Category:       f.Category,
		Status:         f.Status,
		StartDate:      f.StartDate,
		EndDate:        f.EndDate,
		TargetAudience: f.TargetAudience,
		TargetDevice:   f.TargetDevice,
		Position:       f.Position,
		PopupDelay:     f.PopupDelay,
		PopupFrequency: f.PopupFrequency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *memStorage) CreateBanner(_ context.Context, bannerID string, dto entity.CreateBannerDTO) (entity.Banner, error) {
	if _, ok := s.banners[bannerID]; ok {
		return entity.Banner{}, errors.NewDomainError(errors.ErrAlreadyExists, "")
	}
	b := bannerFromFields(bannerID, dto.BannerFields)
	s.banners[bannerID] = b
	return b, nil
}

func (s *memStorage) UpdateBanner(_ context.Context, dto entity.UpdateBannerDTO) (entity.Banner, error) {
	old, ok := s.banners[dto.BannerID]
	if !ok {
		return entity.Banner{}, errors.NewDomainError(errors.ErrNoDataFound, "")
	}
	b := bannerFromFields(dto.BannerID, dto.BannerFields)
	b.Impressions = old.Impressions
	b.Clicks = old.Clicks
	b.CreatedAt = old.CreatedAt
	s.banners[dto.BannerID] = b
	return b, nil
}

func (s *memStorage) SetBannerStatus(_ context.Context, dto entity.SetBannerStatusDTO) error {
	b, ok := s.banners[dto.BannerID]
	if !ok {
		return errors.NewDomainError(errors.ErrNoDataFound, "")
	}
	b.Status = dto.Status
	s.banners[dto.BannerID] = b
	return nil
}

func (s *memStorage) DeleteBanner(_ context.Context, dto entity.DeleteBannerDTO) error {
	if _, ok := s.banners[dto.BannerID]; !ok {
		return errors.NewDomainError(errors.ErrNoDataFound, "")
	}
	delete(s.banners, dto.BannerID)
	return nil
}

func (s *memStorage) GetBanner(_ context.Context, bannerID string) (entity.Banner, error) {
	b, ok := s.banners[bannerID]
	if !ok {
		return entity.Banner{}, errors.NewDomainError(errors.ErrNoDataFound, "")
	}
	return b, nil
}

func (s *memStorage) GetPlacementBanners(_ context.Context, placement entity.Placement) ([]entity.Banner, error) {
	out := make([]entity.Banner, 0)
	for _, b := range s.banners {
		if b.Placement == placement && b.Status == entity.StatusActive {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *memStorage) GetAllBanners(_ context.Context) ([]entity.Banner, error) {
	out := make([]entity.Banner, 0, len(s.banners))
	for _, b := range s.banners {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BannerID < out[j].BannerID })
	return out, nil
}

func (s *memStorage) IncrementCounter(_ context.Context, dto entity.TrackEventDTO) error {
	b, ok := s.banners[dto.BannerID]
	if !ok {
		return errors.NewDomainError(errors.ErrNoDataFound, "")
	}
	if dto.Event == entity.EventClick {
		b.Clicks++
	} else {
		b.Impressions++
	}
	s.banners[dto.BannerID] = b
	return nil
}

func (s *memStorage) GetStats(_ context.Context) (entity.BannerStats, error) {
	stats := entity.BannerStats{ByPlacement: make(map[entity.Placement]entity.PlacementStats)}
	for _, b := range s.banners {
		ps := stats.ByPlacement[b.Placement]
		ps.Count++
		ps.TotalImpressions += b.Impressions
		ps.TotalClicks += b.Clicks
		stats.ByPlacement[b.Placement] = ps
	}
	return stats, nil
}

// noopCache always misses so reads go straight to storage.
type noopCache struct{}

func (noopCache) Set(context.Context, entity.Placement, []entity.Banner) error { return nil }
func (noopCache) Get(context.Context, entity.Placement) ([]entity.Banner, error) {
	return nil, errors.NewDomainError(errors.ErrNoDataFound, "")
}
func (noopCache) Invalidate(context.Context, ...entity.Placement) error { return nil }

type memTokenStorage struct{}

func (memTokenStorage) CheckToken(_ context.Context, token string) (bool, error) {
	switch token {
	case "admin_token":
		return true, nil
	case "user_token":
		return false, nil
	}
	return false, errors.NewDomainError(errors.ErrUnauthorized, "")
}

func newTestServer(t *testing.T) (*httptest.Server, *memStorage) {
	t.Helper()

	storage := newMemStorage()
	gate := resolution.NewGate(memory.NewMarkerStore(), 30*time.Minute)

	bannerService := service.NewBannerService(storage, noopCache{})
	popupService := service.NewPopupService(bannerService, storage, gate)
	trackerService := service.NewTrackerService(storage)
	tokenService := service.NewTokenService(memTokenStorage{})
	uploadService, err := service.NewUploadService(t.TempDir())
	require.NoError(t, err)

	auth := middleware.NewAuthMiddleware(usecase.NewCheckTokenUsecase(tokenService))
	limiter := middleware.NewRateLimiter(rate.Limit(1000), 1000)
	t.Cleanup(limiter.Stop)

	uploadUsecase := usecase.NewUploadImageUsecase(uploadService)

	r := chi.NewMux()
	NewGetPlacementBannersHandler(usecase.NewGetPlacementBannersUsecase(bannerService)).AddToRouter(r)
	NewGetPopupBannerHandler(usecase.NewGetPopupBannerUsecase(popupService)).AddToRouter(r)
	NewDismissPopupHandler(usecase.NewDismissPopupUsecase(popupService)).AddToRouter(r)
	NewServeUploadHandler(uploadUsecase).AddToRouter(r)
	NewTrackImpressionHandler(usecase.NewTrackEventUsecase(trackerService)).Middlewares(limiter.Do).AddToRouter(r)
	NewTrackClickHandler(usecase.NewTrackEventUsecase(trackerService)).Middlewares(limiter.Do).AddToRouter(r)
	NewCreateBannerHandler(usecase.NewCreateBannerUsecase(bannerService)).Middlewares(auth.Do).AddToRouter(r)
	NewUpdateBannerHandler(usecase.NewUpdateBannerUsecase(bannerService)).Middlewares(auth.Do).AddToRouter(r)
	NewSetBannerStatusHandler(usecase.NewSetBannerStatusUsecase(bannerService)).Middlewares(auth.Do).AddToRouter(r)
	NewDeleteBannerHandler(usecase.NewDeleteBannerUsecase(bannerService)).Middlewares(auth.Do).AddToRouter(r)
	NewGetAllBannersHandler(usecase.NewGetAllBannersUsecase(bannerService)).Middlewares(auth.Do).AddToRouter(r)
	NewGetBannerStatsHandler(usecase.NewGetBannerStatsUsecase(trackerService)).Middlewares(auth.Do).AddToRouter(r)
	NewUploadImageHandler(uploadUsecase).Middlewares(auth.Do).AddToRouter(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return ts, storage
}

func testRequest(
	t *testing.T, ts *httptest.Server,
	method, path string, body []byte, headers map[string]string,
) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(body))
	require.NoError(t, err)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(respBody)
}

var adminHeaders = map[string]string{"token": "admin_token"}

func createBanner(t *testing.T, ts *httptest.Server, fields entity.BannerFields) entity.Banner {
	t.Helper()

	body, err := json.Marshal(fields)
	require.NoError(t, err)

	resp, respBody := testRequest(t, ts, "POST", "/api/banners", body, adminHeaders)
	require.Equal(t, http.StatusCreated, resp.StatusCode, respBody)

	var banner entity.Banner
	require.NoError(t, json.Unmarshal([]byte(respBody), &banner))
	return banner
}

func heroFields(position int) entity.BannerFields {
	return entity.BannerFields{
		Title:        fmt.Sprintf("Hero %d", position),
		ContentType:  entity.ContentImage,
		ImageDesktop: "/api/uploads/hero.jpg",
		Placement:    entity.PlacementHero,
		Status:       entity.StatusActive,
		Position:     position,
	}
}

func Test_CreateBanner_RoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)

	fields := heroFields(1)
	fields.CTAText = "Shop Now"
	fields.Link = "/products"
	created := createBanner(t, ts, fields)

	require.NotEmpty(t, created.BannerID)
	require.Equal(t, entity.LinkInternal, created.LinkType)

	resp, body := testRequest(t, ts, "GET", "/api/banners/all", nil, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []entity.AdminBanner
	require.NoError(t, json.Unmarshal([]byte(body), &all))
	require.Len(t, all, 1)

	got := all[0]
	require.Equal(t, created.BannerID, got.BannerID)
	require.Equal(t, "Hero 1", got.Title)
	require.Equal(t, "Shop Now", got.CTAText)
	require.Equal(t, "/products", got.Link)
	require.Equal(t, entity.PlacementHero, got.Placement)
	require.Equal(t, entity.StatusActive, got.Status)
	require.Equal(t, entity.DeviceAll, got.TargetDevice)
	require.Equal(t, "Always Active", got.ScheduleLabel)
}

func Test_CreateBanner_CategoryRequired(t *testing.T) {
	ts, storage := newTestServer(t)

	fields := heroFields(1)
	fields.Placement = entity.PlacementCategorySidebar
	fields.Category = ""
	body, err := json.Marshal(fields)
	require.NoError(t, err)

	resp, respBody := testRequest(t, ts, "POST", "/api/banners", body, adminHeaders)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, respBody, "requires a category")
	require.Empty(t, storage.banners)
}

func Test_GetPlacementBanners_HeroOrdering(t *testing.T) {
	ts, _ := newTestServer(t)

	createBanner(t, ts, heroFields(2))
	createBanner(t, ts, heroFields(1))

	resp, body := testRequest(t, ts, "GET", "/api/banners?placement=hero", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banners []entity.Banner
	require.NoError(t, json.Unmarshal([]byte(body), &banners))
	require.Len(t, banners, 2)
	require.Equal(t, "Hero 1", banners[0].Title)
	require.Equal(t, "Hero 2", banners[1].Title)
}

func Test_GetPlacementBanners_CategoryMismatchRendersNothing(t *testing.T) {
	ts, _ := newTestServer(t)

	fields := heroFields(1)
	fields.Placement = entity.PlacementCategorySidebar
	fields.Category = "pooja"
	createBanner(t, ts, fields)

	resp, body := testRequest(t, ts, "GET",
		"/api/banners?placement=category_sidebar&category=jewellery", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banners []entity.Banner
	require.NoError(t, json.Unmarshal([]byte(body), &banners))
	require.Empty(t, banners)

	resp, body = testRequest(t, ts, "GET",
		"/api/banners?placement=category_sidebar&category=pooja", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &banners))
	require.Len(t, banners, 1)
}

func Test_GetPlacementBanners_DeviceTargeting(t *testing.T) {
	ts, _ := newTestServer(t)

	fields := heroFields(1)
	fields.TargetDevice = entity.DeviceMobile
	createBanner(t, ts, fields)

	resp, body := testRequest(t, ts, "GET", "/api/banners?placement=hero&device=desktop", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banners []entity.Banner
	require.NoError(t, json.Unmarshal([]byte(body), &banners))
	require.Empty(t, banners)

	// viewport width below the breakpoint computes the mobile class
	resp, body = testRequest(t, ts, "GET", "/api/banners?placement=hero&vw=375", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &banners))
	require.Len(t, banners, 1)
}

func Test_PopupFlow_OncePerSession(t *testing.T) {
	ts, storage := newTestServer(t)

	fields := heroFields(1)
	fields.Placement = entity.PlacementPopup
	fields.PopupDelay = 0
	fields.PopupFrequency = entity.FreqOncePerSession
	created := createBanner(t, ts, fields)

	session := map[string]string{SessionHeader: "sess-abc"}

	// no session header is a bad request
	resp, _ := testRequest(t, ts, "GET", "/api/banners/popup", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := testRequest(t, ts, "GET", "/api/banners/popup", nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var popup entity.Banner
	require.NoError(t, json.Unmarshal([]byte(body), &popup))
	require.Equal(t, created.BannerID, popup.BannerID)
	require.Equal(t, 0, popup.PopupDelay)

	resp, _ = testRequest(t, ts, "POST", "/api/banners/"+created.BannerID+"/dismiss", nil, session)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// same session never sees it again
	resp, _ = testRequest(t, ts, "GET", "/api/banners/popup", nil, session)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// impression is recorded at dismiss time
	require.Equal(t, int64(1), storage.banners[created.BannerID].Impressions)

	// a fresh session sees the popup again
	resp, _ = testRequest(t, ts, "GET", "/api/banners/popup", nil,
		map[string]string{SessionHeader: "sess-other"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_StatusToggle(t *testing.T) {
	ts, _ := newTestServer(t)

	created := createBanner(t, ts, heroFields(1))

	resp, _ := testRequest(t, ts, "PATCH",
		"/api/banners/"+created.BannerID+"/status?status=paused", nil, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := testRequest(t, ts, "GET", "/api/banners?placement=hero", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banners []entity.Banner
	require.NoError(t, json.Unmarshal([]byte(body), &banners))
	require.Empty(t, banners)

	resp, _ = testRequest(t, ts, "PATCH",
		"/api/banners/"+created.BannerID+"/status?status=archived", nil, adminHeaders)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = testRequest(t, ts, "PATCH",
		"/api/banners/missing/status?status=paused", nil, adminHeaders)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_UpdateBanner(t *testing.T) {
	ts, _ := newTestServer(t)

	created := createBanner(t, ts, heroFields(1))

	fields := heroFields(4)
	fields.Title = "Updated Hero"
	body, err := json.Marshal(fields)
	require.NoError(t, err)

	resp, respBody := testRequest(t, ts, "PUT", "/api/banners/"+created.BannerID, body, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated entity.Banner
	require.NoError(t, json.Unmarshal([]byte(respBody), &updated))
	require.Equal(t, created.BannerID, updated.BannerID)
	require.Equal(t, "Updated Hero", updated.Title)
	require.Equal(t, 4, updated.Position)

	resp, _ = testRequest(t, ts, "PUT", "/api/banners/missing", body, adminHeaders)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_DeleteBanner(t *testing.T) {
	ts, _ := newTestServer(t)

	created := createBanner(t, ts, heroFields(1))

	resp, _ := testRequest(t, ts, "DELETE", "/api/banners/"+created.BannerID, nil, adminHeaders)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = testRequest(t, ts, "DELETE", "/api/banners/"+created.BannerID, nil, adminHeaders)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_Beacons_And_Stats(t *testing.T) {
	ts, _ := newTestServer(t)

	created := createBanner(t, ts, heroFields(1))

	for i := 0; i < 3; i++ {
		resp, _ := testRequest(t, ts, "POST", "/api/banners/"+created.BannerID+"/impression", nil, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp, _ := testRequest(t, ts, "POST", "/api/banners/"+created.BannerID+"/click", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// a beacon for an unknown banner is still a 204
	resp, _ = testRequest(t, ts, "POST", "/api/banners/missing/impression", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := testRequest(t, ts, "GET", "/api/banners/stats", nil, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats entity.BannerStats
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	require.Equal(t, int64(3), stats.ByPlacement[entity.PlacementHero].TotalImpressions)
	require.Equal(t, int64(1), stats.ByPlacement[entity.PlacementHero].TotalClicks)
}

func Test_AdminAuth(t *testing.T) {
	ts, _ := newTestServer(t)

	body, err := json.Marshal(heroFields(1))
	require.NoError(t, err)

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode int
	}{
		{name: "no token", headers: nil, wantCode: http.StatusUnauthorized},
		{name: "unregistered token", headers: map[string]string{"token": "some_token"}, wantCode: http.StatusUnauthorized},
		{name: "non-admin token", headers: map[string]string{"token": "user_token"}, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := testRequest(t, ts, "POST", "/api/banners", body, tt.headers)
			require.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func multipartFile(t *testing.T, field, filename string, data []byte) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes(), w.FormDataContentType()
}

func Test_UploadImage(t *testing.T) {
	ts, _ := newTestServer(t)

	png := make([]byte, 256)
	copy(png, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})

	body, contentType := multipartFile(t, "file", "hero.png", png)
	headers := map[string]string{"token": "admin_token", "Content-Type": contentType}

	resp, respBody := testRequest(t, ts, "POST", "/api/upload/image", body, headers)
	require.Equal(t, http.StatusOK, resp.StatusCode, respBody)

	var result entity.UploadResult
	require.NoError(t, json.Unmarshal([]byte(respBody), &result))
	require.Contains(t, result.URL, "/api/uploads/")

	// the returned URL serves the stored bytes
	resp, served := testRequest(t, ts, "GET", result.URL, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, string(png), served)

	resp, _ = testRequest(t, ts, "GET", "/api/uploads/nonexistent.png", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_UploadImage_RejectsOversizeAndWrongType(t *testing.T) {
	ts, _ := newTestServer(t)

	big := make([]byte, 6*1024*1024)
	copy(big, []byte{0xFF, 0xD8, 0xFF, 0xE0})

	body, contentType := multipartFile(t, "file", "big.jpg", big)
	headers := map[string]string{"token": "admin_token", "Content-Type": contentType}

	resp, respBody := testRequest(t, ts, "POST", "/api/upload/image", body, headers)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, respBody, "5MB")

	body, contentType = multipartFile(t, "file", "notes.txt", []byte("not an image"))
	headers["Content-Type"] = contentType

	resp, respBody = testRequest(t, ts, "POST", "/api/upload/image", body, headers)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, respBody, "not allowed")
}
