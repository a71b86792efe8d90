package entity

import "time"

type BannerFields struct {
	Title          string         `json:"title"`
	CTAText        string         `json:"cta_text"`
	Link           string         `json:"link"`
	LinkType       LinkType       `json:"link_type"`
	ContentType    ContentType    `json:"content_type"`
	ImageDesktop   string         `json:"image_desktop"`
	ImageMobile    string         `json:"image_mobile"`
	VideoURL       string         `json:"video_url"`
	HTMLContent    string         `json:"html_content"`
	Placement      Placement      `json:"placement"`
	Category       string         `json:"category"`
	Status         Status         `json:"status"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	TargetAudience Audience       `json:"target_audience"`
	TargetDevice   Device         `json:"target_device"`
	Position       int            `json:"position"`
	PopupDelay     int            `json:"popup_delay"`
	PopupFrequency PopupFrequency `json:"popup_frequency"`
}

type CreateBannerDTO struct {
	BannerFields
}

type UpdateBannerDTO struct {
	BannerID string `json:"-"`
	BannerFields
}

type DeleteBannerDTO struct {
	BannerID string
}

type SetBannerStatusDTO struct {
	BannerID string
	Status   Status
}

type GetPlacementBannersDTO struct {
	Placement Placement
	Category  string
	Device    Device
	Audience  Audience
}

type GetPopupBannerDTO struct {
	SessionID string
	Category  string
	Device    Device
}

type DismissPopupDTO struct {
	SessionID string
	BannerID  string
}

type TrackEventDTO struct {
	BannerID string
	Event    Event
}

type Event string

const (
	EventImpression Event = "impression"
	EventClick      Event = "click"
)

// AdminBanner is the management-view record: the stored banner plus the
// informational schedule label. The label is display-only and is never
// used as the runtime gate.
type AdminBanner struct {
	Banner
	ScheduleLabel string `json:"schedule_label"`
}

type PlacementStats struct {
	Count            int   `json:"count"`
	TotalImpressions int64 `json:"total_impressions"`
	TotalClicks      int64 `json:"total_clicks"`
}

type BannerStats struct {
	ByPlacement map[Placement]PlacementStats `json:"by_placement"`
}

type UploadImageDTO struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

type UploadResult struct {
	URL string `json:"url"`
}
