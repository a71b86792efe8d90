package entity

import "time"

type Placement string

const (
	PlacementHero            Placement = "hero"
	PlacementBelowHero       Placement = "below_hero"
	PlacementPopup           Placement = "popup"
	PlacementCategoryHeader  Placement = "category_header"
	PlacementCategorySidebar Placement = "category_sidebar"
	PlacementCategoryFooter  Placement = "category_footer"
	PlacementProductPage     Placement = "product_page"
	PlacementCartPage        Placement = "cart_page"
	PlacementCheckoutPage    Placement = "checkout_page"
)

var Placements = []Placement{
	PlacementHero,
	PlacementBelowHero,
	PlacementPopup,
	PlacementCategoryHeader,
	PlacementCategorySidebar,
	PlacementCategoryFooter,
	PlacementProductPage,
	PlacementCartPage,
	PlacementCheckoutPage,
}

// RequiresCategory reports whether banners in this placement must carry
// a category reference.
func (p Placement) RequiresCategory() bool {
	switch p {
	case PlacementCategoryHeader, PlacementCategorySidebar, PlacementCategoryFooter:
		return true
	}
	return false
}

// Multi reports whether the placement renders every matching banner
// (hero carousel, below_hero grid) instead of reserving a single slot.
func (p Placement) Multi() bool {
	return p == PlacementHero || p == PlacementBelowHero
}

func (p Placement) Valid() bool {
	for _, known := range Placements {
		if p == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusScheduled Status = "scheduled"
	StatusExpired   Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusScheduled, StatusExpired:
		return true
	}
	return false
}

type ContentType string

const (
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentHTML  ContentType = "html"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentImage, ContentVideo, ContentHTML:
		return true
	}
	return false
}

type LinkType string

const (
	LinkInternal LinkType = "internal"
	LinkExternal LinkType = "external"
	LinkCategory LinkType = "category"
	LinkProduct  LinkType = "product"
)

func (l LinkType) Valid() bool {
	switch l {
	case LinkInternal, LinkExternal, LinkCategory, LinkProduct:
		return true
	}
	return false
}

type Device string

const (
	DeviceAll     Device = "all"
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

func (d Device) Valid() bool {
	switch d {
	case DeviceAll, DeviceDesktop, DeviceMobile:
		return true
	}
	return false
}

type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceNew       Audience = "new_users"
	AudienceReturning Audience = "returning_users"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceNew, AudienceReturning:
		return true
	}
	return false
}

type PopupFrequency string

const (
	FreqOncePerSession PopupFrequency = "once_per_session"
	FreqOncePerDay     PopupFrequency = "once_per_day"
	FreqAlways         PopupFrequency = "always"
)

func (f PopupFrequency) Valid() bool {
	switch f {
	case FreqOncePerSession, FreqOncePerDay, FreqAlways:
		return true
	}
	return false
}

type Banner struct {
	BannerID       string         `json:"banner_id"`
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
	Category       string         `json:"category,omitempty"`
	Status         Status         `json:"status"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	TargetAudience Audience       `json:"target_audience"`
	TargetDevice   Device         `json:"target_device"`
	Position       int            `json:"position"`
	PopupDelay     int            `json:"popup_delay"`
	PopupFrequency PopupFrequency `json:"popup_frequency"`
	Impressions    int64          `json:"impressions"`
	Clicks         int64          `json:"clicks"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Image returns the asset for the given device class, falling back to
// the desktop image when no mobile variant was uploaded.
func (b Banner) Image(device Device) string {
	if device == DeviceMobile && b.ImageMobile != "" {
		return b.ImageMobile
	}
	return b.ImageDesktop
}
