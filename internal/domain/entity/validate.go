package entity

import (
	"github.com/kalakriti/banner-engine/internal/errors"
)

// contentRules maps a content type to the field that must be set for it.
var contentRules = map[ContentType]struct {
	field string
	set   func(BannerFields) bool
}{
	ContentImage: {"image_desktop", func(f BannerFields) bool { return f.ImageDesktop != "" }},
	ContentVideo: {"video_url", func(f BannerFields) bool { return f.VideoURL != "" }},
	ContentHTML:  {"html_content", func(f BannerFields) bool { return f.HTMLContent != "" }},
}

// Validate checks a submission before it reaches storage. Each violation
// is reported as an ErrInvalidBanner domain error naming the constraint.
func (f BannerFields) Validate() error {
	if f.Title == "" {
		return errors.NewDomainError(errors.ErrInvalidBanner, "title is required")
	}

	if !f.Placement.Valid() {
		return errors.NewDomainError(errors.ErrInvalidBanner, "unknown placement %q", f.Placement)
	}
	if f.Placement.RequiresCategory() && f.Category == "" {
		return errors.NewDomainError(errors.ErrInvalidBanner,
			"placement %q requires a category", f.Placement)
	}

	if !f.ContentType.Valid() {
		return errors.NewDomainError(errors.ErrInvalidBanner, "unknown content type %q", f.ContentType)
	}
	if rule := contentRules[f.ContentType]; !rule.set(f) {
		return errors.NewDomainError(errors.ErrInvalidBanner,
			"content type %q requires %s", f.ContentType, rule.field)
	}

	if !f.Status.Valid() {
		return errors.NewDomainError(errors.ErrInvalidBanner, "unknown status %q", f.Status)
	}
	if !f.LinkType.Valid() {
		return errors.NewDomainError(errors.ErrInvalidBanner, "unknown link type %q", f.LinkType)
	}
	if !f.TargetDevice.Valid() {
		return errors.NewDomainError(errors.ErrInvalidBanner, "unknown target device %q", f.TargetDevice)
	}
	if !f.TargetAudience.Valid() {
		return errors.NewDomainError(errors.ErrInvalidBanner, "unknown target audience %q", f.TargetAudience)
	}

	if f.StartDate != nil && f.EndDate != nil && !f.EndDate.After(*f.StartDate) {
		return errors.NewDomainError(errors.ErrInvalidBanner, "end_date must be after start_date")
	}

	if f.Placement == PlacementPopup {
		if f.PopupDelay < 0 {
			return errors.NewDomainError(errors.ErrInvalidBanner, "popup_delay must not be negative")
		}
		if !f.PopupFrequency.Valid() {
			return errors.NewDomainError(errors.ErrInvalidBanner,
				"unknown popup frequency %q", f.PopupFrequency)
		}
	}

	return nil
}

// Normalize fills the defaults the admin form applies before submission,
// so a record read back equals what was submitted.
func (f *BannerFields) Normalize() {
	if f.LinkType == "" {
		f.LinkType = LinkInternal
	}
	if f.ContentType == "" {
		f.ContentType = ContentImage
	}
	if f.Status == "" {
		f.Status = StatusActive
	}
	if f.TargetAudience == "" {
		f.TargetAudience = AudienceAll
	}
	if f.TargetDevice == "" {
		f.TargetDevice = DeviceAll
	}
	if f.PopupFrequency == "" {
		f.PopupFrequency = FreqOncePerSession
	}
}
