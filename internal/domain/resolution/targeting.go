package resolution

import (
	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

// MobileBreakpoint is the viewport width below which the storefront
// computes the mobile device class.
const MobileBreakpoint = 768

// DeviceClassFromWidth maps a viewport width in pixels to the device
// class used for targeting.
func DeviceClassFromWidth(width int) entity.Device {
	if width < MobileBreakpoint {
		return entity.DeviceMobile
	}
	return entity.DeviceDesktop
}

// Context is the rendering context a placement slot is resolved for.
type Context struct {
	Placement entity.Placement
	Category  string
	Device    entity.Device
	Audience  entity.Audience
}

func matchDevice(b entity.Banner, device entity.Device) bool {
	return b.TargetDevice == entity.DeviceAll || b.TargetDevice == device
}

func matchCategory(b entity.Banner, ctx Context) bool {
	if !ctx.Placement.RequiresCategory() {
		return true
	}
	return b.Category == ctx.Category
}

func matchAudience(b entity.Banner, audience entity.Audience) bool {
	// The storefront does not classify visitors yet, so callers pass
	// AudienceAll and every banner matches. The field is kept in the
	// match so classification can be switched on without touching
	// resolution call sites.
	if audience == "" || audience == entity.AudienceAll {
		return true
	}
	return b.TargetAudience == entity.AudienceAll || b.TargetAudience == audience
}

// FilterTargeting narrows eligible banners to those relevant for the
// context. Order is preserved.
func FilterTargeting(banners []entity.Banner, ctx Context) []entity.Banner {
	out := make([]entity.Banner, 0, len(banners))
	for _, b := range banners {
		if matchDevice(b, ctx.Device) && matchCategory(b, ctx) && matchAudience(b, ctx.Audience) {
			out = append(out, b)
		}
	}
	return out
}
