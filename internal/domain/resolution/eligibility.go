package resolution

import (
	"time"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Label    string `json:"label"`
}

// ResolveEligibility is the single source of truth for both the runtime
// display gate and the admin schedule label. A banner is eligible only
// when its status is active and now falls inside the optional
// start/end window. The label describes the window alone and is not an
// enforcement signal.
func ResolveEligibility(b entity.Banner, now time.Time) Eligibility {
	var label string
	switch {
	case b.StartDate == nil && b.EndDate == nil:
		label = "Always Active"
	case b.StartDate != nil && now.Before(*b.StartDate):
		label = "Starts " + b.StartDate.Format("02 Jan 2006")
	case b.EndDate != nil && now.After(*b.EndDate):
		label = "Ended " + b.EndDate.Format("02 Jan 2006")
	default:
		label = "Currently Active"
	}

	eligible := b.Status == entity.StatusActive &&
		(b.StartDate == nil || !now.Before(*b.StartDate)) &&
		(b.EndDate == nil || !now.After(*b.EndDate))

	return Eligibility{Eligible: eligible, Label: label}
}

// FilterEligible keeps the banners eligible at now, order preserved.
func FilterEligible(banners []entity.Banner, now time.Time) []entity.Banner {
	out := make([]entity.Banner, 0, len(banners))
	for _, b := range banners {
		if ResolveEligibility(b, now).Eligible {
			out = append(out, b)
		}
	}
	return out
}
