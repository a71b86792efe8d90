package resolution

import (
	"sort"
	"time"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

// CarouselInterval is the auto-advance interval of the hero carousel,
// in milliseconds. The service only publishes it; rotation happens in
// the client.
const CarouselInterval = 5000

// SelectForPlacement orders the filtered candidates by position
// ascending and cuts them to the slot's capacity: hero and below_hero
// render every match, every other placement reserves a single slot and
// takes the first. An empty candidate set selects nothing.
func SelectForPlacement(placement entity.Placement, banners []entity.Banner) []entity.Banner {
	if len(banners) == 0 {
		return nil
	}

	ordered := make([]entity.Banner, len(banners))
	copy(ordered, banners)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	if placement.Multi() {
		return ordered
	}
	return ordered[:1]
}

// Resolve runs the full pipeline for one slot: eligibility, targeting,
// then selection. Callers supply already placement-scoped candidates.
func Resolve(banners []entity.Banner, ctx Context, now time.Time) []entity.Banner {
	eligible := FilterEligible(banners, now)
	targeted := FilterTargeting(eligible, ctx)
	return SelectForPlacement(ctx.Placement, targeted)
}
