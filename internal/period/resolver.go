// Package period maps period-mode tokens plus an anchor moment to concrete
// date ranges. The anchor is always an explicit parameter so the derivation
// stays deterministic and testable; callers pass time.Now() when they mean
// the current period.
package period

import (
	"time"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// DerivedRange computes the range for the four derivable modes anchored at
// anchor. Custom has no derivation and is handled by the Resolver; passing it
// here fails the same way an unknown token does.
func DerivedRange(mode domain.PeriodMode, anchor time.Time) (domain.DateRange, error) {
	day := startOfDay(anchor)

	switch mode {
	case domain.PeriodModeDay:
		return domain.DateRange{Start: day, End: day}, nil
	case domain.PeriodModeWeek:
		// Calendar week containing the anchor, starting Sunday
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return domain.DateRange{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case domain.PeriodModeMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return domain.DateRange{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case domain.PeriodModeYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		end := time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, day.Location())
		return domain.DateRange{Start: start, End: end}, nil
	}
	return domain.DateRange{}, domain.ErrInvalidPeriodMode
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Resolver owns the mode-to-range state machine. Any state is reachable from
// any other in one transition: SetMode for mode tokens, SetCustomRange for ad
// hoc ranges. There is no terminal state.
type Resolver struct {
	mode domain.PeriodMode
	rng  domain.DateRange
}

// NewResolver creates a Resolver for a derivable mode anchored at anchor
func NewResolver(mode domain.PeriodMode, anchor time.Time) (*Resolver, error) {
	rng, err := DerivedRange(mode, anchor)
	if err != nil {
		return nil, err
	}
	return &Resolver{mode: mode, rng: rng}, nil
}

// NewCustomResolver creates a Resolver holding a user-picked range verbatim
func NewCustomResolver(rng domain.DateRange) *Resolver {
	return &Resolver{mode: domain.PeriodModeCustom, rng: rng}
}

// Restore rebuilds a Resolver from a previously resolved selection, keeping
// the range exactly as given (used when reconstructing state from a URL,
// where the explicit range wins over re-derivation)
func Restore(selection domain.PeriodSelection) *Resolver {
	return &Resolver{mode: selection.Mode, rng: selection.Range}
}

// Resolve converts (mode, anchor) into a concrete range. For custom it is the
// identity on the last explicitly supplied range, never derived from anchor.
func (r *Resolver) Resolve(mode domain.PeriodMode, anchor time.Time) (domain.DateRange, error) {
	if mode == domain.PeriodModeCustom {
		return r.rng, nil
	}
	return DerivedRange(mode, anchor)
}

// SetMode switches the mode and immediately recomputes the range anchored at
// now. Switching mode always snaps to the current day/week/month/year and
// discards any prior custom selection: mode is a shortcut to "current
// period", not a memory of the last range in that mode. Setting custom keeps
// the current range (custom carries no derivation responsibility).
func (r *Resolver) SetMode(mode domain.PeriodMode, now time.Time) error {
	rng, err := r.Resolve(mode, now)
	if err != nil {
		return err
	}
	r.mode = mode
	r.rng = rng
	return nil
}

// SetCustomRange stores a calendar-picker-driven range verbatim and degrades
// the mode to custom, even if the picked range happens to equal the current
// month.
func (r *Resolver) SetCustomRange(rng domain.DateRange) {
	r.mode = domain.PeriodModeCustom
	r.rng = rng
}

// Mode returns the current period mode
func (r *Resolver) Mode() domain.PeriodMode {
	return r.mode
}

// Range returns the current concrete range
func (r *Resolver) Range() domain.DateRange {
	return r.rng
}

// Selection returns the current mode and range as a PeriodSelection
func (r *Resolver) Selection() domain.PeriodSelection {
	return domain.PeriodSelection{Mode: r.mode, Range: r.rng}
}
