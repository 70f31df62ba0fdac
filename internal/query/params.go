// Package query keeps the period selection and search string consistent with
// a URL-encoded canonical representation, and debounces rapid search input.
package query

import (
	"net/url"
	"time"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/period"
)

// Canonical query parameter names. The period mode and the literal range use
// distinct names so the mode token can never collide with a date range.
const (
	ParamPeriodMode = "periodMode"
	ParamRangeFrom  = "rangeFrom"
	ParamRangeTo    = "rangeTo"
	ParamSearch     = "q"
)

// DefaultMode applies when the URL carries no period mode
const DefaultMode = domain.PeriodModeMonth

// ParseSelection reconstructs a PeriodSelection from URL query parameters.
//
// An unknown mode token fails with ErrInvalidPeriodMode: a malformed shared
// link should surface, not silently default. Explicit rangeFrom/rangeTo, when
// both present and parseable, take precedence over the mode-derived default;
// unparseable dates are treated as absent and the mode default anchored at
// now applies. A custom mode without a usable explicit range falls back to
// the default mode's range.
func ParseSelection(values url.Values, now time.Time) (domain.PeriodSelection, error) {
	mode := DefaultMode
	if token := values.Get(ParamPeriodMode); token != "" {
		parsed, err := domain.ParsePeriodMode(token)
		if err != nil {
			return domain.PeriodSelection{}, err
		}
		mode = parsed
	}

	if rng, ok := parseRange(values); ok {
		return domain.PeriodSelection{Mode: mode, Range: rng}, nil
	}

	derivable := mode
	if derivable == domain.PeriodModeCustom {
		derivable = DefaultMode
	}
	rng, err := period.DerivedRange(derivable, now)
	if err != nil {
		return domain.PeriodSelection{}, err
	}
	return domain.PeriodSelection{Mode: derivable, Range: rng}, nil
}

// parseRange reads rangeFrom/rangeTo; both must be present and parseable
func parseRange(values url.Values) (domain.DateRange, bool) {
	fromStr := values.Get(ParamRangeFrom)
	toStr := values.Get(ParamRangeTo)
	if fromStr == "" || toStr == "" {
		return domain.DateRange{}, false
	}
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return domain.DateRange{}, false
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return domain.DateRange{}, false
	}
	return domain.DateRange{Start: from, End: to}, true
}

// Encode produces the canonical URL representation of a selection and search
// string. The mode is always present; the literal range is only carried for
// custom selections (derivable modes are reconstructed from the mode alone);
// the search parameter is set iff non-empty.
func Encode(selection domain.PeriodSelection, searchText string) url.Values {
	values := url.Values{}
	values.Set(ParamPeriodMode, string(selection.Mode))
	if selection.Mode == domain.PeriodModeCustom {
		values.Set(ParamRangeFrom, selection.Range.Start.Format(time.RFC3339))
		values.Set(ParamRangeTo, selection.Range.End.Format(time.RFC3339))
	}
	if searchText != "" {
		values.Set(ParamSearch, searchText)
	}
	return values
}
