package domain

import "time"

// PeriodMode is the user-facing shortcut that determines how a concrete date
// range is derived. For everything except custom the range is fully derived
// from the mode and an anchor date; for custom the range is exactly what the
// user picked.
type PeriodMode string

const (
	PeriodModeDay    PeriodMode = "day"
	PeriodModeWeek   PeriodMode = "week"
	PeriodModeMonth  PeriodMode = "month"
	PeriodModeYear   PeriodMode = "year"
	PeriodModeCustom PeriodMode = "custom"
)

// ParsePeriodMode parses a period-mode token. Unknown tokens fail with
// ErrInvalidPeriodMode so malformed shared links surface instead of silently
// defaulting.
func ParsePeriodMode(s string) (PeriodMode, error) {
	mode := PeriodMode(s)
	switch mode {
	case PeriodModeDay, PeriodModeWeek, PeriodModeMonth, PeriodModeYear, PeriodModeCustom:
		return mode, nil
	}
	return "", ErrInvalidPeriodMode
}

// DateRange is an inclusive calendar date range
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range (inclusive on both ends)
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// PeriodSelection pairs a period mode with its concrete range
type PeriodSelection struct {
	Mode  PeriodMode `json:"mode"`
	Range DateRange  `json:"range"`
}
