package competition

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownSeries  = errors.New("unknown series")
	ErrDuplicateSeed  = errors.New("seed already used by another competition")
)

const (
	MinPlayers = 2
	MaxPlayers = 6

	defaultSeedsPerCompetition = 4
	defaultEndHourUTC          = 13
	seedNamePrefix             = "hl-comp"
)

// Competition is a stored competition definition.
type Competition struct {
	ID                int64
	Name              string
	NumPlayers        int
	VariantName       string
	EndTime           time.Time
	DeckplayEnabled   bool
	EmptyCluesEnabled bool
	CharactersEnabled bool
	AdditionalRules   string
	BaseSeedNames     []string
	SeriesNames       []string
}

// PartialCompetition is an admin-submitted definition; nil fields take defaults.
type PartialCompetition struct {
	NumPlayers        int
	VariantName       string
	EndTime           *time.Time
	DeckplayEnabled   *bool
	EmptyCluesEnabled *bool
	CharactersEnabled *bool
	AdditionalRules   *string
	BaseSeedNames     []string
	SeriesNames       []string
}

// Active is a competition that has not ended yet, tagged with one series it belongs to.
// SeriesName is empty for competitions outside any series.
type Active struct {
	Name       string
	SeriesName string
	EndTime    time.Time
}

// FillDefaults resolves every optional field relative to now.
func (p PartialCompetition) FillDefaults(now time.Time) Competition {
	out := Competition{
		NumPlayers:        p.NumPlayers,
		VariantName:       p.VariantName,
		DeckplayEnabled:   boolOr(p.DeckplayEnabled, true),
		EmptyCluesEnabled: boolOr(p.EmptyCluesEnabled, true),
		CharactersEnabled: boolOr(p.CharactersEnabled, true),
		SeriesNames:       append([]string(nil), p.SeriesNames...),
	}

	if p.EndTime != nil {
		out.EndTime = p.EndTime.UTC()
	} else {
		out.EndTime = DefaultEndTime(now)
	}
	if p.AdditionalRules != nil {
		out.AdditionalRules = *p.AdditionalRules
	}
	if len(p.BaseSeedNames) > 0 {
		out.BaseSeedNames = append([]string(nil), p.BaseSeedNames...)
	} else {
		out.BaseSeedNames = DefaultSeedNames(out.EndTime)
	}

	return out
}

// DefaultEndTime is the Monday after next at 13:00 UTC, counted from the
// weekday of now. A competition submitted on a Monday therefore runs two weeks.
func DefaultEndTime(now time.Time) time.Time {
	now = now.UTC()
	days := map[time.Weekday]int{
		time.Monday:    14,
		time.Tuesday:   13,
		time.Wednesday: 12,
		time.Thursday:  18,
		time.Friday:    17,
		time.Saturday:  16,
		time.Sunday:    15,
	}[now.Weekday()]

	day := time.Date(now.Year(), now.Month(), now.Day(), defaultEndHourUTC, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, days)
}

// DefaultSeedNames returns hl-comp-YYYY-MM-DD-1 .. -4 for the end date.
func DefaultSeedNames(endTime time.Time) []string {
	date := endTime.UTC().Format(time.DateOnly)
	out := make([]string, 0, defaultSeedsPerCompetition)
	for i := 1; i <= defaultSeedsPerCompetition; i++ {
		out = append(out, fmt.Sprintf("%s-%s-%d", seedNamePrefix, date, i))
	}
	return out
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
