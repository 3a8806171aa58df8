package result

import "time"

// CombinedResult is one row of the flat analytical results view.
type CombinedResult struct {
	CompetitionName     string
	FinalRank           int64
	FractionalMP        float64
	SumMP               int64
	PlayerName          string
	BaseSeedName        string
	SeedMatchpoints     int
	SiteGameID          int64
	ReplayURL           string
	Score               int
	Turns               int
	DatetimeGameStarted time.Time
	DatetimeGameEnded   time.Time
	CharacterName       *string
}

// Filter narrows the results view. Empty fields do not filter.
type Filter struct {
	CompetitionName string
	PlayerName      string
	BaseSeedName    string
	VariantName     string
	Limit           int
}

const (
	DefaultLimit = 5000
	MaxLimit     = 50000
)

// Normalize clamps the limit into (0, MaxLimit].
func (f Filter) Normalize() Filter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	return f
}
