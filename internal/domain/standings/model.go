package standings

import "github.com/cockroachdb/errors"

var (
	ErrInvalidTeamSize       = errors.New("team size must be positive")
	ErrRosterExceedsTeamSize = errors.New("inferred team roster exceeds competition team size")
)

// FlatResult is one player's row for one played game, already scored and
// ranked by the standings computation in the database.
//
// SumMP, FractionalMP and FinalRank are competition-wide aggregates for the
// player and are identical across all of that player's rows.
type FlatResult struct {
	PlayerName          string
	BaseSeedName        string
	SiteGameID          int64
	Score               int
	Turns               int
	SeedMatchpoints     int
	SumMP               int64
	FractionalMP        float64
	FinalRank           int64
	ReplayURL           string
	GameDurationSeconds int
}

// GameResult is the per-seed cell of a team standing.
type GameResult struct {
	SeedMatchpoints     int
	Score               int
	Turns               int
	SiteGameID          int64
	ReplayURL           string
	GameDurationSeconds int
}

// TeamStanding is one leaderboard line.
//
// Players always has exactly TeamSize entries; nil marks an empty roster slot.
// GameResults is aligned with NestedStandings.BaseSeedNames; nil marks a seed
// the team has not played.
type TeamStanding struct {
	Players      []*string
	FinalRank    int64
	FractionalMP float64
	SumMP        int64
	GameResults  []*GameResult
}

// NestedStandings is the leaderboard of a single competition.
type NestedStandings struct {
	BaseSeedNames []string
	TeamSize      int
	TeamResults   []TeamStanding
}

// PlayerNames returns the present roster entries in canonical order.
func (t TeamStanding) PlayerNames() []string {
	out := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func gameResultFromRow(row FlatResult) *GameResult {
	return &GameResult{
		SeedMatchpoints:     row.SeedMatchpoints,
		Score:               row.Score,
		Turns:               row.Turns,
		SiteGameID:          row.SiteGameID,
		ReplayURL:           row.ReplayURL,
		GameDurationSeconds: row.GameDurationSeconds,
	}
}
