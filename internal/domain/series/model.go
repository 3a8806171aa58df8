package series

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
)

var ErrAlreadyExists = errors.New("series already exists")

// Series groups competitions into one long-running leaderboard.
//
// A player's series score is the sum of their best TopN fractional MP values
// over the first FirstN competitions of the series. A non-positive FirstN or
// TopN means no limit.
type Series struct {
	Name   string
	FirstN int
	TopN   int
}

// CompetitionResult is the nested leaderboard of one member competition.
type CompetitionResult struct {
	Name      string
	Standings standings.NestedStandings
}

// Row is one player's line in the series leaderboard. Competitions is aligned
// with Leaderboard.CompetitionNames; nil means the player did not take part.
type Row struct {
	PlayerName   string
	Competitions []*float64
	Score        float64
	Rank         int
}

type Leaderboard struct {
	Series           Series
	CompetitionNames []string
	Rows             []Row
}

// BuildLeaderboard aggregates member competitions, given in chronological
// order, into a ranked series leaderboard. Only the most recent maxShown
// competitions become columns; scoring always uses the first FirstN.
func BuildLeaderboard(s Series, results []CompetitionResult, maxShown int) Leaderboard {
	scored := results
	if s.FirstN > 0 && len(scored) > s.FirstN {
		scored = scored[:s.FirstN]
	}
	shown := results
	if maxShown > 0 && len(shown) > maxShown {
		shown = shown[len(shown)-maxShown:]
	}

	board := Leaderboard{
		Series:           s,
		CompetitionNames: make([]string, 0, len(shown)),
		Rows:             make([]Row, 0),
	}
	for _, r := range shown {
		board.CompetitionNames = append(board.CompetitionNames, r.Name)
	}

	byPlayer := make(map[string]*Row)
	order := make([]string, 0)
	row := func(name string) *Row {
		if r, ok := byPlayer[name]; ok {
			return r
		}
		r := &Row{PlayerName: name, Competitions: make([]*float64, len(shown))}
		byPlayer[name] = r
		order = append(order, name)
		return r
	}

	for idx, result := range shown {
		for name, frac := range playerFractions(result.Standings) {
			v := frac
			row(name).Competitions[idx] = &v
		}
	}

	scores := make(map[string][]float64)
	for _, result := range scored {
		for name, frac := range playerFractions(result.Standings) {
			row(name)
			scores[name] = append(scores[name], frac)
		}
	}
	for name, values := range scores {
		byPlayer[name].Score = sumBest(values, s.TopN)
	}

	for _, name := range order {
		board.Rows = append(board.Rows, *byPlayer[name])
	}
	sort.SliceStable(board.Rows, func(i, j int) bool {
		if board.Rows[i].Score != board.Rows[j].Score {
			return board.Rows[i].Score > board.Rows[j].Score
		}
		return board.Rows[i].PlayerName < board.Rows[j].PlayerName
	})
	for i := range board.Rows {
		if i > 0 && board.Rows[i].Score == board.Rows[i-1].Score {
			board.Rows[i].Rank = board.Rows[i-1].Rank
			continue
		}
		board.Rows[i].Rank = i + 1
	}

	return board
}

func playerFractions(s standings.NestedStandings) map[string]float64 {
	out := make(map[string]float64)
	for _, team := range s.TeamResults {
		for _, name := range team.PlayerNames() {
			out[name] = team.FractionalMP
		}
	}
	return out
}

func sumBest(values []float64, topN int) float64 {
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if topN > 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}
	total := 0.0
	for _, v := range sorted {
		total += v
	}
	return total
}
