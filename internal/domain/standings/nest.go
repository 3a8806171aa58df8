package standings

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

const teamKeySeparator = "-"

// TeamKey is the team identity heuristic: players who appear in exactly the
// same multiset of games are treated as one team. The key is the ascending
// list of site game ids rendered in base 10 and joined with "-".
//
// Two different teams that happen to have played the identical set of games
// collide on this key. That cannot happen while every game belongs to a
// single team, which is what the ingestion path guarantees.
func TeamKey(gameIDs []int64) string {
	sorted := slices.Clone(gameIDs)
	slices.Sort(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, teamKeySeparator)
}

// SeedNames returns the distinct base seed names of rows in ascending order.
// This is the canonical column order of a leaderboard.
func SeedNames(rows []FlatResult) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0)
	for _, row := range rows {
		if _, ok := seen[row.BaseSeedName]; ok {
			continue
		}
		seen[row.BaseSeedName] = struct{}{}
		out = append(out, row.BaseSeedName)
	}
	sort.Strings(out)
	return out
}

type playerGroup struct {
	name    string
	gameIDs []int64
	rows    []FlatResult
}

type teamGroup struct {
	players []string
	rows    []FlatResult
}

// Nest turns flat per-player-per-game rows into a ranked leaderboard with one
// entry per inferred team.
//
// Teams keep the order in which they are first seen while walking players in
// input order, and the final sort by rank is stable, so equally ranked teams
// stay in first-seen order.
//
// The only failure modes are a non-positive teamSize and a team inferred
// with more players than teamSize; rosters are never truncated.
func Nest(rows []FlatResult, teamSize int) (NestedStandings, error) {
	if teamSize < 1 {
		return NestedStandings{}, fmt.Errorf("%w: got %d", ErrInvalidTeamSize, teamSize)
	}

	out := NestedStandings{
		BaseSeedNames: SeedNames(rows),
		TeamSize:      teamSize,
		TeamResults:   make([]TeamStanding, 0),
	}
	if len(rows) == 0 {
		return out, nil
	}

	teams := groupTeams(groupPlayers(rows))
	for _, team := range teams {
		if len(team.players) > teamSize {
			return NestedStandings{}, fmt.Errorf("%w: %d players (%s) for team size %d",
				ErrRosterExceedsTeamSize, len(team.players), strings.Join(team.players, ", "), teamSize)
		}
		out.TeamResults = append(out.TeamResults, buildTeamStanding(team, out.BaseSeedNames, teamSize))
	}

	sort.SliceStable(out.TeamResults, func(i, j int) bool {
		return out.TeamResults[i].FinalRank < out.TeamResults[j].FinalRank
	})

	return out, nil
}

func groupPlayers(rows []FlatResult) []*playerGroup {
	byName := make(map[string]*playerGroup)
	ordered := make([]*playerGroup, 0)
	for _, row := range rows {
		group, ok := byName[row.PlayerName]
		if !ok {
			group = &playerGroup{name: row.PlayerName}
			byName[row.PlayerName] = group
			ordered = append(ordered, group)
		}
		group.gameIDs = append(group.gameIDs, row.SiteGameID)
		group.rows = append(group.rows, row)
	}
	return ordered
}

func groupTeams(players []*playerGroup) []*teamGroup {
	byKey := make(map[string]*teamGroup, len(players))
	ordered := make([]*teamGroup, 0, len(players))
	for _, player := range players {
		key := TeamKey(player.gameIDs)
		team, ok := byKey[key]
		if !ok {
			team = &teamGroup{}
			byKey[key] = team
			ordered = append(ordered, team)
		}
		team.players = append(team.players, player.name)
		team.rows = append(team.rows, player.rows...)
	}
	return ordered
}

func buildTeamStanding(team *teamGroup, seedNames []string, teamSize int) TeamStanding {
	players := slices.Clone(team.players)
	sort.Strings(players)

	roster := make([]*string, 0, teamSize)
	for i := range players {
		roster = append(roster, &players[i])
	}
	for len(roster) < teamSize {
		roster = append(roster, nil)
	}

	rows := slices.Clone(team.rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BaseSeedName != rows[j].BaseSeedName {
			return rows[i].BaseSeedName < rows[j].BaseSeedName
		}
		if rows[i].SiteGameID != rows[j].SiteGameID {
			return rows[i].SiteGameID < rows[j].SiteGameID
		}
		return rows[i].PlayerName < rows[j].PlayerName
	})

	// Every teammate carries a row for the same game; one row per seed is kept.
	bySeed := make(map[string]FlatResult, len(seedNames))
	for _, row := range rows {
		if _, ok := bySeed[row.BaseSeedName]; ok {
			continue
		}
		bySeed[row.BaseSeedName] = row
	}

	standing := TeamStanding{
		Players:     roster,
		GameResults: make([]*GameResult, len(seedNames)),
	}
	aggregated := false
	for idx, seed := range seedNames {
		row, ok := bySeed[seed]
		if !ok {
			continue
		}
		standing.GameResults[idx] = gameResultFromRow(row)
		if !aggregated {
			standing.FinalRank = row.FinalRank
			standing.FractionalMP = row.FractionalMP
			standing.SumMP = row.SumMP
			aggregated = true
		}
	}

	return standing
}
