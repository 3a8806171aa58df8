package standings

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func row(player, seed string, gameID int64, rank int64) FlatResult {
	return FlatResult{
		PlayerName:          player,
		BaseSeedName:        seed,
		SiteGameID:          gameID,
		Score:               25,
		Turns:               60,
		SeedMatchpoints:     2,
		SumMP:               10 - rank,
		FractionalMP:        float64(10-rank) / 10,
		FinalRank:           rank,
		ReplayURL:           fmt.Sprintf("https://hanab.live/replay/%d", gameID),
		GameDurationSeconds: 1800,
	}
}

func TestTeamKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ids  []int64
		want string
	}{
		{name: "empty", ids: nil, want: ""},
		{name: "single", ids: []int64{42}, want: "42"},
		{name: "sorted numerically", ids: []int64{100, 9, 25}, want: "9-25-100"},
		{name: "keeps duplicates", ids: []int64{7, 7, 3}, want: "3-7-7"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TeamKey(tc.ids); got != tc.want {
				t.Fatalf("TeamKey(%v)=%q want %q", tc.ids, got, tc.want)
			}
		})
	}
}

func TestTeamKey_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ids := []int64{3, 1, 2}
	_ = TeamKey(ids)
	if !reflect.DeepEqual(ids, []int64{3, 1, 2}) {
		t.Fatalf("input was reordered: %v", ids)
	}
}

func TestNest_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := Nest(nil, 2)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	if len(got.BaseSeedNames) != 0 || len(got.TeamResults) != 0 {
		t.Fatalf("expected empty standings, got %+v", got)
	}
	if got.TeamResults == nil || got.BaseSeedNames == nil {
		t.Fatalf("expected non-nil empty slices for serialization")
	}
	if got.TeamSize != 2 {
		t.Fatalf("unexpected team size: %d", got.TeamSize)
	}
}

func TestNest_InvalidTeamSize(t *testing.T) {
	t.Parallel()

	if _, err := Nest([]FlatResult{row("alice", "s1", 1, 1)}, 0); !errors.Is(err, ErrInvalidTeamSize) {
		t.Fatalf("expected ErrInvalidTeamSize, got %v", err)
	}
}

func TestNest_TwoPlayerSingleGame(t *testing.T) {
	t.Parallel()

	got, err := Nest([]FlatResult{
		row("bob", "s1", 100, 1),
		row("alice", "s1", 100, 1),
	}, 2)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	if len(got.TeamResults) != 1 {
		t.Fatalf("expected 1 team, got %d", len(got.TeamResults))
	}

	team := got.TeamResults[0]
	if names := team.PlayerNames(); !reflect.DeepEqual(names, []string{"alice", "bob"}) {
		t.Fatalf("unexpected roster: %v", names)
	}
	if len(team.GameResults) != 1 || team.GameResults[0] == nil || team.GameResults[0].SiteGameID != 100 {
		t.Fatalf("unexpected game results: %+v", team.GameResults)
	}
	if !reflect.DeepEqual(got.BaseSeedNames, []string{"s1"}) {
		t.Fatalf("unexpected seed names: %v", got.BaseSeedNames)
	}
}

func TestNest_GapFillsMissingSeeds(t *testing.T) {
	t.Parallel()

	rows := []FlatResult{
		row("alice", "s1", 1, 1),
		row("bob", "s1", 1, 1),
		row("alice", "s3", 3, 1),
		row("bob", "s3", 3, 1),
		// another team covers s2 so that it becomes part of the canonical order
		row("carol", "s2", 2, 2),
		row("dave", "s2", 2, 2),
	}

	got, err := Nest(rows, 2)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	if !reflect.DeepEqual(got.BaseSeedNames, []string{"s1", "s2", "s3"}) {
		t.Fatalf("unexpected seed names: %v", got.BaseSeedNames)
	}

	first := got.TeamResults[0]
	if first.GameResults[0] == nil || first.GameResults[0].SiteGameID != 1 {
		t.Fatalf("expected s1 result in slot 0, got %+v", first.GameResults[0])
	}
	if first.GameResults[1] != nil {
		t.Fatalf("expected empty s2 slot, got %+v", first.GameResults[1])
	}
	if first.GameResults[2] == nil || first.GameResults[2].SiteGameID != 3 {
		t.Fatalf("expected s3 result in slot 2, got %+v", first.GameResults[2])
	}

	second := got.TeamResults[1]
	if second.GameResults[0] != nil || second.GameResults[1] == nil || second.GameResults[2] != nil {
		t.Fatalf("unexpected alignment for second team: %+v", second.GameResults)
	}
}

func TestNest_SoloPlayer(t *testing.T) {
	t.Parallel()

	got, err := Nest([]FlatResult{
		row("solo", "s2", 20, 1),
		row("solo", "s1", 10, 1),
		row("solo", "s3", 30, 1),
	}, 1)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	if len(got.TeamResults) != 1 {
		t.Fatalf("expected 1 team, got %d", len(got.TeamResults))
	}

	team := got.TeamResults[0]
	if len(team.Players) != 1 || team.Players[0] == nil || *team.Players[0] != "solo" {
		t.Fatalf("unexpected roster: %+v", team.Players)
	}
	wantIDs := []int64{10, 20, 30}
	for i, result := range team.GameResults {
		if result == nil || result.SiteGameID != wantIDs[i] {
			t.Fatalf("slot %d: unexpected result %+v", i, result)
		}
	}
}

func TestNest_PadsShortRoster(t *testing.T) {
	t.Parallel()

	got, err := Nest([]FlatResult{
		row("alice", "s1", 1, 1),
		row("bob", "s1", 1, 1),
	}, 4)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}

	players := got.TeamResults[0].Players
	if len(players) != 4 {
		t.Fatalf("expected padded roster of 4, got %d", len(players))
	}
	if players[2] != nil || players[3] != nil {
		t.Fatalf("expected trailing absent slots, got %+v", players)
	}
}

func TestNest_RosterExceedsTeamSize(t *testing.T) {
	t.Parallel()

	_, err := Nest([]FlatResult{
		row("alice", "s1", 1, 1),
		row("bob", "s1", 1, 1),
		row("carol", "s1", 1, 1),
	}, 2)
	if !errors.Is(err, ErrRosterExceedsTeamSize) {
		t.Fatalf("expected ErrRosterExceedsTeamSize, got %v", err)
	}
}

func TestNest_TiesKeepFirstSeenOrder(t *testing.T) {
	t.Parallel()

	rows := []FlatResult{
		row("zed", "s1", 5, 1),
		row("yan", "s1", 5, 1),
		row("amy", "s1", 6, 1),
		row("bea", "s1", 6, 1),
		row("cid", "s1", 7, 0),
		row("dan", "s1", 7, 0),
	}

	got, err := Nest(rows, 2)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	if len(got.TeamResults) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(got.TeamResults))
	}

	wantLeaders := []string{"cid", "yan", "amy"}
	for i, want := range wantLeaders {
		if got := *got.TeamResults[i].Players[0]; got != want {
			t.Fatalf("position %d: expected team led by %s, got %s", i, want, got)
		}
	}
}

func TestNest_OneSlotPerSeedForMultiPlayerTeams(t *testing.T) {
	t.Parallel()

	rows := []FlatResult{
		row("alice", "s1", 1, 1),
		row("bob", "s1", 1, 1),
		row("carol", "s1", 1, 1),
		row("alice", "s2", 2, 1),
		row("bob", "s2", 2, 1),
		row("carol", "s2", 2, 1),
	}

	got, err := Nest(rows, 3)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	if len(got.TeamResults[0].GameResults) != len(got.BaseSeedNames) {
		t.Fatalf("expected one result per seed, got %d for %d seeds",
			len(got.TeamResults[0].GameResults), len(got.BaseSeedNames))
	}
}

func propertyFixture() []FlatResult {
	return []FlatResult{
		row("alice", "seed-a", 11, 2),
		row("bob", "seed-a", 11, 2),
		row("alice", "seed-b", 12, 2),
		row("bob", "seed-b", 12, 2),
		row("carol", "seed-a", 21, 1),
		row("dan", "seed-a", 21, 1),
		row("carol", "seed-c", 23, 1),
		row("dan", "seed-c", 23, 1),
		row("carol", "seed-b", 22, 1),
		row("dan", "seed-b", 22, 1),
		row("erin", "seed-c", 33, 3),
		row("erin", "seed-c", 33, 3),
		row("frank", "seed-b", 42, 3),
	}
}

func TestNest_Properties(t *testing.T) {
	t.Parallel()

	rows := propertyFixture()
	const teamSize = 2

	first, err := Nest(rows, teamSize)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	second, err := Nest(rows, teamSize)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}

	t.Run("determinism", func(t *testing.T) {
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("repeated Nest calls differ:\n%+v\n%+v", first, second)
		}
	})

	t.Run("completeness", func(t *testing.T) {
		for i, team := range first.TeamResults {
			if len(team.GameResults) != len(first.BaseSeedNames) {
				t.Fatalf("team %d: %d results for %d seeds", i, len(team.GameResults), len(first.BaseSeedNames))
			}
			if len(team.Players) != teamSize {
				t.Fatalf("team %d: roster length %d", i, len(team.Players))
			}
		}
	})

	t.Run("partition", func(t *testing.T) {
		seen := make(map[string]int)
		for _, team := range first.TeamResults {
			for _, name := range team.PlayerNames() {
				seen[name]++
			}
		}
		distinct := make(map[string]struct{})
		for _, r := range rows {
			distinct[r.PlayerName] = struct{}{}
		}
		if len(seen) != len(distinct) {
			t.Fatalf("expected %d players across teams, got %d", len(distinct), len(seen))
		}
		for name, count := range seen {
			if count != 1 {
				t.Fatalf("player %s appears in %d teams", name, count)
			}
		}
	})

	t.Run("rank ordering", func(t *testing.T) {
		for i := 1; i < len(first.TeamResults); i++ {
			if first.TeamResults[i-1].FinalRank > first.TeamResults[i].FinalRank {
				t.Fatalf("teams not ordered by rank at %d", i)
			}
		}
	})
}

func TestNest_ShuffledInputKeepsPartitionAndAlignment(t *testing.T) {
	t.Parallel()

	rows := propertyFixture()
	base, err := Nest(rows, 2)
	if err != nil {
		t.Fatalf("Nest error: %v", err)
	}
	want := teamSignatures(base)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]FlatResult(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Nest(shuffled, 2)
		if err != nil {
			t.Fatalf("Nest error: %v", err)
		}
		if !reflect.DeepEqual(got.BaseSeedNames, base.BaseSeedNames) {
			t.Fatalf("seed order changed: %v vs %v", got.BaseSeedNames, base.BaseSeedNames)
		}
		if sig := teamSignatures(got); !reflect.DeepEqual(sig, want) {
			t.Fatalf("iteration %d: team partition or alignment changed:\n%v\n%v", i, sig, want)
		}
	}
}

func teamSignatures(s NestedStandings) []string {
	out := make([]string, 0, len(s.TeamResults))
	for _, team := range s.TeamResults {
		sig := fmt.Sprint(team.PlayerNames())
		for _, result := range team.GameResults {
			if result == nil {
				sig += "|-"
				continue
			}
			sig += fmt.Sprintf("|%d", result.SiteGameID)
		}
		out = append(out, sig)
	}
	sort.Strings(out)
	return out
}
