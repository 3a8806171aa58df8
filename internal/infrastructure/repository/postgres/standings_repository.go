package postgres

import (
	"context"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	qb "github.com/hlcomp/hanabi-competitions/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

const standingsTable = "computed_competition_standings"

// StandingsRepository reads the per-player-per-game rows precomputed by
// update_computed_competition_standings().
type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) ListByCompetition(ctx context.Context, competitionName string) ([]standings.FlatResult, error) {
	query, args, err := qb.Select(
		"player_name",
		"base_seed_name",
		"site_game_id",
		"score",
		"turns",
		"seed_matchpoints",
		"sum_mp",
		"fractional_mp",
		"final_rank",
		"replay_url",
		"CAST(ROUND(EXTRACT(EPOCH FROM (datetime_game_ended - datetime_game_started))) AS INTEGER) AS game_duration_seconds",
	).
		From(standingsTable).
		Where(qb.Eq("competition_name", competitionName)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competition standings query: %w", err)
	}

	var rows []flatResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competition standings: %w", err)
	}

	out := make([]standings.FlatResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.FlatResult{
			PlayerName:          row.PlayerName,
			BaseSeedName:        row.BaseSeedName,
			SiteGameID:          row.SiteGameID,
			Score:               row.Score,
			Turns:               row.Turns,
			SeedMatchpoints:     row.SeedMatchpoints,
			SumMP:               row.SumMP,
			FractionalMP:        row.FractionalMP,
			FinalRank:           row.FinalRank,
			ReplayURL:           row.ReplayURL,
			GameDurationSeconds: row.GameDurationSeconds,
		})
	}
	return out, nil
}
