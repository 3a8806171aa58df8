package postgres

import (
	"context"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
	qb "github.com/hlcomp/hanabi-competitions/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) List(ctx context.Context, filter result.Filter) ([]result.CombinedResult, error) {
	query, args, err := qb.Select(
		"competition_name",
		"final_rank",
		"fractional_mp",
		"sum_mp",
		"player_name",
		"base_seed_name",
		"seed_matchpoints",
		"site_game_id",
		"replay_url",
		"score",
		"turns",
		"datetime_game_started",
		"datetime_game_ended",
		"character_name",
	).
		From(standingsTable).
		Where(
			qb.NonEmpty("competition_name", filter.CompetitionName),
			qb.NonEmpty("player_name", filter.PlayerName),
			qb.NonEmpty("base_seed_name", filter.BaseSeedName),
			qb.NonEmpty("variant_name", filter.VariantName),
		).
		OrderBy("competition_name DESC", "sum_mp DESC", "base_seed_name", "replay_url", "player_name").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []combinedResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]result.CombinedResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.CombinedResult{
			CompetitionName:     row.CompetitionName,
			FinalRank:           row.FinalRank,
			FractionalMP:        row.FractionalMP,
			SumMP:               row.SumMP,
			PlayerName:          row.PlayerName,
			BaseSeedName:        row.BaseSeedName,
			SeedMatchpoints:     row.SeedMatchpoints,
			SiteGameID:          row.SiteGameID,
			ReplayURL:           row.ReplayURL,
			Score:               row.Score,
			Turns:               row.Turns,
			DatetimeGameStarted: row.DatetimeGameStarted.UTC(),
			DatetimeGameEnded:   row.DatetimeGameEnded.UTC(),
			CharacterName:       nullStringToPtr(row.CharacterName),
		})
	}
	return out, nil
}
