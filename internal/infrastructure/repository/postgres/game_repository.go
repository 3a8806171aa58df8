package postgres

import (
	"context"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/game"
	qb "github.com/hlcomp/hanabi-competitions/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) StoreBatch(ctx context.Context, batches []game.CompetitionGames) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx store games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	playerIDs := make(map[string]int64)
	for _, batch := range batches {
		for _, seed := range batch.SeedsGames {
			seedID, err := findSeedID(ctx, tx, batch, seed.BaseSeedName)
			if err != nil {
				return err
			}
			for _, g := range seed.Games {
				if err := insertGame(ctx, tx, seedID, g, playerIDs); err != nil {
					return err
				}
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "SELECT update_computed_competition_standings()"); err != nil {
		return fmt.Errorf("refresh computed standings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit store games tx: %w", err)
	}
	return nil
}

func findSeedID(ctx context.Context, tx *sqlx.Tx, batch game.CompetitionGames, baseName string) (int64, error) {
	conditions := []qb.Condition{
		qb.Eq("s.base_name", baseName),
		qb.Eq("v.site_variant_id", batch.SiteVariantID),
		qb.Eq("s.num_players", batch.NumPlayers),
	}
	if batch.EndDate != nil {
		conditions = append(conditions, qb.Expr("(c.end_time AT TIME ZONE 'UTC')::date = ?::date", batch.EndDate.UTC().Format("2006-01-02")))
	}

	query, args, err := qb.Select("s.id").
		From("competition_seeds s").
		Join("JOIN variants v ON v.id = s.variant_id").
		Join("JOIN competitions c ON c.id = s.competition_id").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build find seed query: %w", err)
	}

	var seedID int64
	if err := tx.GetContext(ctx, &seedID, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%w: seed=%s variant=%d players=%d",
				game.ErrUnknownSeed, baseName, batch.SiteVariantID, batch.NumPlayers)
		}
		return 0, fmt.Errorf("find seed %s: %w", baseName, err)
	}
	return seedID, nil
}

func insertGame(ctx context.Context, tx *sqlx.Tx, seedID int64, g game.Game, playerIDs map[string]int64) error {
	query, args, err := qb.InsertModel("games", gameInsertModel{
		SiteGameID:      g.SiteGameID,
		SeedID:          seedID,
		Score:           g.Score,
		Turns:           g.Turns,
		DatetimeStarted: g.StartedAt,
		DatetimeEnded:   g.EndedAt,
	}, "RETURNING id")
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}

	var gameID int64
	if err := tx.GetContext(ctx, &gameID, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: game=%d", game.ErrAlreadyStored, g.SiteGameID)
		}
		return fmt.Errorf("insert game=%d: %w", g.SiteGameID, err)
	}

	links := qb.InsertInto("game_players").Columns("game_id", "player_id")
	for _, name := range g.Players {
		playerID, err := upsertPlayer(ctx, tx, name, playerIDs)
		if err != nil {
			return err
		}
		links.Values(gameID, playerID)
	}
	query, args, err = links.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert game players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert players of game=%d: %w", g.SiteGameID, err)
	}
	return nil
}

func upsertPlayer(ctx context.Context, tx *sqlx.Tx, name string, cache map[string]int64) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	query, args, err := qb.InsertInto("players").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build upsert player query: %w", err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("upsert player=%s: %w", name, err)
	}
	cache[name] = id
	return id, nil
}
