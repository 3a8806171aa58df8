package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	qb "github.com/hlcomp/hanabi-competitions/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) TeamSize(ctx context.Context, name string) (int, bool, error) {
	query, args, err := qb.Select("c.num_players").
		From("competition_names cn").
		Join("JOIN competitions c ON c.id = cn.id").
		Where(qb.Eq("cn.name", name)).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build get team size query: %w", err)
	}

	var teamSize int
	if err := r.db.GetContext(ctx, &teamSize, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get team size: %w", err)
	}
	return teamSize, true, nil
}

func (r *CompetitionRepository) ListNames(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("cn.name").
		From("competition_names cn").
		Join("JOIN competitions c ON c.id = cn.id").
		OrderBy("c.end_time DESC", "cn.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competition names query: %w", err)
	}

	names := make([]string, 0)
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list competition names: %w", err)
	}
	return names, nil
}

func (r *CompetitionRepository) ListActive(ctx context.Context, now time.Time) ([]competition.Active, error) {
	query, args, err := qb.Select("cn.name", "COALESCE(s.name, '') AS series_name", "c.end_time").
		From("competition_names cn").
		Join("JOIN competitions c ON c.id = cn.id").
		Join("LEFT JOIN series_competitions sc ON sc.competition_id = c.id").
		Join("LEFT JOIN series s ON s.id = sc.series_id").
		Where(qb.Gt("c.end_time", now)).
		OrderBy("c.end_time", "cn.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active competitions query: %w", err)
	}

	var rows []activeCompetitionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active competitions: %w", err)
	}

	out := make([]competition.Active, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Active{
			Name:       row.Name,
			SeriesName: row.SeriesName,
			EndTime:    row.EndTime.UTC(),
		})
	}
	return out, nil
}

func (r *CompetitionRepository) CreateBatch(ctx context.Context, items []competition.Competition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create competitions: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		if err := insertCompetition(ctx, tx, item); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create competitions tx: %w", err)
	}
	return nil
}

func insertCompetition(ctx context.Context, tx *sqlx.Tx, item competition.Competition) error {
	variantID, err := lookupID(ctx, tx, "variants", "name", item.VariantName)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: name=%s", competition.ErrUnknownVariant, item.VariantName)
		}
		return fmt.Errorf("get variant id: %w", err)
	}

	query, args, err := qb.InsertModel("competitions", competitionInsertModel{
		NumPlayers:        item.NumPlayers,
		VariantID:         variantID,
		EndTime:           item.EndTime,
		DeckplayEnabled:   item.DeckplayEnabled,
		EmptyCluesEnabled: item.EmptyCluesEnabled,
		CharactersEnabled: item.CharactersEnabled,
		AdditionalRules:   item.AdditionalRules,
	}, "RETURNING id")
	if err != nil {
		return fmt.Errorf("build insert competition query: %w", err)
	}
	var competitionID int64
	if err := tx.GetContext(ctx, &competitionID, query, args...); err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}

	if len(item.BaseSeedNames) > 0 {
		seeds := qb.InsertInto("competition_seeds").Columns("competition_id", "num_players", "variant_id", "base_name")
		for _, seed := range item.BaseSeedNames {
			seeds.Values(competitionID, item.NumPlayers, variantID, seed)
		}
		query, args, err = seeds.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert seeds query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", competition.ErrDuplicateSeed, item.BaseSeedNames)
			}
			return fmt.Errorf("insert competition seeds: %w", err)
		}
	}

	for _, seriesName := range item.SeriesNames {
		seriesID, err := lookupID(ctx, tx, "series", "name", seriesName)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: name=%s", competition.ErrUnknownSeries, seriesName)
			}
			return fmt.Errorf("get series id: %w", err)
		}
		query, args, err := qb.InsertInto("series_competitions").
			Columns("series_id", "competition_id").
			Values(seriesID, competitionID).
			Suffix("ON CONFLICT DO NOTHING").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build link series query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: name=%s", competition.ErrUnknownSeries, seriesName)
			}
			return fmt.Errorf("link competition to series=%s: %w", seriesName, err)
		}
	}

	return nil
}

func lookupID(ctx context.Context, tx *sqlx.Tx, table, column string, value any) (int64, error) {
	query, args, err := qb.Select("id").From(table).Where(qb.Eq(column, value)).ToSQL()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}
