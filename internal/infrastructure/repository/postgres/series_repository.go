package postgres

import (
	"context"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/series"
	qb "github.com/hlcomp/hanabi-competitions/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SeriesRepository struct {
	db *sqlx.DB
}

func NewSeriesRepository(db *sqlx.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) CreateBatch(ctx context.Context, items []series.Series) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create series: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := qb.InsertModel("series", seriesInsertModel{
			Name:   item.Name,
			FirstN: item.FirstN,
			TopN:   item.TopN,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert series query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: name=%s", series.ErrAlreadyExists, item.Name)
			}
			return fmt.Errorf("insert series=%s: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create series tx: %w", err)
	}
	return nil
}

func (r *SeriesRepository) GetByName(ctx context.Context, name string) (series.Series, bool, error) {
	query, args, err := qb.Select("id", "name", "first_n", "top_n").
		From("series").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return series.Series{}, false, fmt.Errorf("build get series query: %w", err)
	}

	var row seriesTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return series.Series{}, false, nil
		}
		return series.Series{}, false, fmt.Errorf("get series: %w", err)
	}
	return series.Series{Name: row.Name, FirstN: row.FirstN, TopN: row.TopN}, true, nil
}

func (r *SeriesRepository) ListCompetitionNames(ctx context.Context, seriesName string) ([]string, error) {
	query, args, err := qb.Select("cn.name").
		From("series s").
		Join("JOIN series_competitions sc ON sc.series_id = s.id").
		Join("JOIN competitions c ON c.id = sc.competition_id").
		Join("JOIN competition_names cn ON cn.id = c.id").
		Where(qb.Eq("s.name", seriesName)).
		OrderBy("c.end_time", "cn.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list series competitions query: %w", err)
	}

	names := make([]string, 0)
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list series competitions: %w", err)
	}
	return names, nil
}
