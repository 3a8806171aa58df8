package postgres

import (
	"context"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/variant"
	qb "github.com/hlcomp/hanabi-competitions/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type VariantRepository struct {
	db *sqlx.DB
}

func NewVariantRepository(db *sqlx.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) CreateBatch(ctx context.Context, items []variant.Variant) error {
	if len(items) == 0 {
		return nil
	}

	insert := qb.InsertInto("variants").Columns("site_variant_id", "name")
	for _, item := range items {
		insert.Values(item.ID, item.Name)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert variants query: %w", err)
	}

	// A single multi-row statement is already atomic.
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", variant.ErrAlreadyExists, err)
		}
		return fmt.Errorf("insert variants: %w", err)
	}
	return nil
}
