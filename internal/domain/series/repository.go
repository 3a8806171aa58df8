package series

import "context"

// Repository describes series persistence needs from use cases.
type Repository interface {
	CreateBatch(ctx context.Context, items []Series) error
	GetByName(ctx context.Context, name string) (Series, bool, error)
	// ListCompetitionNames returns member competitions ordered by end time, oldest first.
	ListCompetitionNames(ctx context.Context, seriesName string) ([]string, error)
}
