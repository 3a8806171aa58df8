package game

import "context"

// Repository stores game batches. StoreBatch is all-or-nothing and refreshes
// the computed standings before committing.
type Repository interface {
	StoreBatch(ctx context.Context, batches []CompetitionGames) error
}
