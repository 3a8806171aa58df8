package competition

import (
	"context"
	"time"
)

// Registry resolves the team size of a named competition.
type Registry interface {
	TeamSize(ctx context.Context, name string) (int, bool, error)
}

// Repository describes competition persistence needs from use cases.
type Repository interface {
	Registry
	ListNames(ctx context.Context) ([]string, error)
	ListActive(ctx context.Context, now time.Time) ([]Active, error)
	// CreateBatch stores all competitions or none. Unknown variant or series
	// names fail with ErrUnknownVariant or ErrUnknownSeries.
	CreateBatch(ctx context.Context, items []Competition) error
}
