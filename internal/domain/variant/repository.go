package variant

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, items []Variant) error
}
