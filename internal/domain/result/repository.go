package result

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]CombinedResult, error)
}
