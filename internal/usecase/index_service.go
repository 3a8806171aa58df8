package usecase

import (
	"context"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	"github.com/sourcegraph/conc/pool"
)

// Index is the landing page content.
type Index struct {
	CompetitionNames []string
	ActiveBySeries   map[string][]competition.Active
}

type IndexService struct {
	competitions *CompetitionService
}

func NewIndexService(competitions *CompetitionService) *IndexService {
	return &IndexService{competitions: competitions}
}

// Get loads the competition names and the active competitions concurrently.
func (s *IndexService) Get(ctx context.Context) (Index, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IndexService.Get")
	defer span.End()

	var out Index
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		names, err := s.competitions.ListNames(ctx)
		if err != nil {
			return err
		}
		out.CompetitionNames = names
		return nil
	})
	p.Go(func(ctx context.Context) error {
		active, err := s.competitions.ListActiveBySeries(ctx)
		if err != nil {
			return err
		}
		out.ActiveBySeries = active
		return nil
	})
	if err := p.Wait(); err != nil {
		return Index{}, fmt.Errorf("load index: %w", err)
	}
	return out, nil
}
