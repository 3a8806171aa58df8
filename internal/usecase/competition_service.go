package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	"go.opentelemetry.io/otel/attribute"
)

type CompetitionService struct {
	repo competition.Repository
	now  func() time.Time
}

func NewCompetitionService(repo competition.Repository) *CompetitionService {
	return &CompetitionService{
		repo: repo,
		now:  time.Now,
	}
}

// Create fills defaults for every partial definition and stores the batch atomically.
func (s *CompetitionService) Create(ctx context.Context, items []competition.PartialCompetition) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Create")
	defer span.End()

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one competition is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.Int("competition.count", len(items)))

	now := s.now()
	out := make([]competition.Competition, 0, len(items))
	for i, item := range items {
		item.VariantName = strings.TrimSpace(item.VariantName)
		if item.VariantName == "" {
			return nil, fmt.Errorf("%w: competitions[%d]: variant is required", ErrInvalidInput, i)
		}
		if item.NumPlayers < competition.MinPlayers || item.NumPlayers > competition.MaxPlayers {
			return nil, fmt.Errorf("%w: competitions[%d]: num_players must be between %d and %d",
				ErrInvalidInput, i, competition.MinPlayers, competition.MaxPlayers)
		}
		out = append(out, item.FillDefaults(now))
	}

	if err := s.repo.CreateBatch(ctx, out); err != nil {
		switch {
		case errors.Is(err, competition.ErrUnknownVariant), errors.Is(err, competition.ErrUnknownSeries):
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		case errors.Is(err, competition.ErrDuplicateSeed):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("create competitions: %w", err)
	}
	return out, nil
}

func (s *CompetitionService) ListNames(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListNames")
	defer span.End()

	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, storeError("list competition names", err)
	}
	return names, nil
}

// ListActiveBySeries groups competitions that have not ended yet by series
// name. Competitions outside any series are grouped under "".
func (s *CompetitionService) ListActiveBySeries(ctx context.Context) (map[string][]competition.Active, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListActiveBySeries")
	defer span.End()

	items, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, storeError("list active competitions", err)
	}

	out := make(map[string][]competition.Active)
	for _, item := range items {
		out[item.SeriesName] = append(out[item.SeriesName], item)
	}
	return out, nil
}
