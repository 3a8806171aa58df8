package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hlcomp/hanabi-competitions/internal/domain/game"
	"go.opentelemetry.io/otel/attribute"
)

type GameService struct {
	repo game.Repository
}

func NewGameService(repo game.Repository) *GameService {
	return &GameService{repo: repo}
}

// Ingest validates the whole submission before anything is stored, then
// stores it in a single transaction.
func (s *GameService) Ingest(ctx context.Context, batches []game.CompetitionGames) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Ingest")
	defer span.End()

	if len(batches) == 0 {
		return 0, fmt.Errorf("%w: at least one competition batch is required", ErrInvalidInput)
	}

	total := 0
	seen := make(map[int64]struct{})
	for i, batch := range batches {
		if err := batch.Validate(); err != nil {
			return 0, fmt.Errorf("%w: batches[%d]: %w", ErrConsistency, i, err)
		}
		for _, seed := range batch.SeedsGames {
			for _, g := range seed.Games {
				if _, dup := seen[g.SiteGameID]; dup {
					return 0, fmt.Errorf("%w: game %d submitted twice", ErrInvalidInput, g.SiteGameID)
				}
				seen[g.SiteGameID] = struct{}{}
			}
		}
		total += batch.Count()
	}
	span.SetAttributes(attribute.Int("game.count", total))

	if err := s.repo.StoreBatch(ctx, batches); err != nil {
		switch {
		case errors.Is(err, game.ErrUnknownSeed):
			return 0, fmt.Errorf("%w: %v", ErrNotFound, err)
		case errors.Is(err, game.ErrAlreadyStored):
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return 0, fmt.Errorf("store games: %w", err)
	}
	return total, nil
}
