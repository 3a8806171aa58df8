package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"go.opentelemetry.io/otel/attribute"
)

type StandingsService struct {
	registry competition.Registry
	source   standings.Source
}

func NewStandingsService(registry competition.Registry, source standings.Source) *StandingsService {
	return &StandingsService{
		registry: registry,
		source:   source,
	}
}

// GetNested builds the team leaderboard of one competition.
func (s *StandingsService) GetNested(ctx context.Context, competitionName string) (standings.NestedStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetNested")
	defer span.End()

	competitionName = strings.TrimSpace(competitionName)
	if competitionName == "" {
		return standings.NestedStandings{}, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("competition.name", competitionName))

	teamSize, exists, err := s.registry.TeamSize(ctx, competitionName)
	if err != nil {
		return standings.NestedStandings{}, storeError("get competition team size", err)
	}
	if !exists {
		return standings.NestedStandings{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionName)
	}

	rows, err := s.source.ListByCompetition(ctx, competitionName)
	if err != nil {
		return standings.NestedStandings{}, storeError("list competition results", err)
	}

	nested, err := standings.Nest(rows, teamSize)
	if err != nil {
		return standings.NestedStandings{}, fmt.Errorf("%w: %w", ErrConsistency, err)
	}
	return nested, nil
}
