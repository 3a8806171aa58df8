// Package guarded puts read repositories behind a shared circuit breaker.
package guarded

import (
	"context"
	"time"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"github.com/hlcomp/hanabi-competitions/internal/platform/resilience"
)

type CompetitionRepository struct {
	next    competition.Repository
	breaker *resilience.CircuitBreaker
}

func NewCompetitionRepository(next competition.Repository, breaker *resilience.CircuitBreaker) *CompetitionRepository {
	return &CompetitionRepository{next: next, breaker: breaker}
}

func (r *CompetitionRepository) TeamSize(ctx context.Context, name string) (int, bool, error) {
	var (
		size   int
		exists bool
	)
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		size, exists, err = r.next.TeamSize(ctx, name)
		return err
	})
	return size, exists, err
}

func (r *CompetitionRepository) ListNames(ctx context.Context) ([]string, error) {
	var out []string
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.ListNames(ctx)
		return err
	})
	return out, err
}

func (r *CompetitionRepository) ListActive(ctx context.Context, now time.Time) ([]competition.Active, error) {
	var out []competition.Active
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.ListActive(ctx, now)
		return err
	})
	return out, err
}

// CreateBatch is not guarded; validation failures must not trip the breaker.
func (r *CompetitionRepository) CreateBatch(ctx context.Context, items []competition.Competition) error {
	return r.next.CreateBatch(ctx, items)
}

type StandingsSource struct {
	next    standings.Source
	breaker *resilience.CircuitBreaker
}

func NewStandingsSource(next standings.Source, breaker *resilience.CircuitBreaker) *StandingsSource {
	return &StandingsSource{next: next, breaker: breaker}
}

func (s *StandingsSource) ListByCompetition(ctx context.Context, competitionName string) ([]standings.FlatResult, error) {
	var out []standings.FlatResult
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.next.ListByCompetition(ctx, competitionName)
		return err
	})
	return out, err
}

type ResultRepository struct {
	next    result.Repository
	breaker *resilience.CircuitBreaker
}

func NewResultRepository(next result.Repository, breaker *resilience.CircuitBreaker) *ResultRepository {
	return &ResultRepository{next: next, breaker: breaker}
}

func (r *ResultRepository) List(ctx context.Context, filter result.Filter) ([]result.CombinedResult, error) {
	var out []result.CombinedResult
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.List(ctx, filter)
		return err
	})
	return out, err
}
