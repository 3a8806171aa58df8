package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hlcomp/hanabi-competitions/internal/domain/series"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultSeriesWorkers        = 4
	defaultSeriesMaxCompetitions = 16
)

type SeriesService struct {
	repo      series.Repository
	standings *StandingsService
	workers   int
	maxComps  int
}

func NewSeriesService(repo series.Repository, standingsService *StandingsService, workers, maxComps int) *SeriesService {
	if workers <= 0 {
		workers = defaultSeriesWorkers
	}
	if maxComps <= 0 {
		maxComps = defaultSeriesMaxCompetitions
	}
	return &SeriesService{
		repo:      repo,
		standings: standingsService,
		workers:   workers,
		maxComps:  maxComps,
	}
}

func (s *SeriesService) Create(ctx context.Context, items []series.Series) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Create")
	defer span.End()

	if len(items) == 0 {
		return fmt.Errorf("%w: at least one series is required", ErrInvalidInput)
	}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		if items[i].Name == "" {
			return fmt.Errorf("%w: series[%d]: name is required", ErrInvalidInput, i)
		}
		if items[i].FirstN < 0 || items[i].TopN < 0 {
			return fmt.Errorf("%w: series[%d]: first_n and top_n must be >= 0", ErrInvalidInput, i)
		}
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		if errors.Is(err, series.ErrAlreadyExists) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return fmt.Errorf("create series: %w", err)
	}
	return nil
}

// Leaderboard nests every member competition on a worker pool and aggregates
// them into the series leaderboard. maxComps <= 0 uses the configured default.
func (s *SeriesService) Leaderboard(ctx context.Context, name string, maxComps int) (series.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Leaderboard")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return series.Leaderboard{}, fmt.Errorf("%w: series name is required", ErrInvalidInput)
	}
	if maxComps <= 0 {
		maxComps = s.maxComps
	}

	item, exists, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return series.Leaderboard{}, fmt.Errorf("get series: %w", err)
	}
	if !exists {
		return series.Leaderboard{}, fmt.Errorf("%w: series=%s", ErrNotFound, name)
	}

	names, err := s.repo.ListCompetitionNames(ctx, name)
	if err != nil {
		return series.Leaderboard{}, fmt.Errorf("list series competitions: %w", err)
	}
	span.SetAttributes(
		attribute.String("series.name", name),
		attribute.Int("series.competitions", len(names)),
	)

	results, err := s.nestAll(ctx, names)
	if err != nil {
		return series.Leaderboard{}, err
	}
	return series.BuildLeaderboard(item, results, maxComps), nil
}

type nestOutcome struct {
	index  int
	nested standings.NestedStandings
	err    error
}

func (s *SeriesService) nestAll(ctx context.Context, names []string) ([]series.CompetitionResult, error) {
	out := make([]series.CompetitionResult, len(names))
	if len(names) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(names)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make(chan nestOutcome, len(names))
	var workers sync.WaitGroup
	for idx, competitionName := range names {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			nested, err := s.standings.GetNested(ctx, competitionName)
			outcomes <- nestOutcome{index: idx, nested: nested, err: err}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(outcomes)

	var firstErr error
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("nest competition %s: %w", names[o.index], o.err)
			}
			continue
		}
		out[o.index] = series.CompetitionResult{Name: names[o.index], Standings: o.nested}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
