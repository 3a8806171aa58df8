package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
	resultmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/result"
	"github.com/hlcomp/hanabi-competitions/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

func TestResultService_List_NormalizesFilter(t *testing.T) {
	t.Parallel()

	repo := resultmock.NewRepository(t)
	service := NewResultService(repo)

	want := result.Filter{CompetitionName: "c", PlayerName: "alice"}.Normalize()
	repo.On("List", mock.Anything, want).Return([]result.CombinedResult{{PlayerName: "alice"}}, nil).Once()

	got, err := service.List(context.Background(), result.Filter{CompetitionName: " c ", PlayerName: "alice "})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestResultService_List_NegativeLimit(t *testing.T) {
	t.Parallel()

	service := NewResultService(resultmock.NewRepository(t))
	if _, err := service.List(context.Background(), result.Filter{Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResultService_List_CircuitOpen(t *testing.T) {
	t.Parallel()

	repo := resultmock.NewRepository(t)
	service := NewResultService(repo)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, resilience.ErrCircuitOpen).Once()

	if _, err := service.List(context.Background(), result.Filter{}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
