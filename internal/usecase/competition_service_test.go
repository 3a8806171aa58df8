package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	competitionmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/competition"
	"github.com/stretchr/testify/mock"
)

func TestCompetitionService_Create(t *testing.T) {
	t.Parallel()

	repo := competitionmock.NewRepository(t)
	service := NewCompetitionService(repo)
	service.now = func() time.Time { return time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC) }

	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(items []competition.Competition) bool {
		return len(items) == 1 &&
			items[0].VariantName == "No Variant" &&
			items[0].EndTime.Equal(time.Date(2024, 6, 17, 13, 0, 0, 0, time.UTC)) &&
			len(items[0].BaseSeedNames) == 4
	})).Return(nil).Once()

	got, err := service.Create(context.Background(), []competition.PartialCompetition{
		{NumPlayers: 2, VariantName: " No Variant "},
	})
	if err != nil {
		t.Fatalf("create competitions: %v", err)
	}
	if len(got) != 1 || !got[0].DeckplayEnabled {
		t.Fatalf("unexpected competitions: %+v", got)
	}
}

func TestCompetitionService_Create_Validation(t *testing.T) {
	t.Parallel()

	service := NewCompetitionService(competitionmock.NewRepository(t))

	cases := []struct {
		name  string
		items []competition.PartialCompetition
	}{
		{name: "empty batch", items: nil},
		{name: "missing variant", items: []competition.PartialCompetition{{NumPlayers: 2}}},
		{name: "too few players", items: []competition.PartialCompetition{{NumPlayers: 1, VariantName: "v"}}},
		{name: "too many players", items: []competition.PartialCompetition{{NumPlayers: 7, VariantName: "v"}}},
	}
	for _, tc := range cases {
		if _, err := service.Create(context.Background(), tc.items); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCompetitionService_Create_UnknownVariant(t *testing.T) {
	t.Parallel()

	repo := competitionmock.NewRepository(t)
	service := NewCompetitionService(repo)

	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: name=Nope", competition.ErrUnknownVariant)).
		Once()

	_, err := service.Create(context.Background(), []competition.PartialCompetition{{NumPlayers: 3, VariantName: "Nope"}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompetitionService_ListActiveBySeries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	repo := competitionmock.NewRepository(t)
	service := NewCompetitionService(repo)
	service.now = func() time.Time { return now }

	repo.On("ListActive", mock.Anything, now).Return([]competition.Active{
		{Name: "a", SeriesName: "spring"},
		{Name: "b", SeriesName: ""},
		{Name: "c", SeriesName: "spring"},
	}, nil).Once()

	got, err := service.ListActiveBySeries(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(got["spring"]) != 2 || len(got[""]) != 1 {
		t.Fatalf("unexpected grouping: %+v", got)
	}
}
