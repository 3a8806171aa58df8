package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
)

type ResultService struct {
	repo result.Repository
}

func NewResultService(repo result.Repository) *ResultService {
	return &ResultService{repo: repo}
}

func (s *ResultService) List(ctx context.Context, filter result.Filter) ([]result.CombinedResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.List")
	defer span.End()

	filter.CompetitionName = strings.TrimSpace(filter.CompetitionName)
	filter.PlayerName = strings.TrimSpace(filter.PlayerName)
	filter.BaseSeedName = strings.TrimSpace(filter.BaseSeedName)
	filter.VariantName = strings.TrimSpace(filter.VariantName)
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx, filter.Normalize())
	if err != nil {
		return nil, storeError("list results", err)
	}
	return items, nil
}
