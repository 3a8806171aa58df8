package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hlcomp/hanabi-competitions/internal/domain/variant"
)

type VariantService struct {
	repo variant.Repository
}

func NewVariantService(repo variant.Repository) *VariantService {
	return &VariantService{repo: repo}
}

func (s *VariantService) Create(ctx context.Context, items []variant.Variant) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.VariantService.Create")
	defer span.End()

	if len(items) == 0 {
		return fmt.Errorf("%w: at least one variant is required", ErrInvalidInput)
	}
	names := make(map[string]struct{}, len(items))
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		if items[i].Name == "" {
			return fmt.Errorf("%w: variants[%d]: name is required", ErrInvalidInput, i)
		}
		if _, dup := names[items[i].Name]; dup {
			return fmt.Errorf("%w: variant %q submitted twice", ErrInvalidInput, items[i].Name)
		}
		names[items[i].Name] = struct{}{}
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		if errors.Is(err, variant.ErrAlreadyExists) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return fmt.Errorf("create variants: %w", err)
	}
	return nil
}
