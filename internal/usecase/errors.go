package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/hlcomp/hanabi-competitions/internal/platform/resilience"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConsistency           = errors.New("inconsistent submission")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// storeError wraps a repository error, marking open circuits as an
// unavailable dependency.
func storeError(op string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
