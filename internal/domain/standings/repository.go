package standings

import "context"

// Source returns the scored per-player-per-game rows of a competition.
type Source interface {
	ListByCompetition(ctx context.Context, competitionName string) ([]FlatResult, error)
}
