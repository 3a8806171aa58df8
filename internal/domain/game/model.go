package game

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrPlayerCountMismatch = errors.New("game player count does not match competition team size")
	ErrUnknownSeed         = errors.New("unknown competition seed")
	ErrAlreadyStored       = errors.New("game already stored")
)

// Game is one played game as reported by the game site.
type Game struct {
	Players    []string
	SiteGameID int64
	Score      int
	Turns      int
	StartedAt  time.Time
	EndedAt    time.Time
}

// SeedGames groups the games played on one base seed.
type SeedGames struct {
	BaseSeedName string
	Games        []Game
}

// CompetitionGames is an ingestion batch for the competition identified by
// team size and site variant id. EndDate, when set, narrows the seed lookup to
// the competition ending on that date.
type CompetitionGames struct {
	NumPlayers    int
	SiteVariantID int
	EndDate       *time.Time
	SeedsGames    []SeedGames
}

// Validate checks that every game was played by exactly NumPlayers players.
func (c CompetitionGames) Validate() error {
	for _, seed := range c.SeedsGames {
		for _, g := range seed.Games {
			if len(g.Players) != c.NumPlayers {
				return fmt.Errorf("%w: game %d on seed %s has %d players, expected %d",
					ErrPlayerCountMismatch, g.SiteGameID, seed.BaseSeedName, len(g.Players), c.NumPlayers)
			}
		}
	}
	return nil
}

// Count returns the number of games in the batch.
func (c CompetitionGames) Count() int {
	total := 0
	for _, seed := range c.SeedsGames {
		total += len(seed.Games)
	}
	return total
}
