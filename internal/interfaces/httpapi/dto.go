package httpapi

import (
	"time"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	"github.com/hlcomp/hanabi-competitions/internal/domain/game"
	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
	"github.com/hlcomp/hanabi-competitions/internal/domain/series"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"github.com/hlcomp/hanabi-competitions/internal/domain/variant"
)

type createVariantRequest struct {
	ID   *int   `json:"id" validate:"required,gte=0"`
	Name string `json:"name" validate:"required,max=200"`
}

type createCompetitionRequest struct {
	NumPlayers        int        `json:"num_players" validate:"min=2,max=6"`
	Variant           string     `json:"variant" validate:"required"`
	EndTime           *time.Time `json:"end_time"`
	DeckplayEnabled   *bool      `json:"deckplay_enabled"`
	EmptyCluesEnabled *bool      `json:"empty_clues_enabled"`
	CharactersEnabled *bool      `json:"characters_enabled"`
	AdditionalRules   *string    `json:"additional_rules" validate:"omitempty,max=2000"`
	BaseSeedNames     []string   `json:"base_seed_names" validate:"omitempty,dive,required"`
	SeriesNames       []string   `json:"series_names" validate:"omitempty,dive,required"`
}

type ingestGameRequest struct {
	Players         []string  `json:"players" validate:"required,min=1,dive,required"`
	GameID          int64     `json:"game_id" validate:"required,gt=0"`
	Score           int       `json:"score" validate:"gte=0"`
	Turns           int       `json:"turns" validate:"gte=0"`
	DatetimeStarted time.Time `json:"datetime_started" validate:"required"`
	DatetimeEnded   time.Time `json:"datetime_ended" validate:"required"`
}

type ingestSeedGamesRequest struct {
	BaseSeedName string              `json:"base_seed_name" validate:"required"`
	Games        []ingestGameRequest `json:"games" validate:"dive"`
}

type ingestGamesRequest struct {
	NumPlayers int                      `json:"num_players" validate:"min=2,max=6"`
	VariantID  *int                     `json:"variant_id" validate:"required,gte=0"`
	EndDate    string                   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	SeedsGames []ingestSeedGamesRequest `json:"seeds_games" validate:"required,min=1,dive"`
}

type createSeriesRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	FirstN int    `json:"first_n" validate:"gte=0"`
	TopN   int    `json:"top_n" validate:"gte=0"`
}

type gameResultDTO struct {
	SeedMatchpoints     int    `json:"seed_matchpoints"`
	Score               int    `json:"score"`
	Turns               int    `json:"turns"`
	SiteGameID          int64  `json:"site_game_id"`
	ReplayURL           string `json:"replay_url"`
	GameDurationSeconds int    `json:"game_duration_seconds"`
}

type teamStandingDTO struct {
	Players      []*string        `json:"players"`
	FinalRank    int64            `json:"final_rank"`
	FractionalMP float64          `json:"fractional_mp"`
	SumMP        int64            `json:"sum_mp"`
	GameResults  []*gameResultDTO `json:"game_results"`
}

type nestedStandingsDTO struct {
	BaseSeedNames []string          `json:"base_seed_names"`
	TeamSize      int               `json:"team_size"`
	TeamResults   []teamStandingDTO `json:"team_results"`
}

type seriesRowDTO struct {
	PlayerName   string     `json:"player_name"`
	Rank         int        `json:"rank"`
	Score        float64    `json:"series_score"`
	Competitions []*float64 `json:"competitions"`
}

type seriesLeaderboardDTO struct {
	Name             string         `json:"name"`
	FirstN           int            `json:"first_n"`
	TopN             int            `json:"top_n"`
	CompetitionNames []string       `json:"competition_names"`
	Rows             []seriesRowDTO `json:"rows"`
}

type combinedResultDTO struct {
	CompetitionName     string    `json:"competition_name"`
	FinalRank           int64     `json:"final_rank"`
	FractionalMP        float64   `json:"fractional_mp"`
	SumMP               int64     `json:"sum_mp"`
	PlayerName          string    `json:"player_name"`
	BaseSeedName        string    `json:"base_seed_name"`
	SeedMatchpoints     int       `json:"seed_matchpoints"`
	SiteGameID          int64     `json:"site_game_id"`
	ReplayURL           string    `json:"replay_url"`
	Score               int       `json:"score"`
	Turns               int       `json:"turns"`
	DatetimeGameStarted time.Time `json:"datetime_game_started"`
	DatetimeGameEnded   time.Time `json:"datetime_game_ended"`
	CharacterName       *string   `json:"character_name"`
}

type createdDTO struct {
	Created int `json:"created"`
}

func (r createVariantRequest) toDomain() variant.Variant {
	return variant.Variant{ID: *r.ID, Name: r.Name}
}

func (r createCompetitionRequest) toDomain() competition.PartialCompetition {
	return competition.PartialCompetition{
		NumPlayers:        r.NumPlayers,
		VariantName:       r.Variant,
		EndTime:           r.EndTime,
		DeckplayEnabled:   r.DeckplayEnabled,
		EmptyCluesEnabled: r.EmptyCluesEnabled,
		CharactersEnabled: r.CharactersEnabled,
		AdditionalRules:   r.AdditionalRules,
		BaseSeedNames:     r.BaseSeedNames,
		SeriesNames:       r.SeriesNames,
	}
}

func (r ingestGamesRequest) toDomain() (game.CompetitionGames, error) {
	out := game.CompetitionGames{
		NumPlayers:    r.NumPlayers,
		SiteVariantID: *r.VariantID,
		SeedsGames:    make([]game.SeedGames, 0, len(r.SeedsGames)),
	}
	if r.EndDate != "" {
		end, err := time.Parse(time.DateOnly, r.EndDate)
		if err != nil {
			return game.CompetitionGames{}, err
		}
		out.EndDate = &end
	}
	for _, seed := range r.SeedsGames {
		games := make([]game.Game, 0, len(seed.Games))
		for _, g := range seed.Games {
			games = append(games, game.Game{
				Players:    g.Players,
				SiteGameID: g.GameID,
				Score:      g.Score,
				Turns:      g.Turns,
				StartedAt:  g.DatetimeStarted,
				EndedAt:    g.DatetimeEnded,
			})
		}
		out.SeedsGames = append(out.SeedsGames, game.SeedGames{BaseSeedName: seed.BaseSeedName, Games: games})
	}
	return out, nil
}

func (r createSeriesRequest) toDomain() series.Series {
	return series.Series{Name: r.Name, FirstN: r.FirstN, TopN: r.TopN}
}

func nestedStandingsToDTO(v standings.NestedStandings) nestedStandingsDTO {
	out := nestedStandingsDTO{
		BaseSeedNames: v.BaseSeedNames,
		TeamSize:      v.TeamSize,
		TeamResults:   make([]teamStandingDTO, 0, len(v.TeamResults)),
	}
	for _, team := range v.TeamResults {
		games := make([]*gameResultDTO, 0, len(team.GameResults))
		for _, g := range team.GameResults {
			if g == nil {
				games = append(games, nil)
				continue
			}
			games = append(games, &gameResultDTO{
				SeedMatchpoints:     g.SeedMatchpoints,
				Score:               g.Score,
				Turns:               g.Turns,
				SiteGameID:          g.SiteGameID,
				ReplayURL:           g.ReplayURL,
				GameDurationSeconds: g.GameDurationSeconds,
			})
		}
		out.TeamResults = append(out.TeamResults, teamStandingDTO{
			Players:      team.Players,
			FinalRank:    team.FinalRank,
			FractionalMP: team.FractionalMP,
			SumMP:        team.SumMP,
			GameResults:  games,
		})
	}
	return out
}

func seriesLeaderboardToDTO(v series.Leaderboard) seriesLeaderboardDTO {
	out := seriesLeaderboardDTO{
		Name:             v.Series.Name,
		FirstN:           v.Series.FirstN,
		TopN:             v.Series.TopN,
		CompetitionNames: v.CompetitionNames,
		Rows:             make([]seriesRowDTO, 0, len(v.Rows)),
	}
	for _, row := range v.Rows {
		out.Rows = append(out.Rows, seriesRowDTO{
			PlayerName:   row.PlayerName,
			Rank:         row.Rank,
			Score:        row.Score,
			Competitions: row.Competitions,
		})
	}
	return out
}

func combinedResultsToDTO(items []result.CombinedResult) []combinedResultDTO {
	out := make([]combinedResultDTO, 0, len(items))
	for _, v := range items {
		out = append(out, combinedResultDTO{
			CompetitionName:     v.CompetitionName,
			FinalRank:           v.FinalRank,
			FractionalMP:        v.FractionalMP,
			SumMP:               v.SumMP,
			PlayerName:          v.PlayerName,
			BaseSeedName:        v.BaseSeedName,
			SeedMatchpoints:     v.SeedMatchpoints,
			SiteGameID:          v.SiteGameID,
			ReplayURL:           v.ReplayURL,
			Score:               v.Score,
			Turns:               v.Turns,
			DatetimeGameStarted: v.DatetimeGameStarted,
			DatetimeGameEnded:   v.DatetimeGameEnded,
			CharacterName:       v.CharacterName,
		})
	}
	return out
}
