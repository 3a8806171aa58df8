package postgres

import (
	"database/sql"
	"time"
)

type flatResultRow struct {
	PlayerName          string  `db:"player_name"`
	BaseSeedName        string  `db:"base_seed_name"`
	SiteGameID          int64   `db:"site_game_id"`
	Score               int     `db:"score"`
	Turns               int     `db:"turns"`
	SeedMatchpoints     int     `db:"seed_matchpoints"`
	SumMP               int64   `db:"sum_mp"`
	FractionalMP        float64 `db:"fractional_mp"`
	FinalRank           int64   `db:"final_rank"`
	ReplayURL           string  `db:"replay_url"`
	GameDurationSeconds int     `db:"game_duration_seconds"`
}

type combinedResultRow struct {
	CompetitionName     string         `db:"competition_name"`
	FinalRank           int64          `db:"final_rank"`
	FractionalMP        float64        `db:"fractional_mp"`
	SumMP               int64          `db:"sum_mp"`
	PlayerName          string         `db:"player_name"`
	BaseSeedName        string         `db:"base_seed_name"`
	SeedMatchpoints     int            `db:"seed_matchpoints"`
	SiteGameID          int64          `db:"site_game_id"`
	ReplayURL           string         `db:"replay_url"`
	Score               int            `db:"score"`
	Turns               int            `db:"turns"`
	DatetimeGameStarted time.Time      `db:"datetime_game_started"`
	DatetimeGameEnded   time.Time      `db:"datetime_game_ended"`
	CharacterName       sql.NullString `db:"character_name"`
}
