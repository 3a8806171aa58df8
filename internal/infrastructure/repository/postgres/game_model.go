package postgres

import "time"

type gameInsertModel struct {
	SiteGameID      int64     `db:"site_game_id"`
	SeedID          int64     `db:"seed_id"`
	Score           int       `db:"score"`
	Turns           int       `db:"turns"`
	DatetimeStarted time.Time `db:"datetime_started"`
	DatetimeEnded   time.Time `db:"datetime_ended"`
}
