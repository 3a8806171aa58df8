package postgres

import "time"

type competitionInsertModel struct {
	NumPlayers        int       `db:"num_players"`
	VariantID         int64     `db:"variant_id"`
	EndTime           time.Time `db:"end_time"`
	DeckplayEnabled   bool      `db:"deckplay_enabled"`
	EmptyCluesEnabled bool      `db:"empty_clues_enabled"`
	CharactersEnabled bool      `db:"characters_enabled"`
	AdditionalRules   string    `db:"additional_rules"`
}

type activeCompetitionRow struct {
	Name       string    `db:"name"`
	SeriesName string    `db:"series_name"`
	EndTime    time.Time `db:"end_time"`
}
