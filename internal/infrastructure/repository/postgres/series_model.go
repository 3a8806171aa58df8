package postgres

type seriesTableModel struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	FirstN int    `db:"first_n"`
	TopN   int    `db:"top_n"`
}

type seriesInsertModel struct {
	Name   string `db:"name"`
	FirstN int    `db:"first_n"`
	TopN   int    `db:"top_n"`
}
