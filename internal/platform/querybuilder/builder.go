package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and positional ($n) arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) text(s string) {
	w.buf.WriteString(s)
}

func (w *sqlWriter) bind(v any) {
	w.args = append(w.args, v)
	w.buf.WriteString("$" + strconv.Itoa(len(w.args)))
}

// expr copies s, binding each '?' to the next value of exprArgs. Surplus '?'
// are left untouched.
func (w *sqlWriter) expr(s string, exprArgs []any) {
	next := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(s[i])
	}
}

type Condition interface {
	writeTo(w *sqlWriter)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) writeTo(w *sqlWriter) {
	w.text(c.column + " " + c.op + " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Gt(column string, value any) Condition {
	return compareCondition{column: column, op: ">", value: value}
}

type inCondition struct {
	column string
	values []any
}

// In renders "column IN (...)"; an empty value list matches nothing.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) writeTo(w *sqlWriter) {
	if len(c.values) == 0 {
		w.text("1=0")
		return
	}
	w.text(c.column + " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.text(", ")
		}
		w.bind(v)
	}
	w.text(")")
}

type exprCondition struct {
	sql  string
	args []any
}

// Expr is a raw condition whose '?' markers are bound to args in order.
func Expr(sql string, args ...any) Condition {
	return exprCondition{sql: sql, args: args}
}

func (c exprCondition) writeTo(w *sqlWriter) {
	w.expr(c.sql, c.args)
}

// NonEmpty drops conditions built from empty string filters.
func NonEmpty(column, value string) Condition {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return Eq(column, value)
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Join appends a raw join clause, e.g. "JOIN variants v ON v.id = c.variant_id".
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, strings.TrimSpace(clause))
	return b
}

// Where adds AND-ed conditions. Nil conditions are skipped.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	for _, c := range conditions {
		if c != nil {
			b.where = append(b.where, c)
		}
	}
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &sqlWriter{}
	w.text("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	for _, j := range b.joins {
		w.text(" " + j)
	}
	for i, c := range b.where {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.writeTo(w)
	}
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT " + strconv.Itoa(b.limit))
	}

	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := &sqlWriter{}
	w.text("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.text(", ")
		}
		w.text("(")
		for i, v := range row {
			if i > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}
	if b.suffix != "" {
		w.text(" " + b.suffix)
	}

	return w.buf.String(), w.args, nil
}
