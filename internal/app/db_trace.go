package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	querySpaceParenRegex = regexp.MustCompile(`\(\s+|\s+\)`)
)

// formatDBQueryForTrace collapses whitespace in SQL statements before they
// become span attributes and truncates long batch inserts.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = querySpaceParenRegex.ReplaceAllStringFunc(normalized, strings.TrimSpace)
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
