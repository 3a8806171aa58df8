package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// dbTarget is a connection string resolved for one pool.
type dbTarget struct {
	dsn  string
	name string
	// display is safe to log; passwords are redacted.
	display string
}

// parseDBTarget accepts both URL (postgres://) and keyword (host=... dbname=...)
// connection strings. Unparsable input is passed through to the driver as-is.
func parseDBTarget(raw string, disablePreparedBinary bool) dbTarget {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return parseKeywordTarget(raw, disablePreparedBinary)
	}

	if disablePreparedBinary {
		q := u.Query()
		if q.Get(preparedBinaryParam) == "" {
			q.Set(preparedBinaryParam, "yes")
			u.RawQuery = q.Encode()
		}
	}
	return dbTarget{
		dsn:     u.String(),
		name:    strings.TrimPrefix(u.Path, "/"),
		display: u.Redacted(),
	}
}

func parseKeywordTarget(raw string, disablePreparedBinary bool) dbTarget {
	out := dbTarget{dsn: raw}
	hasFlag := false
	display := make([]string, 0)
	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			display = append(display, token)
			continue
		}
		switch key {
		case "dbname":
			out.name = strings.Trim(value, `"'`)
		case "password":
			token = "password=xxxxx"
		case preparedBinaryParam:
			hasFlag = true
		}
		display = append(display, token)
	}
	if disablePreparedBinary && !hasFlag && raw != "" {
		out.dsn = raw + " " + preparedBinaryParam + "=yes"
	}
	out.display = strings.Join(display, " ")
	return out
}
