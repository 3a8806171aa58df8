package httpapi

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"fracMP":   formatFractionalMP,
		"player":   formatPlayer,
		"duration": formatDuration,
		"optFrac":  formatOptionalFractionalMP,
	}).ParseFS(templateFS, "templates/*.html"),
)

// renderHTML executes a page into a pooled buffer first so a template error
// never leaves a half-written response.
func renderHTML(ctx context.Context, w http.ResponseWriter, name string, data any) error {
	_, span := startSpan(ctx, "httpapi.renderHTML")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := pageTemplates.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}

// formatFractionalMP renders 1 as "1" and everything else with three
// decimals and no leading zero, e.g. ".500".
func formatFractionalMP(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	switch {
	case s == "1.000":
		return "1"
	case strings.HasPrefix(s, "0."):
		return s[1:]
	default:
		return s
	}
}

func formatOptionalFractionalMP(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFractionalMP(*v)
}

func formatPlayer(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
