package httpapi

import (
	"net/http"
	"time"
)

type indexDTO struct {
	CompetitionNames []string                    `json:"competition_names"`
	ActiveBySeries   map[string][]activeEntryDTO `json:"active_by_series"`
}

type activeEntryDTO struct {
	Name    string    `json:"name"`
	EndTime time.Time `json:"end_time"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Index")
	defer span.End()

	index, err := h.indexService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load index failed", "error", err)
		writeReadError(ctx, w, err)
		return
	}

	if wantsRaw(r) {
		out := indexDTO{
			CompetitionNames: index.CompetitionNames,
			ActiveBySeries:   make(map[string][]activeEntryDTO, len(index.ActiveBySeries)),
		}
		for seriesName, items := range index.ActiveBySeries {
			entries := make([]activeEntryDTO, 0, len(items))
			for _, item := range items {
				entries = append(entries, activeEntryDTO{Name: item.Name, EndTime: item.EndTime.UTC()})
			}
			out.ActiveBySeries[seriesName] = entries
		}
		writeSuccess(ctx, w, http.StatusOK, out)
		return
	}
	if err := renderHTML(ctx, w, "index.html", index); err != nil {
		h.logger.ErrorContext(ctx, "render index failed", "error", err)
		writeInternalError(ctx, w)
	}
}
