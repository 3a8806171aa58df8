package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/hlcomp/hanabi-competitions/internal/domain/series"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetSeriesLeaderboard(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeriesLeaderboard", attribute.String("series.name", name))
	defer span.End()

	maxComps := 0
	if raw := r.URL.Query().Get("max_num_comps"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeReadError(ctx, w, fmt.Errorf("%w: max_num_comps must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		maxComps = v
	}

	board, err := h.seriesService.Leaderboard(ctx, name, maxComps)
	if err != nil {
		h.logger.WarnContext(ctx, "get series leaderboard failed", "series", name, "error", err)
		writeReadError(ctx, w, err)
		return
	}

	if wantsRaw(r) {
		writeSuccess(ctx, w, http.StatusOK, seriesLeaderboardToDTO(board))
		return
	}
	if err := renderHTML(ctx, w, "series.html", board); err != nil {
		h.logger.ErrorContext(ctx, "render series leaderboard failed", "series", name, "error", err)
		writeInternalError(ctx, w)
	}
}

func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeries")
	defer span.End()

	var req []createSeriesRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := validateEach(ctx, h, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]series.Series, 0, len(req))
	for _, item := range req {
		items = append(items, item.toDomain())
	}
	if err := h.seriesService.Create(ctx, items); err != nil {
		h.logger.WarnContext(ctx, "create series failed", "admin", adminUserFromContext(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "series created", "admin", adminUserFromContext(ctx), "count", len(items))
	writeSuccess(ctx, w, http.StatusCreated, createdDTO{Created: len(items)})
}
