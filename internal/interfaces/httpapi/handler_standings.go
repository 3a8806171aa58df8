package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type competitionPage struct {
	Name      string
	Standings standings.NestedStandings
}

func (h *Handler) GetCompetitionStandings(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionStandings", attribute.String("competition.name", name))
	defer span.End()

	nested, err := h.standingsService.GetNested(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition standings failed", "competition", name, "error", err)
		writeReadError(ctx, w, err)
		return
	}

	if wantsRaw(r) {
		writeSuccess(ctx, w, http.StatusOK, nestedStandingsToDTO(nested))
		return
	}
	if err := renderHTML(ctx, w, "competition.html", competitionPage{Name: name, Standings: nested}); err != nil {
		h.logger.ErrorContext(ctx, "render competition standings failed", "competition", name, "error", err)
		writeInternalError(ctx, w)
	}
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	filter, err := resultFilterFromQuery(r)
	if err != nil {
		writeReadError(ctx, w, err)
		return
	}

	items, err := h.resultService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "error", err)
		writeReadError(ctx, w, err)
		return
	}

	if wantsRaw(r) {
		writeSuccess(ctx, w, http.StatusOK, combinedResultsToDTO(items))
		return
	}
	if err := renderHTML(ctx, w, "results.html", items); err != nil {
		h.logger.ErrorContext(ctx, "render results failed", "error", err)
		writeInternalError(ctx, w)
	}
}

func resultFilterFromQuery(r *http.Request) (result.Filter, error) {
	query := r.URL.Query()
	filter := result.Filter{
		CompetitionName: query.Get("competition_name"),
		PlayerName:      query.Get("player_name"),
		BaseSeedName:    query.Get("base_seed_name"),
		VariantName:     query.Get("variant"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return result.Filter{}, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
		}
		filter.Limit = limit
	}
	return filter, nil
}
