package httpapi

import (
	"fmt"
	"net/http"

	"github.com/hlcomp/hanabi-competitions/internal/domain/competition"
	"github.com/hlcomp/hanabi-competitions/internal/domain/game"
	"github.com/hlcomp/hanabi-competitions/internal/domain/variant"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
)

func (h *Handler) CreateVariants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateVariants")
	defer span.End()

	var req []createVariantRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := validateEach(ctx, h, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]variant.Variant, 0, len(req))
	for _, item := range req {
		items = append(items, item.toDomain())
	}
	if err := h.variantService.Create(ctx, items); err != nil {
		h.logger.WarnContext(ctx, "create variants failed", "admin", adminUserFromContext(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "variants created", "admin", adminUserFromContext(ctx), "count", len(items))
	writeSuccess(ctx, w, http.StatusCreated, createdDTO{Created: len(items)})
}

func (h *Handler) CreateCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetitions")
	defer span.End()

	var req []createCompetitionRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := validateEach(ctx, h, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]competition.PartialCompetition, 0, len(req))
	for _, item := range req {
		items = append(items, item.toDomain())
	}
	created, err := h.competitionService.Create(ctx, items)
	if err != nil {
		h.logger.WarnContext(ctx, "create competitions failed", "admin", adminUserFromContext(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "competitions created", "admin", adminUserFromContext(ctx), "count", len(created))
	writeSuccess(ctx, w, http.StatusCreated, createdDTO{Created: len(created)})
}

func (h *Handler) IngestGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestGames")
	defer span.End()

	var req []ingestGamesRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := validateEach(ctx, h, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	batches := make([]game.CompetitionGames, 0, len(req))
	for i, item := range req {
		batch, err := item.toDomain()
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: item %d: invalid end_date: %v", usecase.ErrInvalidInput, i, err))
			return
		}
		batches = append(batches, batch)
	}

	stored, err := h.gameService.Ingest(ctx, batches)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest games failed", "admin", adminUserFromContext(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "games ingested", "admin", adminUserFromContext(ctx), "count", stored)
	writeSuccess(ctx, w, http.StatusCreated, createdDTO{Created: stored})
}
