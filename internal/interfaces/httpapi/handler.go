package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/hlcomp/hanabi-competitions/internal/platform/logging"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
)

type Handler struct {
	standingsService   *usecase.StandingsService
	competitionService *usecase.CompetitionService
	gameService        *usecase.GameService
	variantService     *usecase.VariantService
	seriesService      *usecase.SeriesService
	resultService      *usecase.ResultService
	indexService       *usecase.IndexService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	standingsService *usecase.StandingsService,
	competitionService *usecase.CompetitionService,
	gameService *usecase.GameService,
	variantService *usecase.VariantService,
	seriesService *usecase.SeriesService,
	resultService *usecase.ResultService,
	indexService *usecase.IndexService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService:   standingsService,
		competitionService: competitionService,
		gameService:        gameService,
		variantService:     variantService,
		seriesService:      seriesService,
		resultService:      resultService,
		indexService:       indexService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeJSON reads a strict JSON body into dst and validates it. Top-level
// arrays are validated element by element.
func (h *Handler) decodeJSON(ctx context.Context, body io.Reader, dst any) error {
	decoder := jsoniter.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func validateEach[T any](ctx context.Context, h *Handler, items []T) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: request must contain at least one item", usecase.ErrInvalidInput)
	}
	for i := range items {
		if err := h.validateRequest(ctx, items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// wantsRaw reports whether a view was asked for as JSON instead of HTML.
func wantsRaw(r *http.Request) bool {
	switch r.URL.Query().Get("raw") {
	case "1", "true", "yes":
		return true
	}
	return false
}
