package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"github.com/hlcomp/hanabi-competitions/internal/infrastructure/credentials"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "hanabi-competitions"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	writeMappedError(ctx, w, err, mapError(ctx, err))
}

// writeReadError reports failures of read-only views. Every client-side
// failure, including an unknown competition or series, is a bad request.
func writeReadError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= 400 && mapped.HTTPStatus < 500 {
		mapped.HTTPStatus = http.StatusBadRequest
		mapped.Status = "INVALID_ARGUMENT"
	}
	writeMappedError(ctx, w, err, mapped)
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, err error, mapped mappedError) {
	if mapped.HTTPStatus >= http.StatusInternalServerError && mapped.Reason == "internalError" {
		writeInternalError(ctx, w)
		return
	}
	if mapped.HTTPStatus == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrConsistency),
		errors.Is(err, standings.ErrRosterExceedsTeamSize),
		errors.Is(err, standings.ErrInvalidTeamSize):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "inconsistentData",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, credentials.ErrMalformedCredentials),
		errors.Is(err, credentials.ErrMissingPassword):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "malformedCredentials",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, credentials.ErrBadCredentials),
		errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
