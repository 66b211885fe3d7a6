package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-onboarding-server/account"
	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// errorResponse is the uniform error body. Missing and Stage are only
// populated for validation and stage failures respectively; Retry hints
// that re-issuing the same request may succeed.
type errorResponse struct {
	Error   string   `json:"error"`
	Step    string   `json:"step,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Stage   string   `json:"stage,omitempty"`
	Retry   bool     `json:"retry,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *onberrors.ValidationError
	var persistenceErr *onberrors.PersistenceError
	var stageErr *onberrors.StageFailedError

	switch {
	case onberrors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Step:    validationErr.Step,
			Missing: validationErr.Missing,
		})
	case onberrors.As(err, &stageErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: "stage_failed",
			Stage: stageErr.Stage,
			Retry: true,
		})
	case onberrors.As(err, &persistenceErr):
		log.Error().Err(err).Msg("persistence failure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "persistence_failed",
			Retry: true,
		})
	case onberrors.Is(err, onberrors.ErrPipelineBusy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "collection_in_progress"})
	case onberrors.Is(err, onberrors.ErrNoSession):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no_session"})
	case onberrors.Is(err, account.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "email_taken"})
	case onberrors.Is(err, onberrors.ErrInvalidSIREN):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid_siren"})
	case onberrors.Is(err, onberrors.ErrForwardJump),
		onberrors.Is(err, onberrors.ErrStepOutOfRange),
		onberrors.Is(err, onberrors.ErrAlreadyAtStart),
		onberrors.Is(err, onberrors.ErrNotTerminalStep),
		onberrors.Is(err, onberrors.ErrSessionConsumed):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}
