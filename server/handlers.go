package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-onboarding-server/session"
)

// CreateSessionHandler starts the wizard: it resumes an unexpired persisted
// session or creates a fresh one at step 0.
func (s *Server) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.wizard.StartOrResume()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sess)
	}
}

// GetSessionHandler returns the current session; an expired or absent one
// is a 404.
func (s *Server) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.wizard.Session()
		if err != nil {
			writeError(w, err)
			return
		}
		if sess == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no_session"})
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// ClearSessionHandler discards the session record.
func (s *Server) ClearSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Clear(); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// UpdateStepHandler merges a partial update into one step's form data. The
// body is a step-shaped patch: only the provided keys are overwritten.
func (s *Server) UpdateStepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		step, ok := session.StepFromKey(r.PathValue("step"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown_step"})
			return
		}

		patch, err := decodePatch(step, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body"})
			return
		}

		sess, err := s.wizard.UpdateStep(patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// AdvanceHandler moves forward one step if the current step validates.
func (s *Server) AdvanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.wizard.Advance()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// RetreatHandler moves back one step, preserving all entered data.
func (s *Server) RetreatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.wizard.Retreat()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// GotoHandler jumps to an already-visited step.
func (s *Server) GotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.PathValue("step"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_step"})
			return
		}

		sess, err := s.wizard.JumpToStep(session.Step(n))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// CompleteHandler seals the session from the terminal step.
func (s *Server) CompleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.wizard.Complete()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// ExportHandler returns the final payload, or a JSON null when the session
// is absent or not completed (export is a query, not a command).
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := s.exporter.Export()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

// FinalizeHandler completes the session, exports it, and creates the
// account, returning the new user plus a signup token.
func (s *Server) FinalizeHandler() http.HandlerFunc {
	type response struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Token  string `json:"token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.wizard.Complete(); err != nil {
			writeError(w, err)
			return
		}

		payload, err := s.exporter.Export()
		if err != nil {
			writeError(w, err)
			return
		}

		user, token, err := s.accounts.Create(payload)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, response{UserID: user.ID, Email: user.Email, Token: token})
	}
}

func decodePatch(step session.Step, r *http.Request) (session.Patch, error) {
	decode := func(target any) error {
		return json.NewDecoder(r.Body).Decode(target)
	}

	switch step {
	case session.StepPersonalInfo:
		var patch session.PersonalInfoPatch
		return patch, decode(&patch)
	case session.StepCountry:
		var patch session.CountryPatch
		return patch, decode(&patch)
	case session.StepCompany:
		var patch session.CompanyPatch
		return patch, decode(&patch)
	case session.StepCollectedData:
		var patch session.CollectedDataPatch
		return patch, decode(&patch)
	default:
		var patch session.BrandingPatch
		return patch, decode(&patch)
	}
}
