package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-onboarding-server/collect"
	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
)

// CollectHandler runs the collection pipeline and streams progress
// notifications as NDJSON, one object per line, ending with a terminal
// result line. Cancelling the request cancels the pipeline between stages.
func (s *Server) CollectHandler() http.HandlerFunc {
	type request struct {
		CompanyID string `json:"company_id"`
	}
	type terminal struct {
		Result string `json:"result"` // "completed" or "failed"
		Stage  string `json:"stage,omitempty"`
		Error  string `json:"error,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body"})
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming_unsupported"})
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		var writeMu sync.Mutex
		writeLine := func(v any) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := json.NewEncoder(w).Encode(v); err != nil {
				log.Debug().Err(err).Msg("client went away during collection stream")
				return
			}
			flusher.Flush()
		}

		_, err := s.wizard.RunCollection(r.Context(), req.CompanyID, func(n collect.Notification) {
			writeLine(n)
		})
		if err != nil {
			line := terminal{Result: "failed", Error: err.Error()}
			var stageErr *onberrors.StageFailedError
			if onberrors.As(err, &stageErr) {
				line.Stage = stageErr.Stage
			}
			writeLine(line)
			return
		}

		writeLine(terminal{Result: "completed"})
	}
}

// LogoDiscoverHandler asks the logo provider for a candidate logo. A
// negative finding is a 200 with found=false.
func (s *Server) LogoDiscoverHandler() http.HandlerFunc {
	type request struct {
		WebsiteURL string `json:"website_url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WebsiteURL == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body"})
			return
		}

		result, err := s.wizard.DiscoverLogo(r.Context(), req.WebsiteURL)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// LogoUploadHandler accepts a multipart logo upload, validates it, stores
// it, and records it in the branding slot.
func (s *Server) LogoUploadHandler() http.HandlerFunc {
	const maxUploadBytes = 4 << 20

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_multipart_body"})
			return
		}

		file, header, err := r.FormFile("logo")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing_logo_file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable_logo_file"})
			return
		}

		logo := lookup.LogoFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			SizeBytes:   int64(len(data)),
			Data:        data,
		}

		sess, err := s.wizard.UploadLogo(r.Context(), logo)
		if err != nil {
			if onberrors.Is(err, onberrors.ErrNoSession) {
				writeError(w, err)
				return
			}
			// File validation failures carry their own message
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}
