// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/law-makers/linkresolve/internal/reqctx"
	"github.com/law-makers/linkresolve/pkg/models"
)

func (s *Server) destinationURL(w http.ResponseWriter, r *http.Request) {
	var req models.DestinationRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Base == nil || req.Target == nil {
		s.writeError(w, r, NewAPIError(ErrCodeValidation, http.StatusBadRequest, "base and target are required", nil))
		return
	}

	dest, ok := s.opts.Resolve(*req.Base, *req.Target)
	if !ok {
		s.writeError(w, r, errNoDestination)
		return
	}
	s.writeJSON(w, http.StatusOK, models.ResultResponse{Result: dest})
}

func (s *Server) sanitize(w http.ResponseWriter, r *http.Request) {
	var req models.SanitizeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.URL == nil {
		s.writeError(w, r, NewAPIError(ErrCodeValidation, http.StatusBadRequest, "url is required", nil))
		return
	}
	s.writeJSON(w, http.StatusOK, models.ResultResponse{Result: s.opts.Sanitize(*req.URL)})
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: s.opts.Uptime().Round(time.Second).String(),
	})
}

// decode reads a JSON body of at most MaxBodyBytes into v
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewAPIError(ErrCodeBadRequest, http.StatusRequestEntityTooLarge, "request body too large", err)
		}
		return NewAPIError(ErrCodeBadRequest, http.StatusBadRequest, "request body must be a JSON object", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.opts.Logger.Warn().Err(err).Msg("Failed to write response")
	}
}

// writeError answers with the status and code of err when it is an
// *APIError, 500 otherwise.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	rc := reqctx.GetRequestContext(r.Context())

	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		s.opts.Logger.Error().Err(reqctx.NewRequestError(r.Context(), err)).Msg("Request failed")
		apiErr = NewAPIError(ErrCodeInternal, http.StatusInternalServerError, "internal error", err)
	} else if apiErr.Underlying != nil {
		s.opts.Logger.Debug().
			Str("request_id", rc.RequestID).
			Err(apiErr.Underlying).
			Msg(apiErr.Message)
	}

	var body errorBody
	body.Error.Code = apiErr.Code
	body.Error.Message = apiErr.Message
	body.Error.RequestID = rc.RequestID
	s.writeJSON(w, apiErr.Status, body)
}
