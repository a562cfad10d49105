package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/outings/internal/app"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	var req app.RecommendRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.RequestID = requestIDFrom(r.Context())

	resp, err := s.recommend.Recommend(r.Context(), req)
	if err != nil {
		s.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReactions(w http.ResponseWriter, r *http.Request) {
	var req app.ReactRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.feedback.React(r.Context(), req)
	if err != nil {
		s.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.feedback.Preferences(r.Context()))
}

func (s *Server) handleClearPreferences(w http.ResponseWriter, r *http.Request) {
	if err := s.feedback.Clear(r.Context()); err != nil {
		s.writeUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLimited(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusTooManyRequests, errorBody{
		Error:   "Rate limited",
		Details: "Too many searches. Please wait a minute and try again.",
	})
}

func (s *Server) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var re *app.RecommendError
	if errors.As(err, &re) {
		status := re.HTTPStatus()
		if status >= http.StatusInternalServerError {
			s.logger.Error("request failed",
				"request_id", requestIDFrom(r.Context()),
				"code", string(re.Code),
				"error", err)
		}
		writeJSON(w, status, errorBody{Error: re.Message, Details: re.Hint})
		return
	}
	s.logger.Error("request failed", "request_id", requestIDFrom(r.Context()), "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error", Details: err.Error()})
}
