package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PabloGalante/questionnaire-agent/internal/app/results"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.engine.CreateSession(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionCreatedResponse{SessionID: string(id)})
}

// handleStart creates a session and presents its first question.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id, err := s.engine.CreateSession(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.start(w, r, id)
}

func (s *Server) handleStartExisting(w http.ResponseWriter, r *http.Request) {
	s.start(w, r, domain.SessionID(chi.URLParam(r, "id")))
}

func (s *Server) start(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	reply, err := s.engine.Start(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMessageResponse(id, reply))
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		badRequest(w, "session_id is required")
		return
	}

	id := domain.SessionID(req.SessionID)
	reply, err := s.engine.Submit(r.Context(), id, req.Value)
	if errors.Is(err, domain.ErrNoCurrentQuestion) {
		writeJSON(w, http.StatusOK, messageResponse{
			SessionID:  req.SessionID,
			Message:    domain.NoCurrentQuestion,
			IsComplete: true,
		})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if reply.IsComplete && !reply.NeedsClarification {
		s.export(r.Context(), id)
	}

	writeJSON(w, http.StatusOK, toMessageResponse(id, reply))
}

// export pushes a freshly completed session to the result sinks. It runs
// to completion even if the client goes away.
func (s *Server) export(ctx context.Context, id domain.SessionID) {
	if s.results == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	session, err := s.engine.Session(ctx, id)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("could not load session for export",
			"session_id", id, "error", err)
		return
	}
	s.results.Export(ctx, results.BuildResult(s.catalog.Questions(), session))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.Status(r.Context(), domain.SessionID(chi.URLParam(r, "id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusResponse(*st))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	list, err := s.engine.ListSessions(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := sessionsResponse{Sessions: make([]statusResponse, 0, len(list))}
	for _, st := range list {
		resp.Sessions = append(resp.Sessions, toStatusResponse(st))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResponses(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(chi.URLParam(r, "id"))
	answers, err := s.engine.Responses(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := responsesResponse{SessionID: string(id), Responses: make([]answerResponse, 0, len(answers))}
	for _, a := range answers {
		resp.Responses = append(resp.Responses, answerResponse{
			QuestionID: string(a.QuestionID),
			Question:   a.QuestionText,
			Value:      a.Value,
			Timestamp:  a.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	qs := s.catalog.Questions()
	resp := questionsResponse{Count: len(qs), Questions: make([]questionResponse, 0, len(qs))}
	for i := range qs {
		resp.Questions = append(resp.Questions, *toQuestionResponse(&qs[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	qs := s.catalog.Load(r.Context())
	writeJSON(w, http.StatusOK, reloadResponse{Count: len(qs)})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	if s.results == nil {
		writeJSON(w, http.StatusOK, resultsResponse{Results: []*domain.SessionResult{}})
		return
	}
	list, err := s.results.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: list})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(w, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Session not found"})
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Question not found"})
	default:
		internalError(w, r, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}
