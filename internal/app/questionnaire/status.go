package questionnaire

import (
	"context"
	"time"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

type Status struct {
	SessionID             domain.SessionID
	CurrentIndex          int
	Total                 int
	Completed             bool
	AwaitingClarification bool
	ResponseCount         int
	UpdatedAt             time.Time
}

// Answer is a recorded response together with the question it belongs to.
type Answer struct {
	QuestionID   domain.QuestionID
	QuestionText string
	Value        domain.Value
	Timestamp    string
}

func (s *Service) Status(ctx context.Context, id domain.SessionID) (*Status, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	st := s.statusOf(session)
	return &st, nil
}

// ListSessions returns the status of the most recently updated sessions.
func (s *Service) ListSessions(ctx context.Context, limit int) ([]Status, error) {
	sessions, err := s.store.ListSessions(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, s.statusOf(sess))
	}
	return out, nil
}

// Session returns a copy of the stored state.
func (s *Service) Session(ctx context.Context, id domain.SessionID) (*domain.SessionState, error) {
	return s.store.GetSession(ctx, id)
}

// Responses lists the answered questions in the order they were answered.
func (s *Service) Responses(ctx context.Context, id domain.SessionID) ([]Answer, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]Answer, 0, len(session.Responses))
	for _, r := range session.Responses {
		text := "Unknown"
		if q, ok := s.questions.GetByID(r.QuestionID); ok {
			text = q.Text
		}
		out = append(out, Answer{
			QuestionID:   r.QuestionID,
			QuestionText: text,
			Value:        r.Value,
			Timestamp:    r.Timestamp,
		})
	}
	return out, nil
}

func (s *Service) statusOf(session *domain.SessionState) Status {
	return Status{
		SessionID:             session.ID,
		CurrentIndex:          session.CurrentQuestionIndex,
		Total:                 s.questions.Size(),
		Completed:             session.Completed,
		AwaitingClarification: session.AwaitingClarification,
		ResponseCount:         len(session.Responses),
		UpdatedAt:             session.UpdatedAt,
	}
}
