// Package questionnaire drives sessions through the question catalog.
package questionnaire

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/questionnaire-agent/internal/app/validation"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

// Questions is the read side of the catalog the engine needs.
type Questions interface {
	Get(index int) (domain.Question, bool)
	GetByID(id domain.QuestionID) (domain.Question, bool)
	Size() int
}

type Service struct {
	questions Questions
	store     domain.SessionStore
	phraser   domain.Phraser
	now       func() time.Time
	newID     func() string

	locks *sessionLocks
}

type Option func(*Service)

// WithClock overrides time.Now; the clock feeds timestamps and the
// date-of-birth check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the UUID session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(
	questions Questions,
	store domain.SessionStore,
	phraser domain.Phraser,
	opts ...Option,
) *Service {
	s := &Service{
		questions: questions,
		store:     store,
		phraser:   phraser,
		now:       time.Now,
		newID:     uuid.NewString,
		locks:     newSessionLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession registers a fresh session and returns its id.
func (s *Service) CreateSession(ctx context.Context) (domain.SessionID, error) {
	now := s.now()
	session := &domain.SessionState{
		ID:        domain.SessionID(s.newID()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)

	if err := s.store.CreateSession(ctx, session); err != nil {
		log.Error("failed to create session", "error", err)
		return "", err
	}

	observability.SessionsCreated.Inc()
	log.Info("session created")
	return session.ID, nil
}

// Start presents the session's current question. A fresh session gets the
// first question with a welcome; an empty catalog completes the session
// immediately.
func (s *Service) Start(ctx context.Context, id domain.SessionID) (*domain.Reply, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", id)
	log.Info("starting session", "current_index", session.CurrentQuestionIndex)

	if session.Completed {
		return s.completionReply(ctx, ""), nil
	}

	if s.questions.Size() == 0 {
		session.Completed = true
		session.UpdatedAt = s.now()
		if err := s.store.UpdateSession(ctx, session); err != nil {
			log.Error("failed to update session", "error", err)
			return nil, err
		}
		log.Warn("no questions configured")
		return &domain.Reply{Message: domain.NoQuestionsMessage, IsComplete: true}, nil
	}

	q, ok := s.questions.Get(session.CurrentQuestionIndex)
	if !ok {
		return nil, domain.ErrNoCurrentQuestion
	}

	isFirst := session.CurrentQuestionIndex == 0
	text := s.resolve(ctx, "render_question",
		s.phraser.RenderQuestion(ctx, q, isFirst),
		domain.FallbackQuestion(q, isFirst))

	return &domain.Reply{Message: text, Question: &q}, nil
}

// Submit validates value against the current question. Invalid answers
// leave the cursor and responses untouched and ask for clarification;
// valid answers are recorded and the cursor moves to the next question
// that is not skipped.
func (s *Service) Submit(ctx context.Context, id domain.SessionID, value domain.Value) (*domain.Reply, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", id,
		"current_index", session.CurrentQuestionIndex,
	)

	if session.Completed {
		return nil, domain.ErrNoCurrentQuestion
	}
	current, ok := s.questions.Get(session.CurrentQuestionIndex)
	if !ok {
		return nil, domain.ErrNoCurrentQuestion
	}

	now := s.now()
	res := validation.Validate(current, value, now)

	if !res.OK {
		observability.Answers.WithLabelValues("rejected").Inc()
		log.Info("answer rejected", "question_id", current.ID, "reason", res.Message)

		session.AwaitingClarification = true
		session.UpdatedAt = now
		if err := s.store.UpdateSession(ctx, session); err != nil {
			log.Error("failed to update session", "error", err)
			return nil, err
		}

		text := s.resolve(ctx, "clarify",
			s.phraser.Clarify(ctx, current, value, res.Message),
			domain.FallbackClarification)

		return &domain.Reply{
			Message:            text,
			Question:           &current,
			NeedsClarification: true,
			ValidationError:    res.Message,
		}, nil
	}

	observability.Answers.WithLabelValues("accepted").Inc()

	session.Responses = append(session.Responses, domain.UserResponse{
		QuestionID: current.ID,
		Value:      value,
		Timestamp:  now.Format(time.RFC3339),
	})
	session.AwaitingClarification = false

	next, found := s.advance(session)
	if !found {
		session.Completed = true
	}
	session.UpdatedAt = now

	if err := s.store.UpdateSession(ctx, session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	ack := s.phraser.Acknowledge(current, value)

	if !found {
		observability.SessionsCompleted.Inc()
		log.Info("session completed", "response_count", len(session.Responses))
		return s.completionReply(ctx, ack), nil
	}

	log.Info("answer accepted", "question_id", current.ID, "next_question_id", next.ID)

	text := s.resolve(ctx, "render_question",
		s.phraser.RenderQuestion(ctx, next, false),
		domain.FallbackQuestion(next, false))

	return &domain.Reply{
		Message:  joinMessage(ack, text),
		Question: &next,
	}, nil
}

// advance moves the cursor past the current question and over every
// question whose skip conditions match. When the catalog is exhausted the
// cursor ends at Size().
func (s *Service) advance(session *domain.SessionState) (domain.Question, bool) {
	i := session.CurrentQuestionIndex + 1
	for {
		q, ok := s.questions.Get(i)
		if !ok {
			session.CurrentQuestionIndex = max(i, s.questions.Size())
			return domain.Question{}, false
		}
		if !shouldSkip(q, session, s.questions) {
			session.CurrentQuestionIndex = i
			return q, true
		}
		i++
	}
}

func (s *Service) completionReply(ctx context.Context, ack string) *domain.Reply {
	text := s.resolve(ctx, "complete", s.phraser.Complete(ctx), domain.FallbackCompletion)
	return &domain.Reply{Message: joinMessage(ack, text), IsComplete: true}
}

// resolve picks the phrased text or the fallback, recording the fallback.
func (s *Service) resolve(ctx context.Context, op string, p domain.Phrase, fallback string) string {
	if !p.OK() {
		observability.PhrasingFallbacks.WithLabelValues(op).Inc()
		if p.Err != nil {
			observability.LoggerFromContext(ctx).Warn("phrasing failed, using fallback",
				"operation", op, "error", p.Err)
		}
	}
	return p.Or(fallback)
}

func joinMessage(ack, text string) string {
	if ack == "" {
		return text
	}
	return ack + " " + text
}
