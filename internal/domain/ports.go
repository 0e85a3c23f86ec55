package domain

import "context"

// LLMClient defines how the application talks to a language model.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuestionSource loads the raw question list from one backing store.
// An empty list with a nil error means "no questions configured".
type QuestionSource interface {
	Name() string
	LoadQuestions(ctx context.Context) ([]Question, error)
}

// SessionStore defines session persistence.
type SessionStore interface {
	CreateSession(ctx context.Context, session *SessionState) error
	UpdateSession(ctx context.Context, session *SessionState) error
	GetSession(ctx context.Context, id SessionID) (*SessionState, error)
	ListSessions(ctx context.Context, limit int) ([]*SessionState, error)
}

// Phraser turns questions and outcomes into conversational text.
// Failures are reported inside the Phrase and never affect control flow.
type Phraser interface {
	RenderQuestion(ctx context.Context, q Question, isFirst bool) Phrase
	Acknowledge(q Question, v Value) string
	Clarify(ctx context.Context, q Question, v Value, reason string) Phrase
	Complete(ctx context.Context) Phrase
}

// ResultSink persists a completed session.
type ResultSink interface {
	Name() string
	SaveResult(ctx context.Context, result *SessionResult) error
}

// ResultArchive is implemented by sinks that can list what they stored.
type ResultArchive interface {
	ListResults(ctx context.Context, limit int) ([]*SessionResult, error)
}
