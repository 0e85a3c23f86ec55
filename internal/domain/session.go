package domain

// UserResponse is an accepted answer. It is never modified once appended.
type UserResponse struct {
	QuestionID QuestionID
	Value      Value
	Timestamp  string // ISO-8601, assigned when recorded
}

// SessionState holds the progress of one questionnaire run.
//
// CurrentQuestionIndex only moves forward, Responses is append-only and
// Completed never goes back to false.
type SessionState struct {
	ID                    SessionID
	CurrentQuestionIndex  int
	Responses             []UserResponse
	Completed             bool
	AwaitingClarification bool

	CreatedAt Timestamp
	UpdatedAt Timestamp
}

type SessionStatus string

const (
	StatusActive                SessionStatus = "active"
	StatusAwaitingClarification SessionStatus = "awaiting_clarification"
	StatusComplete              SessionStatus = "complete"
)

// Status derives the state machine position from the stored flags.
func (s *SessionState) Status() SessionStatus {
	switch {
	case s.Completed:
		return StatusComplete
	case s.AwaitingClarification:
		return StatusAwaitingClarification
	default:
		return StatusActive
	}
}

// Response returns the recorded answer for id, if any.
func (s *SessionState) Response(id QuestionID) (UserResponse, bool) {
	for _, r := range s.Responses {
		if r.QuestionID == id {
			return r, true
		}
	}
	return UserResponse{}, false
}

// Clone returns a deep copy so stores never share the responses slice with callers.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := *s
	out.Responses = make([]UserResponse, len(s.Responses))
	copy(out.Responses, s.Responses)
	return &out
}

// Reply is what the engine hands back to the caller after every exchange.
type Reply struct {
	Message            string
	Question           *Question
	IsComplete         bool
	NeedsClarification bool

	// ValidationError carries the validator reason on the clarification path.
	ValidationError string
}
