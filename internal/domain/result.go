package domain

import "time"

// SessionResult is the row pushed to result sinks once a session completes.
// QuestionIDs, Questions and Answers are aligned with the catalog order;
// skipped questions have an empty answer.
type SessionResult struct {
	SessionID   SessionID    `json:"session_id"`
	CompletedAt time.Time    `json:"completed_at"`
	QuestionIDs []QuestionID `json:"question_ids,omitempty"`
	Questions   []string     `json:"questions"`
	Answers     []string     `json:"answers"`
}
