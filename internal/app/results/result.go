// Package results turns completed sessions into result rows and hands them
// to the configured sinks.
package results

import (
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// BuildResult lists every catalog question with its answer in catalog
// order. Skipped or unanswered questions get an empty answer and lists are
// joined with ", ".
func BuildResult(questions []domain.Question, session *domain.SessionState) *domain.SessionResult {
	res := &domain.SessionResult{
		SessionID:   session.ID,
		CompletedAt: session.UpdatedAt,
		QuestionIDs: make([]domain.QuestionID, 0, len(questions)),
		Questions:   make([]string, 0, len(questions)),
		Answers:     make([]string, 0, len(questions)),
	}
	for _, q := range questions {
		answer := ""
		if r, ok := session.Response(q.ID); ok {
			answer = r.Value.String()
		}
		res.QuestionIDs = append(res.QuestionIDs, q.ID)
		res.Questions = append(res.Questions, q.Text)
		res.Answers = append(res.Answers, answer)
	}
	return res
}
