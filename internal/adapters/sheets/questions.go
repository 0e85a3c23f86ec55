package sheets

import (
	"context"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// QuestionSource reads the question list from column A.
type QuestionSource struct {
	client *Client
}

var _ domain.QuestionSource = (*QuestionSource)(nil)

func NewQuestionSource(c *Client) *QuestionSource {
	return &QuestionSource{client: c}
}

func (s *QuestionSource) Name() string { return "sheets" }

func (s *QuestionSource) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.client.values.Get(ctx, s.client.rangeOf("A:A"))
	if err != nil {
		return nil, err
	}
	return ParseRows(rows), nil
}
