package httpadapter

import (
	"time"

	"github.com/PabloGalante/questionnaire-agent/internal/app/questionnaire"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

type respondRequest struct {
	SessionID string       `json:"session_id"`
	Value     domain.Value `json:"value"`
}

type sessionCreatedResponse struct {
	SessionID string `json:"session_id"`
}

type skipConditionResponse struct {
	QuestionID string       `json:"question_id"`
	Operator   string       `json:"operator"`
	Value      domain.Value `json:"value"`
}

type questionResponse struct {
	ID          string                  `json:"id"`
	Text        string                  `json:"text"`
	Type        string                  `json:"type"`
	Required    bool                    `json:"required"`
	Options     []string                `json:"options,omitempty"`
	AllowOther  bool                    `json:"allow_other,omitempty"`
	MinValue    *float64                `json:"min_value,omitempty"`
	MaxValue    *float64                `json:"max_value,omitempty"`
	Placeholder string                  `json:"placeholder,omitempty"`
	SkipWhen    []skipConditionResponse `json:"skip_when,omitempty"`
}

type messageResponse struct {
	SessionID          string            `json:"session_id,omitempty"`
	Message            string            `json:"message"`
	Question           *questionResponse `json:"question"`
	IsComplete         bool              `json:"is_complete"`
	NeedsClarification bool              `json:"needs_clarification"`
	ValidationError    string            `json:"validation_error,omitempty"`
}

// statusResponse carries the cursor under both its current names and the
// older current_question/total_questions keys that existing clients read.
type statusResponse struct {
	SessionID             string    `json:"session_id"`
	Status                string    `json:"status"`
	CurrentIndex          int       `json:"current_index"`
	Total                 int       `json:"total"`
	CurrentQuestion       int       `json:"current_question"`
	TotalQuestions        int       `json:"total_questions"`
	Completed             bool      `json:"completed"`
	AwaitingClarification bool      `json:"awaiting_clarification"`
	ResponseCount         int       `json:"response_count"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type answerResponse struct {
	QuestionID string       `json:"question_id"`
	Question   string       `json:"question"`
	Value      domain.Value `json:"value"`
	Timestamp  string       `json:"timestamp"`
}

type responsesResponse struct {
	SessionID string           `json:"session_id"`
	Responses []answerResponse `json:"responses"`
}

type sessionsResponse struct {
	Sessions []statusResponse `json:"sessions"`
}

type questionsResponse struct {
	Count     int                `json:"count"`
	Questions []questionResponse `json:"questions"`
}

type reloadResponse struct {
	Count int `json:"count"`
}

type resultsResponse struct {
	Results []*domain.SessionResult `json:"results"`
}

func toQuestionResponse(q *domain.Question) *questionResponse {
	if q == nil {
		return nil
	}
	out := &questionResponse{
		ID:          string(q.ID),
		Text:        q.Text,
		Type:        string(q.Type),
		Required:    q.Required,
		Options:     q.Options,
		AllowOther:  q.AllowOther,
		MinValue:    q.MinValue,
		MaxValue:    q.MaxValue,
		Placeholder: q.Placeholder,
	}
	for _, c := range q.SkipWhen {
		out.SkipWhen = append(out.SkipWhen, skipConditionResponse{
			QuestionID: string(c.QuestionID),
			Operator:   string(c.Operator),
			Value:      c.Value,
		})
	}
	return out
}

func toMessageResponse(id domain.SessionID, r *domain.Reply) messageResponse {
	return messageResponse{
		SessionID:          string(id),
		Message:            r.Message,
		Question:           toQuestionResponse(r.Question),
		IsComplete:         r.IsComplete,
		NeedsClarification: r.NeedsClarification,
		ValidationError:    r.ValidationError,
	}
}

func toStatusResponse(st questionnaire.Status) statusResponse {
	status := domain.StatusActive
	switch {
	case st.Completed:
		status = domain.StatusComplete
	case st.AwaitingClarification:
		status = domain.StatusAwaitingClarification
	}
	return statusResponse{
		SessionID:             string(st.SessionID),
		Status:                string(status),
		CurrentIndex:          st.CurrentIndex,
		Total:                 st.Total,
		CurrentQuestion:       st.CurrentIndex,
		TotalQuestions:        st.Total,
		Completed:             st.Completed,
		AwaitingClarification: st.AwaitingClarification,
		ResponseCount:         st.ResponseCount,
		UpdatedAt:             st.UpdatedAt,
	}
}
