package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/questionnaire-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/questionnaire-agent/internal/app/catalog"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// stubPhraser echoes question text and can be switched into failure mode.
type stubPhraser struct {
	fail bool
}

var errPhrasing = errors.New("phrasing down")

func (p *stubPhraser) RenderQuestion(_ context.Context, q domain.Question, isFirst bool) domain.Phrase {
	if p.fail {
		return domain.Phrase{Err: errPhrasing}
	}
	if isFirst {
		return domain.Phrase{Text: "Hi! " + q.Text}
	}
	return domain.Phrase{Text: "Next: " + q.Text}
}

func (p *stubPhraser) Acknowledge(domain.Question, domain.Value) string { return "Thanks!" }

func (p *stubPhraser) Clarify(_ context.Context, _ domain.Question, _ domain.Value, reason string) domain.Phrase {
	if p.fail {
		return domain.Phrase{Err: errPhrasing}
	}
	return domain.Phrase{Text: "Clarify: " + reason}
}

func (p *stubPhraser) Complete(context.Context) domain.Phrase {
	if p.fail {
		return domain.Phrase{Err: errPhrasing}
	}
	return domain.Phrase{Text: "All done."}
}

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, questions []domain.Question, phraser domain.Phraser) (*Service, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	n := 0
	svc := NewService(catalog.NewStatic(questions), store, phraser,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("s%d", n)
		}),
	)
	return svc, store
}

func ptr(f float64) *float64 { return &f }

func TestNumericClarificationThenComplete(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "How old are you?", Type: domain.TypeNumeric, Required: true, MinValue: ptr(0), MaxValue: ptr(120)},
	}
	svc, store := newTestService(t, questions, &stubPhraser{})
	ctx := context.Background()

	id, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("s1"), id)

	reply, err := svc.Start(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hi! How old are you?", reply.Message)
	require.NotNil(t, reply.Question)
	assert.Equal(t, domain.QuestionID("q1"), reply.Question.ID)

	reply, err = svc.Submit(ctx, id, domain.StringValue("abc"))
	require.NoError(t, err)
	assert.True(t, reply.NeedsClarification)
	assert.False(t, reply.IsComplete)
	assert.Equal(t, "Please enter a valid number", reply.ValidationError)
	assert.Equal(t, "Clarify: Please enter a valid number", reply.Message)

	state, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, state.CurrentQuestionIndex)
	assert.Empty(t, state.Responses)
	assert.True(t, state.AwaitingClarification)

	reply, err = svc.Submit(ctx, id, domain.StringValue("25"))
	require.NoError(t, err)
	assert.True(t, reply.IsComplete)
	assert.False(t, reply.NeedsClarification)
	assert.Nil(t, reply.Question)
	assert.Equal(t, "Thanks! All done.", reply.Message)

	state, err = store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.False(t, state.AwaitingClarification)
	require.Len(t, state.Responses, 1)
	assert.Equal(t, domain.QuestionID("q1"), state.Responses[0].QuestionID)
	assert.Equal(t, fixedNow.Format(time.RFC3339), state.Responses[0].Timestamp)
	assert.Equal(t, 1, state.CurrentQuestionIndex)
}

func TestSkipConditionSkipsToCompletion(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "Favourite colour?", Type: domain.TypeRadio, Required: true, Options: []string{"Red", "Blue"}},
		{ID: "q2", Text: "Why not red?", Type: domain.TypeText, Required: true, SkipWhen: []domain.SkipCondition{
			{QuestionID: "q1", Operator: domain.OpEquals, Value: domain.StringValue("Red")},
		}},
	}
	ctx := context.Background()

	t.Run("skipped", func(t *testing.T) {
		svc, store := newTestService(t, questions, &stubPhraser{})
		id, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		reply, err := svc.Submit(ctx, id, domain.StringValue("Red"))
		require.NoError(t, err)
		assert.True(t, reply.IsComplete)

		state, _ := store.GetSession(ctx, id)
		require.Len(t, state.Responses, 1)
		assert.Equal(t, 2, state.CurrentQuestionIndex)
	})

	t.Run("not skipped", func(t *testing.T) {
		svc, _ := newTestService(t, questions, &stubPhraser{})
		id, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		reply, err := svc.Submit(ctx, id, domain.StringValue("Blue"))
		require.NoError(t, err)
		assert.False(t, reply.IsComplete)
		require.NotNil(t, reply.Question)
		assert.Equal(t, domain.QuestionID("q2"), reply.Question.ID)
		assert.Equal(t, "Thanks! Next: Why not red?", reply.Message)
	})
}

func TestStartWithoutQuestions(t *testing.T) {
	svc, store := newTestService(t, nil, &stubPhraser{})
	ctx := context.Background()

	id, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	reply, err := svc.Start(ctx, id)
	require.NoError(t, err)
	assert.True(t, reply.IsComplete)
	assert.Nil(t, reply.Question)
	assert.Equal(t, domain.NoQuestionsMessage, reply.Message)

	state, _ := store.GetSession(ctx, id)
	assert.True(t, state.Completed)

	_, err = svc.Submit(ctx, id, domain.StringValue("x"))
	assert.ErrorIs(t, err, domain.ErrNoCurrentQuestion)
}

func TestStartResumesCurrentQuestion(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "Name?", Type: domain.TypeText, Required: true},
		{ID: "q2", Text: "City?", Type: domain.TypeText, Required: true},
	}
	svc, _ := newTestService(t, questions, &stubPhraser{})
	ctx := context.Background()
	id, _ := svc.CreateSession(ctx)

	_, err := svc.Submit(ctx, id, domain.StringValue("Ada"))
	require.NoError(t, err)

	reply, err := svc.Start(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Next: City?", reply.Message)
	assert.Equal(t, domain.QuestionID("q2"), reply.Question.ID)

	_, err = svc.Submit(ctx, id, domain.StringValue("Paris"))
	require.NoError(t, err)

	reply, err = svc.Start(ctx, id)
	require.NoError(t, err)
	assert.True(t, reply.IsComplete)
	assert.Equal(t, "All done.", reply.Message)
}

func TestPhrasingFailuresUseFallbacks(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "Name?", Type: domain.TypeText, Required: true},
		{ID: "q2", Text: "Age?", Type: domain.TypeNumeric, Required: true},
	}
	svc, _ := newTestService(t, questions, &stubPhraser{fail: true})
	ctx := context.Background()
	id, _ := svc.CreateSession(ctx)

	reply, err := svc.Start(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Welcome! Name?", reply.Message)

	reply, err = svc.Submit(ctx, id, domain.StringValue("Ada"))
	require.NoError(t, err)
	assert.Equal(t, "Thanks! Age?", reply.Message)

	reply, err = svc.Submit(ctx, id, domain.StringValue("-3"))
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackClarification, reply.Message)

	reply, err = svc.Submit(ctx, id, domain.NumberValue(33))
	require.NoError(t, err)
	assert.Equal(t, "Thanks! "+domain.FallbackCompletion, reply.Message)
}

func TestOptionalEmptyAnswerAdvances(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "Nickname?", Type: domain.TypeText},
		{ID: "q2", Text: "City?", Type: domain.TypeText, Required: true},
	}
	svc, store := newTestService(t, questions, &stubPhraser{})
	ctx := context.Background()
	id, _ := svc.CreateSession(ctx)

	reply, err := svc.Submit(ctx, id, domain.StringValue(""))
	require.NoError(t, err)
	assert.False(t, reply.NeedsClarification)
	assert.Equal(t, domain.QuestionID("q2"), reply.Question.ID)

	state, _ := store.GetSession(ctx, id)
	assert.Len(t, state.Responses, 1)
	assert.Equal(t, 1, state.CurrentQuestionIndex)
}

func TestUnknownSession(t *testing.T) {
	svc, _ := newTestService(t, []domain.Question{{ID: "q1", Text: "Name?", Type: domain.TypeText}}, &stubPhraser{})
	ctx := context.Background()

	_, err := svc.Start(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Submit(ctx, "missing", domain.StringValue("x"))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Status(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Responses(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStatusAndResponses(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "Name?", Type: domain.TypeText, Required: true},
		{ID: "q2", Text: "Hobbies?", Type: domain.TypeCheckbox, Required: true, Options: []string{"Chess", "Golf"}},
		{ID: "q3", Text: "City?", Type: domain.TypeText, Required: true},
	}
	svc, _ := newTestService(t, questions, &stubPhraser{})
	ctx := context.Background()
	id, _ := svc.CreateSession(ctx)

	_, err := svc.Submit(ctx, id, domain.StringValue("Ada"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, id, domain.ListValue("Chess", "Tennis"))
	require.NoError(t, err)

	st, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Status{
		SessionID:             id,
		CurrentIndex:          1,
		Total:                 3,
		AwaitingClarification: true,
		ResponseCount:         1,
		UpdatedAt:             fixedNow,
	}, *st)

	answers, err := svc.Responses(ctx, id)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "Name?", answers[0].QuestionText)
	assert.Equal(t, "Ada", answers[0].Value.String())

	list, err := svc.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].SessionID)
}

func TestConcurrentSubmitsAreSerialized(t *testing.T) {
	var questions []domain.Question
	for i := 0; i < 20; i++ {
		questions = append(questions, domain.Question{
			ID: domain.QuestionID(fmt.Sprintf("q%d", i)), Text: "Anything?", Type: domain.TypeText, Required: true,
		})
	}
	svc, store := newTestService(t, questions, &stubPhraser{})
	ctx := context.Background()
	id, _ := svc.CreateSession(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.Submit(ctx, id, domain.StringValue(fmt.Sprintf("answer %d", i)))
		}(i)
	}
	wg.Wait()

	state, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.Completed)
	require.Len(t, state.Responses, 20)
	for i, r := range state.Responses {
		assert.Equal(t, domain.QuestionID(fmt.Sprintf("q%d", i)), r.QuestionID)
	}
	assert.Equal(t, 0, svc.locks.size())
}

func TestSkippedQuestionsNeverAnswered(t *testing.T) {
	questions := []domain.Question{
		{ID: "pet", Text: "Do you have a pet?", Type: domain.TypeYesNo, Required: true},
		{ID: "pet_name", Text: "Pet name?", Type: domain.TypeText, Required: true, SkipWhen: []domain.SkipCondition{
			{QuestionID: "pet", Operator: domain.OpEquals, Value: domain.StringValue("no")},
		}},
		{ID: "langs", Text: "Languages?", Type: domain.TypeCheckbox, Required: true, Options: []string{"Go", "Rust"}},
		{ID: "why_not_go", Text: "Why not Go?", Type: domain.TypeText, Required: true, SkipWhen: []domain.SkipCondition{
			{QuestionID: "langs", Operator: domain.OpContains, Value: domain.StringValue("go")},
		}},
		{ID: "end", Text: "Anything else?", Type: domain.TypeText},
	}
	svc, store := newTestService(t, questions, &stubPhraser{})
	ctx := context.Background()
	id, _ := svc.CreateSession(ctx)

	for _, v := range []domain.Value{domain.StringValue("No"), domain.ListValue("Go"), domain.StringValue("nope")} {
		reply, err := svc.Submit(ctx, id, v)
		require.NoError(t, err)
		require.False(t, reply.NeedsClarification)
	}

	state, _ := store.GetSession(ctx, id)
	assert.True(t, state.Completed)
	var answered []domain.QuestionID
	for _, r := range state.Responses {
		answered = append(answered, r.QuestionID)
	}
	assert.Equal(t, []domain.QuestionID{"pet", "langs", "end"}, answered)
}
