package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

type fakeValues struct {
	rows    [][]interface{}
	err     error
	gets    []string
	written []*gsheets.ValueRange
}

func (f *fakeValues) Get(_ context.Context, rng string) ([][]interface{}, error) {
	f.gets = append(f.gets, rng)
	return f.rows, f.err
}

func (f *fakeValues) BatchUpdate(_ context.Context, data []*gsheets.ValueRange) error {
	f.written = append(f.written, data...)
	return nil
}

func rowsOf(cells ...[]string) [][]interface{} {
	out := make([][]interface{}, 0, len(cells))
	for _, r := range cells {
		row := make([]interface{}, len(r))
		for i, c := range r {
			row[i] = c
		}
		out = append(out, row)
	}
	return out
}

func TestParseQuestionText(t *testing.T) {
	tests := []struct {
		raw     string
		typ     domain.QuestionType
		options []string
		text    string
	}{
		{"How old are you? [number]", domain.TypeNumeric, nil, "How old are you?"},
		{"Favorite color (Red, Blue, Green)", domain.TypeRadio, []string{"Red", "Blue", "Green"}, "Favorite color"},
		{"Hobbies [checkbox] (Chess, , Golf)", domain.TypeCheckbox, []string{"Chess", "Golf"}, "Hobbies"},
		{"Pick one [SELECT]", domain.TypeRadio, nil, "Pick one"},
		{"Smoker? [YesNo]", domain.TypeYesNo, nil, "Smoker?"},
		{"Smoker? [yes/no]", domain.TypeYesNo, nil, "Smoker?"},
		{"When did you start? [date]", domain.TypeDate, nil, "When did you start?"},
		{"What is your age", domain.TypeNumeric, nil, "What is your age"},
		{"Your birthday please", domain.TypeDate, nil, "Your birthday please"},
		{"Do you like tea?", domain.TypeYesNo, nil, "Do you like tea?"},
		{"What is your name?", domain.TypeText, nil, "What is your name?"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			typ, options, text := ParseQuestionText(tt.raw)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.options, options)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestParseRowsHeaderAndBlankRows(t *testing.T) {
	rows := rowsOf(
		[]string{"Questions", "2026-01-01 10:00 (abcd1234)"},
		[]string{"What is your name?"},
		[]string{""},
		[]string{"How old are you? [number]"},
	)

	qs := ParseRows(rows)
	require.Len(t, qs, 2)
	assert.Equal(t, domain.QuestionID("q1"), qs[0].ID)
	assert.Equal(t, domain.QuestionID("q3"), qs[1].ID)
	assert.Equal(t, domain.TypeNumeric, qs[1].Type)
	assert.True(t, qs[1].Required)

	assert.Len(t, ParseRows(rowsOf([]string{"Name?"})), 1)
	assert.Empty(t, ParseRows(nil))
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "", 1: "A", 2: "B", 26: "Z", 27: "AA", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for in, want := range cases {
		assert.Equal(t, want, ColumnLetter(in), in)
	}
}

func TestBuildResultUpdates(t *testing.T) {
	result := &domain.SessionResult{
		SessionID:   "0123456789abcdef",
		CompletedAt: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		Answers:     []string{"Ada", "", "Chess, Golf"},
	}

	t.Run("with header", func(t *testing.T) {
		rows := rowsOf([]string{"Question", "old"}, []string{"Name?"})
		got := BuildResultUpdates(rows, result)
		require.Len(t, got, 4)
		assert.Equal(t, "C1", got[0].Range)
		assert.Equal(t, "2026-03-04 09:30 (01234567)", got[0].Values[0][0])
		assert.Equal(t, "C2", got[1].Range)
		assert.Equal(t, "Ada", got[1].Values[0][0])
		assert.Equal(t, "C4", got[3].Range)
	})

	t.Run("without header", func(t *testing.T) {
		got := BuildResultUpdates(rowsOf([]string{"Name?"}), result)
		require.Len(t, got, 3)
		assert.Equal(t, "B1", got[0].Range)
		assert.Equal(t, "Ada", got[0].Values[0][0])
	})

	t.Run("empty sheet", func(t *testing.T) {
		got := BuildResultUpdates(nil, result)
		assert.Equal(t, "B1", got[0].Range)
	})
}

func TestBuildResultUpdatesFollowsSheetRows(t *testing.T) {
	rows := rowsOf([]string{"Questions"}, []string{"Name?"}, []string{""}, []string{"City?"})
	qs := ParseRows(rows)
	require.Len(t, qs, 2)
	require.Equal(t, domain.QuestionID("q3"), qs[1].ID)

	t.Run("sheet questions keep their row", func(t *testing.T) {
		got := BuildResultUpdates(rows, &domain.SessionResult{
			SessionID:   "s1",
			QuestionIDs: []domain.QuestionID{"q1", "q3"},
			Questions:   []string{"Name?", "City?"},
			Answers:     []string{"Ada", "Paris"},
		})
		require.Len(t, got, 3)
		assert.Equal(t, "B2", got[1].Range)
		assert.Equal(t, "B4", got[2].Range)
		assert.Equal(t, "Paris", got[2].Values[0][0])
	})

	t.Run("other questions stay positional", func(t *testing.T) {
		got := BuildResultUpdates(rows, &domain.SessionResult{
			SessionID:   "s1",
			QuestionIDs: []domain.QuestionID{"name", "city"},
			Questions:   []string{"Name?", "City?"},
			Answers:     []string{"Ada", "Paris"},
		})
		require.Len(t, got, 3)
		assert.Equal(t, "B2", got[1].Range)
		assert.Equal(t, "B3", got[2].Range)
	})

	t.Run("same id with edited text stays positional", func(t *testing.T) {
		got := BuildResultUpdates(rows, &domain.SessionResult{
			SessionID:   "s1",
			QuestionIDs: []domain.QuestionID{"q1", "q3"},
			Questions:   []string{"Name?", "Town?"},
			Answers:     []string{"Ada", "Paris"},
		})
		assert.Equal(t, "B3", got[2].Range)
	})
}

func TestQuestionSourceAndSink(t *testing.T) {
	fake := &fakeValues{rows: rowsOf([]string{"Questions"}, []string{"Favorite color (Red, Blue)"})}
	c := &Client{values: fake, sheet: "Answers"}
	ctx := context.Background()

	qs, err := NewQuestionSource(c).LoadQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, []string{"Red", "Blue"}, qs[0].Options)
	assert.Equal(t, "'Answers'!A:A", fake.gets[0])

	sink := NewResultSink(c)
	err = sink.SaveResult(ctx, &domain.SessionResult{SessionID: "abc", Answers: []string{"Red"}})
	require.NoError(t, err)
	require.Len(t, fake.written, 2)
	assert.Equal(t, "'Answers'!B1", fake.written[0].Range)
	assert.Equal(t, "'Answers'!B2", fake.written[1].Range)
	assert.Equal(t, "sheets", sink.Name())
}

func TestQuestionSourceError(t *testing.T) {
	boom := errors.New("quota")
	c := &Client{values: &fakeValues{err: boom}, sheet: "Sheet1"}

	_, err := NewQuestionSource(c).LoadQuestions(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, NewResultSink(c).SaveResult(context.Background(), &domain.SessionResult{}), boom)
}
