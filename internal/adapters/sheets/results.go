package sheets

import (
	"context"
	"fmt"
	"time"

	gsheets "google.golang.org/api/sheets/v4"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

const headerTimeLayout = "2006-01-02 15:04"

// ResultSink writes each completed session into the next free column.
type ResultSink struct {
	client *Client
}

var _ domain.ResultSink = (*ResultSink)(nil)

func NewResultSink(c *Client) *ResultSink {
	return &ResultSink{client: c}
}

func (s *ResultSink) Name() string { return "sheets" }

func (s *ResultSink) SaveResult(ctx context.Context, result *domain.SessionResult) error {
	rows, err := s.client.values.Get(ctx, s.client.rangeOf(""))
	if err != nil {
		return err
	}

	updates := BuildResultUpdates(rows, result)
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		u.Range = s.client.rangeOf(u.Range)
	}
	return s.client.values.BatchUpdate(ctx, updates)
}

// BuildResultUpdates lays out one session as a column right after the
// last filled column of row 1 (B for an empty sheet). The header cell
// "<completed at> (<id prefix>)" is only written when row 1 is a header
// row. An answer whose question was read from this sheet goes on that
// question's row; any other answer goes on the row matching its position.
// Ranges are plain A1 cells without the sheet name.
func BuildResultUpdates(rows [][]interface{}, result *domain.SessionResult) []*gsheets.ValueRange {
	col := ColumnLetter(2)
	if len(rows) > 0 && len(rows[0]) > 0 {
		col = ColumnLetter(len(rows[0]) + 1)
	}

	startRow := 1
	var updates []*gsheets.ValueRange
	if hasHeader(rows) {
		startRow = 2
		updates = append(updates, valueRange(fmt.Sprintf("%s1", col), headerFor(result)))
	}

	sheetRows := questionRows(rows, startRow)
	for i, answer := range result.Answers {
		row := startRow + i
		if r, ok := sheetRows[rowKey(result, i)]; ok {
			row = r
		}
		updates = append(updates, valueRange(fmt.Sprintf("%s%d", col, row), answer))
	}
	return updates
}

type questionKey struct {
	id   domain.QuestionID
	text string
}

// questionRows maps each question parsed from rows to its 1-based sheet row.
// Ids are q<n> by position after the header, so q<n> sits on row
// startRow+n-1.
func questionRows(rows [][]interface{}, startRow int) map[questionKey]int {
	out := make(map[questionKey]int)
	for _, q := range ParseRows(rows) {
		var n int
		if _, err := fmt.Sscanf(string(q.ID), "q%d", &n); err != nil {
			continue
		}
		out[questionKey{id: q.ID, text: q.Text}] = startRow + n - 1
	}
	return out
}

func rowKey(r *domain.SessionResult, i int) questionKey {
	var k questionKey
	if i < len(r.QuestionIDs) {
		k.id = r.QuestionIDs[i]
	}
	if i < len(r.Questions) {
		k.text = r.Questions[i]
	}
	return k
}

func headerFor(r *domain.SessionResult) string {
	at := r.CompletedAt
	if at.IsZero() {
		at = time.Now()
	}
	short := string(r.SessionID)
	if short == "" {
		short = "unknown"
	}
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s (%s)", at.Format(headerTimeLayout), short)
}

func valueRange(a1, v string) *gsheets.ValueRange {
	return &gsheets.ValueRange{
		Range:  a1,
		Values: [][]interface{}{{v}},
	}
}
