// Package catalog holds the ordered list of questions served to sessions.
package catalog

import (
	"context"
	"sync/atomic"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

type snapshot struct {
	questions []domain.Question
	byID      map[domain.QuestionID]int
}

func newSnapshot(questions []domain.Question) *snapshot {
	s := &snapshot{
		questions: questions,
		byID:      make(map[domain.QuestionID]int, len(questions)),
	}
	for i, q := range questions {
		s.byID[q.ID] = i
	}
	return s
}

// Catalog serves questions by index or id. A loaded snapshot is never
// modified; Load replaces it as a whole.
type Catalog struct {
	source  domain.QuestionSource
	current atomic.Pointer[snapshot]
}

// New creates an empty catalog backed by source. Call Load to populate it.
func New(source domain.QuestionSource) *Catalog {
	c := &Catalog{source: source}
	c.current.Store(newSnapshot(nil))
	return c
}

// NewStatic creates a catalog from an in-memory list.
func NewStatic(questions []domain.Question) *Catalog {
	c := &Catalog{}
	c.current.Store(newSnapshot(Normalize(questions, observability.Logger())))
	return c
}

// Load reads the configured source and swaps in the result. Source errors
// are logged and produce an empty catalog; they are never returned.
func (c *Catalog) Load(ctx context.Context) []domain.Question {
	log := observability.LoggerFromContext(ctx)

	var loaded []domain.Question
	if c.source != nil {
		qs, err := c.source.LoadQuestions(ctx)
		if err != nil {
			log.Warn("failed to load questions", "source", c.source.Name(), "error", err)
		} else {
			loaded = qs
		}
	}

	questions := Normalize(loaded, log)
	c.current.Store(newSnapshot(questions))
	observability.CatalogQuestions.Set(float64(len(questions)))

	if len(questions) == 0 {
		log.Warn("no questions configured")
	} else {
		log.Info("questions loaded", "count", len(questions))
	}

	return c.Questions()
}

// Get returns the question at index.
func (c *Catalog) Get(index int) (domain.Question, bool) {
	s := c.current.Load()
	if index < 0 || index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[index], true
}

// GetByID returns the question with the given id.
func (c *Catalog) GetByID(id domain.QuestionID) (domain.Question, bool) {
	s := c.current.Load()
	i, ok := s.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	return s.questions[i], true
}

func (c *Catalog) Size() int {
	return len(c.current.Load().questions)
}

// Questions returns the loaded questions in order.
func (c *Catalog) Questions() []domain.Question {
	s := c.current.Load()
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}
