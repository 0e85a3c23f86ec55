// Package questionfile loads the question list from a JSON or YAML file of
// the form {"questions": [...]}.
package questionfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

//go:embed question.schema.json
var recordSchemaJSON string

const recordSchemaURL = "https://questionnaire.local/question.schema.json"

var recordSchema = compileRecordSchema()

func compileRecordSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(recordSchemaURL, strings.NewReader(recordSchemaJSON)); err != nil {
		panic(fmt.Sprintf("question schema load failed: %v", err))
	}
	return c.MustCompile(recordSchemaURL)
}

type document struct {
	Questions []any `json:"questions" yaml:"questions"`
}

type questionRecord struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Type        string       `json:"type"`
	Required    *bool        `json:"required"`
	Options     []string     `json:"options"`
	AllowOther  bool         `json:"allow_other"`
	Min         *float64     `json:"min"`
	Max         *float64     `json:"max"`
	MinValue    *float64     `json:"min_value"`
	MaxValue    *float64     `json:"max_value"`
	Placeholder string       `json:"placeholder"`
	SkipWhen    []skipRecord `json:"skip_when"`
}

type skipRecord struct {
	QuestionID string       `json:"question_id"`
	Operator   string       `json:"operator"`
	Value      domain.Value `json:"value"`
}

// Source reads questions from a file. A missing file is an empty
// catalog, not an error.
type Source struct {
	path string
}

var _ domain.QuestionSource = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Name() string { return "json" }

func (s *Source) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	log := observability.LoggerFromContext(ctx).With("source", "json", "path", s.path)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("question file not found")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	records, err := decode(s.path, data)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Question, 0, len(records))
	for i, rec := range records {
		q, err := toQuestion(rec)
		if err != nil {
			log.Warn("skipping question record", "index", i, "error", err)
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// decode returns the records as JSON-shaped values so YAML and JSON input
// go through the same schema check.
func decode(path string, data []byte) ([]any, error) {
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse question file: %w", err)
		}
		normalized, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("parse question file: %w", err)
		}
		data = normalized
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse question file: %w", err)
	}
	return doc.Questions, nil
}

func toQuestion(rec any) (domain.Question, error) {
	if err := recordSchema.Validate(rec); err != nil {
		return domain.Question{}, err
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return domain.Question{}, err
	}
	var r questionRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return domain.Question{}, err
	}

	q := domain.Question{
		ID:          domain.QuestionID(r.ID),
		Text:        r.Text,
		Type:        domain.QuestionType(r.Type),
		Required:    r.Required == nil || *r.Required,
		Options:     r.Options,
		AllowOther:  r.AllowOther,
		MinValue:    firstSet(r.Min, r.MinValue),
		MaxValue:    firstSet(r.Max, r.MaxValue),
		Placeholder: r.Placeholder,
	}
	for _, c := range r.SkipWhen {
		q.SkipWhen = append(q.SkipWhen, domain.SkipCondition{
			QuestionID: domain.QuestionID(c.QuestionID),
			Operator:   domain.SkipOperator(c.Operator),
			Value:      c.Value,
		})
	}
	return q, nil
}

func firstSet(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}
