package catalog

import (
	"context"
	"fmt"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

type Mode string

const (
	ModeJSON   Mode = "json"
	ModeSheets Mode = "sheets"
	ModeBoth   Mode = "both"
)

// SelectSource picks the question source for mode. "both" tries the file
// first and only falls back to the spreadsheet when the file yields nothing.
// Unknown modes behave like json.
func SelectSource(mode Mode, file, sheet domain.QuestionSource) domain.QuestionSource {
	switch mode {
	case ModeSheets:
		return orNone(sheet)
	case ModeBoth:
		return &FallbackSource{Primary: orNone(file), Secondary: orNone(sheet)}
	default:
		return orNone(file)
	}
}

// FallbackSource uses Secondary only when Primary returns no questions.
// A primary error counts as an empty result.
type FallbackSource struct {
	Primary   domain.QuestionSource
	Secondary domain.QuestionSource
}

func (f *FallbackSource) Name() string {
	return fmt.Sprintf("%s+%s", f.Primary.Name(), f.Secondary.Name())
}

func (f *FallbackSource) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	log := observability.LoggerFromContext(ctx)

	qs, err := f.Primary.LoadQuestions(ctx)
	if err != nil {
		log.Warn("primary question source failed", "source", f.Primary.Name(), "error", err)
	}
	if err == nil && len(qs) > 0 {
		return qs, nil
	}

	log.Info("falling back to secondary question source", "source", f.Secondary.Name())
	return f.Secondary.LoadQuestions(ctx)
}

type noneSource struct{}

func (noneSource) Name() string { return "none" }

func (noneSource) LoadQuestions(context.Context) ([]domain.Question, error) {
	return nil, nil
}

func orNone(s domain.QuestionSource) domain.QuestionSource {
	if s == nil {
		return noneSource{}
	}
	return s
}
