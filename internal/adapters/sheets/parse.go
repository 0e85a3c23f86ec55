package sheets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

type typeMarker struct {
	t  domain.QuestionType
	re *regexp.Regexp
}

// Explicit markers, checked in order; the first match decides the type.
var typeMarkers = []typeMarker{
	{domain.TypeCheckbox, regexp.MustCompile(`(?i)\[checkbox\]|\[multi\]`)},
	{domain.TypeRadio, regexp.MustCompile(`(?i)\[radio\]|\[select\]`)},
	{domain.TypeYesNo, regexp.MustCompile(`(?i)\[yes/?no\]`)},
	{domain.TypeDate, regexp.MustCompile(`(?i)\[date\]`)},
	{domain.TypeNumeric, regexp.MustCompile(`(?i)\[number\]|\[numeric\]`)},
}

var (
	optionsGroup  = regexp.MustCompile(`\(([^)]+)\)`)
	optionsStrip  = regexp.MustCompile(`\s*\([^)]+\)`)
	yesNoPrefixes = []string{"are you", "do you", "have you", "will you", "can you"}
)

// ParseQuestionText derives type, options and display text from a sheet
// cell such as "Favorite color (Red, Blue)" or "How old are you? [number]".
func ParseQuestionText(raw string) (domain.QuestionType, []string, string) {
	text := strings.TrimSpace(raw)
	qType := domain.TypeText

	for _, m := range typeMarkers {
		if m.re.MatchString(text) {
			qType = m.t
			text = strings.TrimSpace(m.re.ReplaceAllString(text, ""))
			break
		}
	}

	var options []string
	if g := optionsGroup.FindStringSubmatch(text); g != nil {
		for _, opt := range strings.Split(g[1], ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		text = strings.TrimSpace(optionsStrip.ReplaceAllString(text, ""))
		if qType == domain.TypeText && len(options) > 0 {
			qType = domain.TypeRadio
		}
	}

	if qType == domain.TypeText {
		qType = guessType(strings.ToLower(text))
	}
	return qType, options, text
}

func guessType(lower string) domain.QuestionType {
	switch {
	case strings.Contains(lower, "how old"), strings.Contains(lower, "your age"):
		return domain.TypeNumeric
	case strings.Contains(lower, "date of birth"), strings.Contains(lower, "dob"), strings.Contains(lower, "birthday"):
		return domain.TypeDate
	}
	for _, p := range yesNoPrefixes {
		if strings.HasPrefix(lower, p) {
			return domain.TypeYesNo
		}
	}
	return domain.TypeText
}

// ParseRows turns column A into questions. Ids are q<n> where n is the
// 1-based row position after the optional header; blank rows keep their
// position but produce no question.
func ParseRows(rows [][]interface{}) []domain.Question {
	start := 0
	if hasHeader(rows) {
		start = 1
	}

	var out []domain.Question
	for i, row := range rows[start:] {
		raw := strings.TrimSpace(cell(row, 0))
		if raw == "" {
			continue
		}
		qType, options, text := ParseQuestionText(raw)
		out = append(out, domain.Question{
			ID:       domain.QuestionID(fmt.Sprintf("q%d", i+1)),
			Text:     text,
			Type:     qType,
			Required: true,
			Options:  options,
		})
	}
	return out
}
