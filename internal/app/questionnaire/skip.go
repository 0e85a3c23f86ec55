package questionnaire

import (
	"strings"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// shouldSkip reports whether any of q's skip conditions matches the answers
// recorded so far.
func shouldSkip(q domain.Question, session *domain.SessionState, questions Questions) bool {
	for _, c := range q.SkipWhen {
		if conditionHolds(c, session, questions) {
			return true
		}
	}
	return false
}

// conditionHolds is false whenever the referenced question has no recorded
// answer, whatever the operator.
func conditionHolds(c domain.SkipCondition, session *domain.SessionState, questions Questions) bool {
	resp, ok := session.Response(c.QuestionID)
	if !ok {
		return false
	}

	refType := domain.TypeText
	if ref, ok := questions.GetByID(c.QuestionID); ok {
		refType = ref.Type
	}

	switch c.Operator {
	case domain.OpEquals:
		return valuesEqual(refType, resp.Value, c.Value)
	case domain.OpNotEquals:
		return !valuesEqual(refType, resp.Value, c.Value)
	case domain.OpContains:
		return valueContains(resp.Value, c.Value)
	case domain.OpNotContains:
		return !valueContains(resp.Value, c.Value)
	}
	return false
}

func valuesEqual(t domain.QuestionType, answer, operand domain.Value) bool {
	if items, ok := answer.List(); ok {
		want, isList := operand.List()
		if !isList {
			return len(items) == 1 && textEqual(items[0], operand.String())
		}
		return sameElements(items, want)
	}

	switch t {
	case domain.TypeNumeric:
		a, okA := answer.Number()
		b, okB := operand.Number()
		if okA && okB {
			return a == b
		}
	case domain.TypeYesNo:
		a, okA := yesNo(answer)
		b, okB := yesNo(operand)
		if okA && okB {
			return a == b
		}
	}
	return textEqual(answer.String(), operand.String())
}

func valueContains(answer, operand domain.Value) bool {
	needles := []string{operand.String()}
	if l, ok := operand.List(); ok {
		needles = l
	}

	if items, ok := answer.List(); ok {
		for _, n := range needles {
			if !containsText(items, n) {
				return false
			}
		}
		return true
	}

	hay := strings.ToLower(answer.String())
	for _, n := range needles {
		if !strings.Contains(hay, strings.ToLower(strings.TrimSpace(n))) {
			return false
		}
	}
	return true
}

func yesNo(v domain.Value) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v.String())) {
	case "yes", "true", "1":
		return true, true
	case "no", "false", "0":
		return false, true
	}
	return false, false
}

func textEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsText(items []string, s string) bool {
	for _, it := range items {
		if textEqual(it, s) {
			return true
		}
	}
	return false
}

func sameElements(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !containsText(b, x) {
			return false
		}
	}
	for _, y := range b {
		if !containsText(a, y) {
			return false
		}
	}
	return true
}
