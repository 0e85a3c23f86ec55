// Package validation checks submitted answers against their question.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

const (
	MsgRequired       = "This question requires an answer."
	MsgInvalidNumber  = "Please enter a valid number"
	MsgNegativeNumber = "Please enter a positive number"
	MsgSingleOption   = "Please select a single option"
	MsgCheckboxList   = "Please select options from the list"
	MsgYesNo          = "Please answer Yes or No"
	MsgDateFormat     = "Please enter a valid date (YYYY-MM-DD)"
	MsgInvalidDate    = "Invalid date"
	MsgBirthDatePast  = "Date of birth must be in the past"
	MsgTextRequired   = "Please provide a text response"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var yesNoAnswers = map[string]struct{}{
	"yes": {}, "no": {}, "true": {}, "false": {}, "1": {}, "0": {},
}

// Result is the outcome of validating one answer.
type Result struct {
	OK      bool
	Message string
}

func valid() Result { return Result{OK: true} }

func invalid(msg string) Result { return Result{Message: msg} }

// Validate checks v against q. It has no side effects; today is only
// consulted for date-of-birth questions.
func Validate(q domain.Question, v domain.Value, today time.Time) Result {
	if v.IsEmpty() {
		if q.Required {
			return invalid(MsgRequired)
		}
		return valid()
	}

	switch q.Type {
	case domain.TypeNumeric:
		return validateNumeric(q, v)
	case domain.TypeRadio:
		return validateRadio(q, v)
	case domain.TypeCheckbox:
		return validateCheckbox(q, v)
	case domain.TypeYesNo:
		return validateYesNo(v)
	case domain.TypeDate:
		return validateDate(q, v, today)
	case domain.TypeText:
		return validateText(q, v)
	}
	return valid()
}

func validateNumeric(q domain.Question, v domain.Value) Result {
	n, ok := v.Number()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return invalid(MsgInvalidNumber)
	}
	// All numeric answers are non-negative regardless of the declared minimum.
	if n < 0 {
		return invalid(MsgNegativeNumber)
	}
	if q.MinValue != nil && n < *q.MinValue {
		return invalid(fmt.Sprintf("Value must be at least %s", formatBound(*q.MinValue)))
	}
	if q.MaxValue != nil && n > *q.MaxValue {
		return invalid(fmt.Sprintf("Value must be at most %s", formatBound(*q.MaxValue)))
	}
	return valid()
}

func validateRadio(q domain.Question, v domain.Value) Result {
	if !v.IsScalar() {
		return invalid(MsgSingleOption)
	}
	if len(q.Options) > 0 && !q.HasOption(v.String()) && !q.AllowOther {
		return invalid("Please select one of: " + strings.Join(q.Options, ", "))
	}
	return valid()
}

func validateCheckbox(q domain.Question, v domain.Value) Result {
	items, ok := v.List()
	if !ok {
		return invalid(MsgCheckboxList)
	}
	if len(q.Options) == 0 || q.AllowOther {
		return valid()
	}

	var bad []string
	for _, item := range items {
		if !q.HasOption(item) {
			bad = append(bad, item)
		}
	}
	if len(bad) > 0 {
		return invalid("Invalid options: " + strings.Join(bad, ", "))
	}
	return valid()
}

func validateYesNo(v domain.Value) Result {
	if _, ok := yesNoAnswers[strings.ToLower(v.String())]; !ok {
		return invalid(MsgYesNo)
	}
	return valid()
}

func validateDate(q domain.Question, v domain.Value, today time.Time) Result {
	raw := v.String()
	if !v.IsScalar() || !datePattern.MatchString(raw) {
		return invalid(MsgDateFormat)
	}
	if !q.AsksBirthDate() {
		return valid()
	}

	entered, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return invalid(MsgInvalidDate)
	}
	y, m, d := today.Date()
	if !entered.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return invalid(MsgBirthDatePast)
	}
	return valid()
}

func validateText(q domain.Question, v domain.Value) Result {
	if !q.Required {
		return valid()
	}
	if v.Kind() != domain.KindString || strings.TrimSpace(v.String()) == "" {
		return invalid(MsgTextRequired)
	}
	return valid()
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
