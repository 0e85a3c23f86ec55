package domain

import "strings"

// Question is one entry of the catalog. Questions are built once when the
// catalog is loaded and must not be modified afterwards.
type Question struct {
	ID          QuestionID
	Text        string
	Type        QuestionType
	Required    bool
	Options     []string
	AllowOther  bool
	SkipWhen    []SkipCondition
	MinValue    *float64
	MaxValue    *float64
	Placeholder string
}

// SkipCondition hides a question when an earlier answer matches.
// Conditions on the same question are OR-combined.
type SkipCondition struct {
	QuestionID QuestionID
	Operator   SkipOperator
	Value      Value
}

// NeedsOptions reports whether the question type draws its answers from Options.
func (q Question) NeedsOptions() bool {
	return q.Type == TypeRadio || q.Type == TypeCheckbox
}

// HasOption reports whether v is one of the declared options (exact match).
func (q Question) HasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

// AsksBirthDate reports whether the prompt is about a date of birth.
func (q Question) AsksBirthDate() bool {
	t := strings.ToLower(q.Text)
	return strings.Contains(t, "birth") || strings.Contains(t, "dob") || strings.Contains(t, "born")
}
