package domain

import "time"

type SessionID string
type QuestionID string

type QuestionType string

const (
	TypeText     QuestionType = "text"
	TypeCheckbox QuestionType = "checkbox"
	TypeRadio    QuestionType = "radio"
	TypeNumeric  QuestionType = "numeric"
	TypeDate     QuestionType = "date"
	TypeYesNo    QuestionType = "yes_no"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeCheckbox, TypeRadio, TypeNumeric, TypeDate, TypeYesNo:
		return true
	}
	return false
}

type SkipOperator string

const (
	OpEquals      SkipOperator = "equals"
	OpNotEquals   SkipOperator = "not_equals"
	OpContains    SkipOperator = "contains"
	OpNotContains SkipOperator = "not_contains"
)

func (o SkipOperator) Valid() bool {
	switch o {
	case OpEquals, OpNotEquals, OpContains, OpNotContains:
		return true
	}
	return false
}

type Timestamp = time.Time
