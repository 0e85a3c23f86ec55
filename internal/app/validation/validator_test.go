package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/questionnaire-agent/internal/app/validation"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

var today = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func ptr(f float64) *float64 { return &f }

func TestValidate(t *testing.T) {
	age := domain.Question{ID: "age", Text: "How old are you?", Type: domain.TypeNumeric, Required: true, MinValue: ptr(0), MaxValue: ptr(120)}
	adult := domain.Question{ID: "years", Text: "Years of experience", Type: domain.TypeNumeric, Required: true, MinValue: ptr(18)}
	color := domain.Question{ID: "color", Text: "Favorite color", Type: domain.TypeRadio, Required: true, Options: []string{"Red", "Blue"}}
	colorOther := color
	colorOther.AllowOther = true
	hobbies := domain.Question{ID: "hobbies", Text: "Hobbies", Type: domain.TypeCheckbox, Required: true, Options: []string{"Reading", "Music"}}
	smoker := domain.Question{ID: "smoker", Text: "Do you smoke?", Type: domain.TypeYesNo, Required: true}
	dob := domain.Question{ID: "dob", Text: "What is your date of birth?", Type: domain.TypeDate, Required: true}
	start := domain.Question{ID: "start", Text: "When can you start?", Type: domain.TypeDate, Required: true}
	name := domain.Question{ID: "name", Text: "What is your name?", Type: domain.TypeText, Required: true}
	notes := domain.Question{ID: "notes", Text: "Anything else?", Type: domain.TypeText}

	tests := []struct {
		name  string
		q     domain.Question
		v     domain.Value
		ok    bool
		msgIs string
	}{
		{"required empty string", name, domain.StringValue(""), false, validation.MsgRequired},
		{"required null", age, domain.NullValue(), false, validation.MsgRequired},
		{"required empty list", hobbies, domain.ListValue(), false, validation.MsgRequired},
		{"optional empty", notes, domain.StringValue(""), true, ""},
		{"optional null numeric", domain.Question{Type: domain.TypeNumeric}, domain.NullValue(), true, ""},

		{"numeric string", age, domain.StringValue("25"), true, ""},
		{"numeric number", age, domain.NumberValue(42), true, ""},
		{"numeric garbage", age, domain.StringValue("abc"), false, validation.MsgInvalidNumber},
		{"numeric NaN", age, domain.StringValue("NaN"), false, validation.MsgInvalidNumber},
		{"numeric list", age, domain.ListValue("1"), false, validation.MsgInvalidNumber},
		{"numeric negative", age, domain.StringValue("-1"), false, validation.MsgNegativeNumber},
		{"numeric above max", age, domain.NumberValue(121), false, "Value must be at most 120"},
		{"numeric below min", adult, domain.NumberValue(17), false, "Value must be at least 18"},

		{"radio option", color, domain.StringValue("Red"), true, ""},
		{"radio unknown", color, domain.StringValue("Green"), false, "Please select one of: Red, Blue"},
		{"radio other allowed", colorOther, domain.StringValue("Green"), true, ""},
		{"radio list", color, domain.ListValue("Red"), false, validation.MsgSingleOption},

		{"checkbox ok", hobbies, domain.ListValue("Reading", "Music"), true, ""},
		{"checkbox invalid items", hobbies, domain.ListValue("Reading", "Golf", "Chess"), false, "Invalid options: Golf, Chess"},
		{"checkbox scalar", hobbies, domain.StringValue("Reading"), false, validation.MsgCheckboxList},

		{"yes", smoker, domain.StringValue("Yes"), true, ""},
		{"false", smoker, domain.StringValue("FALSE"), true, ""},
		{"bool", smoker, domain.BoolValue(true), true, ""},
		{"one", smoker, domain.NumberValue(1), true, ""},
		{"maybe", smoker, domain.StringValue("maybe"), false, validation.MsgYesNo},

		{"date ok", start, domain.StringValue("2030-01-01"), true, ""},
		{"date format", start, domain.StringValue("01/02/2030"), false, validation.MsgDateFormat},
		{"dob past", dob, domain.StringValue("1990-05-17"), true, ""},
		{"dob today", dob, domain.StringValue("2026-03-10"), false, validation.MsgBirthDatePast},
		{"dob future", dob, domain.StringValue("2030-01-01"), false, validation.MsgBirthDatePast},
		{"dob impossible", dob, domain.StringValue("1990-13-45"), false, validation.MsgInvalidDate},

		{"text ok", name, domain.StringValue("Ada"), true, ""},
		{"text blank", name, domain.StringValue("   "), false, validation.MsgTextRequired},
		{"text number", name, domain.NumberValue(3), false, validation.MsgTextRequired},
		{"optional text number", notes, domain.NumberValue(3), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validation.Validate(tt.q, tt.v, today)
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.msgIs, res.Message)
		})
	}
}

func TestValidateScenarioA(t *testing.T) {
	q := domain.Question{ID: "q1", Type: domain.TypeNumeric, Required: true, MinValue: ptr(0), MaxValue: ptr(120)}

	res := validation.Validate(q, domain.StringValue("abc"), today)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Please enter a valid number")

	assert.True(t, validation.Validate(q, domain.StringValue("25"), today).OK)
}
