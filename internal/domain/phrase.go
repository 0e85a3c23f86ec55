package domain

import "strings"

const (
	WelcomePrefix         = "Welcome! "
	FallbackClarification = "Could you please clarify your answer?"
	FallbackCompletion    = "Thank you for completing the questionnaire! Your responses have been saved."
	NoQuestionsMessage    = "No questions configured. Please add questions to start."
	NoCurrentQuestion     = "No current question"
)

// Phrase is the outcome of a phrasing call: either usable text or the
// reason it could not be produced.
type Phrase struct {
	Text string
	Err  error
}

// PhraseOf wraps the (text, err) pair returned by a collaborator.
func PhraseOf(text string, err error) Phrase {
	return Phrase{Text: text, Err: err}
}

// OK reports whether the phrase can be shown as is.
func (p Phrase) OK() bool {
	return p.Err == nil && strings.TrimSpace(p.Text) != ""
}

// Or returns the phrase text, or fallback when the phrase failed or is blank.
func (p Phrase) Or(fallback string) string {
	if p.OK() {
		return p.Text
	}
	return fallback
}

// FallbackQuestion is the text shown when a question could not be rephrased.
func FallbackQuestion(q Question, isFirst bool) string {
	if isFirst {
		return WelcomePrefix + q.Text
	}
	return q.Text
}
