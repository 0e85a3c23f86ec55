package phrasing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

func renderPrompt(q domain.Question) string {
	return fmt.Sprintf(`Rewrite this question in a friendly, conversational tone. Output ONLY the rephrased question, nothing else.

Original: %s

Rules:
- ONE sentence only
- No greetings (no "Hi", "Hello")
- No explanations
- No follow-up questions
- Just the question itself, rephrased naturally`, q.Text)
}

func clarifyPrompt(q domain.Question, v domain.Value, reason string) string {
	var b strings.Builder
	b.WriteString("The user's response wasn't clear enough. Politely ask for clarification.\n\n")
	fmt.Fprintf(&b, "Original question: %s\n", q.Text)
	fmt.Fprintf(&b, "Question type: %s\n", q.Type)
	if len(q.Options) > 0 {
		fmt.Fprintf(&b, "Expected options: %s\n", strings.Join(q.Options, ", "))
	}
	if q.MinValue != nil || q.MaxValue != nil {
		fmt.Fprintf(&b, "Expected range: %s to %s\n", bound(q.MinValue), bound(q.MaxValue))
	}
	if reason != "" {
		fmt.Fprintf(&b, "Problem: %s\n", reason)
	}
	fmt.Fprintf(&b, "User's unclear response: %s\n\n", v.String())
	b.WriteString("Be specific about what format or information you need. Keep it friendly and brief (1-2 sentences).")
	return b.String()
}

const completionPrompt = `The user has completed all questions in the questionnaire. Provide a brief, warm thank you message acknowledging their time and letting them know their responses have been recorded. Keep it to 2 sentences maximum.`

func bound(f *float64) string {
	if f == nil {
		return "any"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
