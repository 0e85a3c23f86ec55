package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

var ErrMockUnavailable = errors.New("mock llm: no reply configured")

// MockLLM answers prompts locally. With a nil Reply every call fails,
// which drives the phrasing fallbacks.
type MockLLM struct {
	Reply func(prompt string) (string, error)
}

var _ domain.LLMClient = (*MockLLM)(nil)

func NewMockLLM() *MockLLM {
	return &MockLLM{Reply: echoOriginal}
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Reply == nil {
		return "", ErrMockUnavailable
	}
	return m.Reply(prompt)
}

// echoOriginal returns the question quoted in a render prompt and fails
// for anything else, so callers use their fixed copy.
func echoOriginal(prompt string) (string, error) {
	const marker = "Original: "
	i := strings.Index(prompt, marker)
	if i < 0 {
		return "", ErrMockUnavailable
	}
	line := prompt[i+len(marker):]
	if j := strings.IndexByte(line, '\n'); j >= 0 {
		line = line[:j]
	}
	return strings.TrimSpace(line), nil
}
