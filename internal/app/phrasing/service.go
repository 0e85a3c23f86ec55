package phrasing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

const maxRenderedLen = 100

var (
	ErrNoModel    = errors.New("phrasing: no language model configured")
	errEmptyReply = errors.New("phrasing: empty model reply")
)

type Config struct {
	Timeout   time.Duration
	CacheSize int
	Seed      int64
}

// Service implements domain.Phraser on top of a language model.
type Service struct {
	llm     domain.LLMClient
	ack     *Acknowledger
	cache   *lru.Cache
	timeout time.Duration
}

var _ domain.Phraser = (*Service)(nil)

func NewService(llm domain.LLMClient, cfg Config) (*Service, error) {
	s := &Service{
		llm:     llm,
		ack:     NewAcknowledger(cfg.Seed),
		timeout: cfg.Timeout,
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("phrasing: create cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

type cacheKey struct {
	id   domain.QuestionID
	text string
}

func (s *Service) RenderQuestion(ctx context.Context, q domain.Question, isFirst bool) domain.Phrase {
	text, err := s.rendered(ctx, q)
	if err != nil {
		return domain.Phrase{Err: err}
	}
	if isFirst {
		text = domain.WelcomePrefix + text
	}
	return domain.Phrase{Text: text}
}

func (s *Service) rendered(ctx context.Context, q domain.Question) (string, error) {
	key := cacheKey{id: q.ID, text: q.Text}
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(string), nil
		}
	}

	raw, err := s.generate(ctx, "render", renderPrompt(q))
	if err != nil {
		return "", err
	}
	text := cleanRendered(raw, q.Text)
	if text == "" {
		return "", errEmptyReply
	}
	if s.cache != nil {
		s.cache.Add(key, text)
	}
	return text, nil
}

func (s *Service) Acknowledge(q domain.Question, v domain.Value) string {
	return s.ack.Acknowledge(q, v)
}

func (s *Service) Clarify(ctx context.Context, q domain.Question, v domain.Value, reason string) domain.Phrase {
	return domain.PhraseOf(s.generate(ctx, "clarify", clarifyPrompt(q, v, reason)))
}

func (s *Service) Complete(ctx context.Context) domain.Phrase {
	return domain.PhraseOf(s.generate(ctx, "complete", completionPrompt))
}

func (s *Service) generate(ctx context.Context, op, prompt string) (string, error) {
	if s.llm == nil {
		return "", ErrNoModel
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.llm.Generate(ctx, prompt)
	observability.LoggerFromContext(ctx).Debug("phrasing call finished",
		"operation", op,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err,
	)
	if err != nil {
		return "", fmt.Errorf("phrasing %s: %w", op, err)
	}
	return strings.TrimSpace(out), nil
}

// cleanRendered strips filler, keeps the first sentence and falls back to
// the original text when the model rambles.
func cleanRendered(raw, original string) string {
	out := strings.ReplaceAll(raw, "Sure!", "")
	out = strings.ReplaceAll(out, "Of course!", "")
	out = strings.TrimSpace(out)

	for _, sep := range []string{". ", "? ", "! "} {
		if i := strings.Index(out, sep); i >= 0 {
			out = out[:i+1]
			break
		}
	}
	if utf8.RuneCountInString(out) > maxRenderedLen {
		return original
	}
	return out
}
