package phrasing

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

var genericAcks = []string{"Got it!", "Thanks!", "Alright!", "Noted!", "Cool!"}

type ackRule struct {
	name  string
	match func(q domain.Question, v domain.Value) bool
	reply func(q domain.Question, v domain.Value, pick func([]string) string) string
}

// Acknowledger produces the short reaction shown after a valid answer.
// Rules are tried in order and the first match wins; the generic pool is
// the last rule and always matches.
type Acknowledger struct {
	mu    sync.Mutex
	rng   *rand.Rand
	rules []ackRule
}

// NewAcknowledger seeds the random picks; seed 0 uses the current time.
func NewAcknowledger(seed int64) *Acknowledger {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Acknowledger{
		rng:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		rules: defaultRules(),
	}
}

func (a *Acknowledger) Acknowledge(q domain.Question, v domain.Value) string {
	for _, r := range a.rules {
		if r.match(q, v) {
			return r.reply(q, v, a.pick)
		}
	}
	return a.pick(genericAcks)
}

func (a *Acknowledger) pick(pool []string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pool[a.rng.IntN(len(pool))]
}

func defaultRules() []ackRule {
	return []ackRule{
		{
			name:  "name",
			match: func(q domain.Question, _ domain.Value) bool { return textHas(q, "name") },
			reply: func(_ domain.Question, v domain.Value, pick func([]string) string) string {
				n := firstName(v.String())
				return pick([]string{
					fmt.Sprintf("Nice to meet you, %s!", n),
					fmt.Sprintf("%s - that's a lovely name!", n),
					fmt.Sprintf("Great name, %s!", n),
					fmt.Sprintf("Welcome, %s!", n),
				})
			},
		},
		{
			name: "age",
			match: func(q domain.Question, v domain.Value) bool {
				if q.Type != domain.TypeNumeric || !(textHas(q, "age") || textHas(q, "old")) {
					return false
				}
				_, ok := v.Number()
				return ok
			},
			reply: func(_ domain.Question, v domain.Value, _ func([]string) string) string {
				n, _ := v.Number()
				return ageReply(n)
			},
		},
		{
			name: "birth_date",
			match: func(q domain.Question, _ domain.Value) bool {
				return q.Type == domain.TypeDate && q.AsksBirthDate()
			},
			reply: constant("Thanks for sharing!"),
		},
		{
			name:  "gender",
			match: func(q domain.Question, _ domain.Value) bool { return textHas(q, "gender") },
			reply: constant("Noted, thanks!"),
		},
		{
			name:  "yes_no",
			match: func(q domain.Question, _ domain.Value) bool { return q.Type == domain.TypeYesNo },
			reply: func(_ domain.Question, v domain.Value, _ func([]string) string) string {
				switch strings.ToLower(strings.TrimSpace(v.String())) {
				case "yes", "true":
					return "Alright, good to know!"
				}
				return "Okay, noted!"
			},
		},
		{
			name:  "checkbox",
			match: func(q domain.Question, _ domain.Value) bool { return q.Type == domain.TypeCheckbox },
			reply: func(_ domain.Question, v domain.Value, _ func([]string) string) string {
				if items, ok := v.List(); ok && len(items) > 0 {
					return "Nice choices!"
				}
				return "Got it!"
			},
		},
		{
			name:  "generic",
			match: func(domain.Question, domain.Value) bool { return true },
			reply: func(_ domain.Question, _ domain.Value, pick func([]string) string) string {
				return pick(genericAcks)
			},
		},
	}
}

// ageReply keeps the product's age buckets as they are. Fractional ages
// count as their whole part; anything past the last bucket, however large,
// lands in the oldest one.
func ageReply(n float64) string {
	switch {
	case n >= 70:
		n = 70
	case n < 0:
		n = 0
	}
	age := int(math.Trunc(n))
	switch {
	case age < 18:
		return "Young and full of energy!"
	case age < 30:
		return "Great age to be!"
	case age < 50:
		return "The best years!"
	case age < 70:
		return "Experience is wisdom!"
	default:
		return "Wow, respect for your wisdom!"
	}
}

func constant(s string) func(domain.Question, domain.Value, func([]string) string) string {
	return func(domain.Question, domain.Value, func([]string) string) string { return s }
}

func textHas(q domain.Question, sub string) bool {
	return strings.Contains(strings.ToLower(q.Text), sub)
}

// firstName takes the first word and capitalises it.
func firstName(value string) string {
	value = strings.TrimSpace(value)
	if parts := strings.Fields(value); len(parts) > 0 {
		value = parts[0]
	}
	return capitalize(value)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
