package catalog

import (
	"log/slog"
	"strings"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// Normalize drops records that break catalog invariants and skip
// conditions that do not point at an earlier question.
func Normalize(in []domain.Question, log *slog.Logger) []domain.Question {
	out := make([]domain.Question, 0, len(in))
	seen := make(map[domain.QuestionID]struct{}, len(in))

	for i, q := range in {
		if reason := rejectReason(q, seen); reason != "" {
			log.Warn("skipping question", "position", i, "question_id", q.ID, "reason", reason)
			continue
		}

		if len(q.SkipWhen) > 0 {
			conds := make([]domain.SkipCondition, 0, len(q.SkipWhen))
			for _, c := range q.SkipWhen {
				if _, ok := seen[c.QuestionID]; !ok {
					log.Warn("dropping skip condition", "question_id", q.ID, "references", c.QuestionID)
					continue
				}
				if !c.Operator.Valid() {
					log.Warn("dropping skip condition", "question_id", q.ID, "operator", c.Operator)
					continue
				}
				conds = append(conds, c)
			}
			q.SkipWhen = conds
		}

		seen[q.ID] = struct{}{}
		out = append(out, q)
	}

	return out
}

func rejectReason(q domain.Question, seen map[domain.QuestionID]struct{}) string {
	switch {
	case strings.TrimSpace(string(q.ID)) == "":
		return "missing id"
	case strings.TrimSpace(q.Text) == "":
		return "missing text"
	case !q.Type.Valid():
		return "unknown type " + string(q.Type)
	case q.NeedsOptions() && len(q.Options) == 0 && !q.AllowOther:
		return "no options"
	}
	if _, dup := seen[q.ID]; dup {
		return "duplicate id"
	}
	return ""
}
