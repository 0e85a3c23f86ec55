package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/questionnaire-agent/internal/config"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

var errNoQuestions = errors.New("no questions configured")

// NewQuestionsCommand loads the catalog the server would use and prints it.
func NewQuestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Load and print the question catalog",
		Long: `Load the questions from the configured source (QUESTION_SOURCE) and
print each one with its type, options and skip rules. Exits with an
error when no question could be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runQuestions(ctx, cmd.OutOrStdout())
		},
	}
}

func runQuestions(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.SetLevel(cfg.LogLevel)

	var comps components
	defer comps.close(observability.Logger())

	comps.connectSheets(ctx, cfg)
	cat := comps.questionCatalog(cfg)
	return printCatalog(out, cfg.QuestionSource, cat.Load(ctx))
}

func printCatalog(out io.Writer, source string, questions []domain.Question) error {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	if len(questions) == 0 {
		color.New(color.FgRed).Fprintf(out, "No questions loaded (source: %s)\n", source)
		return errNoQuestions
	}

	cyan.Fprintf(out, "%d questions (source: %s)\n\n", len(questions), source)
	for i, q := range questions {
		req := "optional"
		if q.Required {
			req = "required"
		}
		fmt.Fprintf(out, "%2d. ", i+1)
		green.Fprintf(out, "[%s] ", q.ID)
		fmt.Fprintf(out, "%s ", q.Text)
		gray.Fprintf(out, "(%s, %s)\n", q.Type, req)

		if len(q.Options) > 0 {
			opts := strings.Join(q.Options, ", ")
			if q.AllowOther {
				opts += ", other"
			}
			fmt.Fprintf(out, "    options: %s\n", opts)
		}
		if q.MinValue != nil || q.MaxValue != nil {
			fmt.Fprintf(out, "    range: %s to %s\n", bound(q.MinValue), bound(q.MaxValue))
		}
		for _, c := range q.SkipWhen {
			yellow.Fprintf(out, "    skip when %s %s %q\n", c.QuestionID, c.Operator, c.Value.String())
		}
	}
	return nil
}

func bound(f *float64) string {
	if f == nil {
		return "any"
	}
	return fmt.Sprintf("%g", *f)
}
