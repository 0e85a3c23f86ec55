package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PabloGalante/questionnaire-agent/internal/adapters/llm"
	"github.com/PabloGalante/questionnaire-agent/internal/adapters/questionfile"
	"github.com/PabloGalante/questionnaire-agent/internal/adapters/sheets"
	firestorestore "github.com/PabloGalante/questionnaire-agent/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/questionnaire-agent/internal/adapters/storage/memory"
	sqlitestore "github.com/PabloGalante/questionnaire-agent/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/questionnaire-agent/internal/app/catalog"
	"github.com/PabloGalante/questionnaire-agent/internal/config"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

// components collects everything built from the configuration, plus the
// cleanup to run on shutdown.
type components struct {
	sheets  *sheets.Client
	closers []func() error
}

func (c *components) close(log *slog.Logger) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Warn("close failed", "error", err)
		}
	}
}

// connectSheets is best effort: without credentials the service still
// runs, it just cannot read or write the spreadsheet.
func (c *components) connectSheets(ctx context.Context, cfg *config.Config) {
	if !cfg.UsesSheets() {
		return
	}
	log := observability.LoggerFromContext(ctx)

	client, err := sheets.NewClient(ctx, cfg.GoogleCredentialsFile, cfg.GoogleSheetID, cfg.SheetName)
	if err != nil {
		log.Warn("google sheets unavailable", "error", err)
		return
	}
	log.Info("google sheets connected", "sheet", cfg.SheetName)
	c.sheets = client
}

func (c *components) questionCatalog(cfg *config.Config) *catalog.Catalog {
	var sheetSource domain.QuestionSource
	if c.sheets != nil {
		sheetSource = sheets.NewQuestionSource(c.sheets)
	}
	file := questionfile.NewSource(cfg.QuestionsJSONFile)
	return catalog.New(catalog.SelectSource(catalog.Mode(cfg.QuestionSource), file, sheetSource))
}

// llmClient returns nil when the provider cannot be set up, for example a
// missing API key. Phrasing then serves the fixed fallback texts.
func (c *components) llmClient(ctx context.Context, cfg *config.Config) domain.LLMClient {
	log := observability.LoggerFromContext(ctx).With("provider", cfg.LLMProvider, "model", cfg.Model)

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		log.Warn("llm client unavailable, using fixed phrasing", "error", err)
		return nil
	}

	log.Info("llm client ready")
	return client
}

func newLLMClient(ctx context.Context, cfg *config.Config) (domain.LLMClient, error) {
	switch cfg.LLMProvider {
	case "mock":
		return llm.NewMockLLM(), nil
	case "openai":
		client, err := llm.NewOpenAIClient(cfg.ModelAPIKey, cfg.OpenAIBaseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "vertex":
		client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			Model:    cfg.Model,
			Project:  cfg.GCPProject,
			Location: cfg.GCPLocation,
			Vertex:   true,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			Model:  cfg.Model,
			APIKey: cfg.ModelAPIKey,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func (c *components) sessionStore(ctx context.Context, cfg *config.Config) (domain.SessionStore, error) {
	log := observability.LoggerFromContext(ctx)

	if cfg.SessionStore == "firestore" {
		store, err := firestorestore.NewStore(ctx, cfg.GCPProject)
		if err != nil {
			return nil, fmt.Errorf("init firestore store: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		log.Info("using firestore session store", "project", cfg.GCPProject)
		return store, nil
	}

	log.Info("using in-memory session store")
	return memstore.NewSessionStore(), nil
}

// resultSinks builds the sinks in the configured order. A sheets sink is
// skipped when the spreadsheet is not reachable.
func (c *components) resultSinks(ctx context.Context, cfg *config.Config) ([]domain.ResultSink, error) {
	log := observability.LoggerFromContext(ctx)

	var sinks []domain.ResultSink
	for _, name := range cfg.ResultSinks {
		switch name {
		case "sheets":
			if c.sheets == nil {
				log.Warn("sheets result sink disabled")
				continue
			}
			sinks = append(sinks, sheets.NewResultSink(c.sheets))
		case "sqlite":
			store, err := sqlitestore.NewResultStore(cfg.ResultsDBPath)
			if err != nil {
				return nil, fmt.Errorf("init sqlite result store: %w", err)
			}
			c.closers = append(c.closers, store.Close)
			sinks = append(sinks, store)
		case "memory":
			sinks = append(sinks, memstore.NewResultStore())
		}
	}
	return sinks, nil
}
