package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/PabloGalante/questionnaire-agent/internal/adapters/http"
	"github.com/PabloGalante/questionnaire-agent/internal/app/phrasing"
	"github.com/PabloGalante/questionnaire-agent/internal/app/questionnaire"
	"github.com/PabloGalante/questionnaire-agent/internal/app/results"
	"github.com/PabloGalante/questionnaire-agent/internal/config"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.SetLevel(cfg.LogLevel)
	log := observability.WithFields("component", "serve", "addr", cfg.Addr())

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var comps components
	defer comps.close(log)

	comps.connectSheets(ctx, cfg)
	cat := comps.questionCatalog(cfg)
	cat.Load(ctx)

	phraser, err := phrasing.NewService(comps.llmClient(ctx, cfg), phrasing.Config{
		Timeout:   cfg.PhrasingTimeout,
		CacheSize: cfg.PhrasingCacheSize,
		Seed:      cfg.AckSeed,
	})
	if err != nil {
		return err
	}

	store, err := comps.sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	sinks, err := comps.resultSinks(ctx, cfg)
	if err != nil {
		return err
	}
	res := results.NewService(sinks...)
	log.Info("result sinks configured", "sinks", res.Sinks())

	engine := questionnaire.NewService(cat, store, phraser)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpadapter.NewServer(engine, cat, res),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("questionnaire API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
