package httpadapter

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PabloGalante/questionnaire-agent/internal/app/questionnaire"
	"github.com/PabloGalante/questionnaire-agent/internal/app/results"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

const serviceName = "ai-questionnaire"

// Catalog is the part of the question catalog the API exposes.
type Catalog interface {
	Questions() []domain.Question
	Load(ctx context.Context) []domain.Question
}

type Server struct {
	engine  *questionnaire.Service
	catalog Catalog
	results *results.Service
}

func NewServer(engine *questionnaire.Service, catalog Catalog, res *results.Service) http.Handler {
	s := &Server{engine: engine, catalog: catalog, results: res}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(withRequestContext)
	r.Use(withLogging)
	r.Use(chiMiddleware.Recoverer)
	r.Use(withCORS)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/respond", s.handleRespond)
		r.Get("/status/{id}", s.handleStatus)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Post("/sessions/{id}/start", s.handleStartExisting)
		r.Get("/sessions/{id}/responses", s.handleResponses)

		r.Get("/questions", s.handleQuestions)
		r.Post("/questions/reload", s.handleReload)

		r.Get("/results", s.handleResults)
	})

	return r
}
