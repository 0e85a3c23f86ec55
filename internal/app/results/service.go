package results

import (
	"context"
	"time"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
	"github.com/PabloGalante/questionnaire-agent/internal/observability"
)

const defaultRecentLimit = 20

// Service pushes results to every sink in order and reads them back from
// the first sink that keeps an archive.
type Service struct {
	sinks []domain.ResultSink
}

func NewService(sinks ...domain.ResultSink) *Service {
	return &Service{sinks: sinks}
}

// Sinks returns the configured sink names in export order.
func (s *Service) Sinks() []string {
	names := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// Export sends result to every sink sequentially. A failing sink is logged
// and counted; the remaining sinks still run. It returns how many sinks
// stored the result.
func (s *Service) Export(ctx context.Context, result *domain.SessionResult) int {
	log := observability.LoggerFromContext(ctx).With("session_id", result.SessionID)
	log.Info("export started", "sinks_count", len(s.sinks))

	saved := 0
	for _, sink := range s.sinks {
		start := time.Now()
		err := sink.SaveResult(ctx, result)
		elapsed := time.Since(start)

		if err != nil {
			observability.ResultExports.WithLabelValues(sink.Name(), "error").Inc()
			log.Error("result export failed",
				"sink", sink.Name(),
				"elapsed_ms", elapsed.Milliseconds(),
				"error", err)
			continue
		}

		saved++
		observability.ResultExports.WithLabelValues(sink.Name(), "ok").Inc()
		log.Info("result exported", "sink", sink.Name(), "elapsed_ms", elapsed.Milliseconds())
	}

	log.Info("export end", "saved", saved)
	return saved
}

// Recent returns the last `limit` archived results, newest first.
// If limit <= 0 a default of 20 is used. Without an archiving sink the
// result is empty.
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.SessionResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	for _, sink := range s.sinks {
		if archive, ok := sink.(domain.ResultArchive); ok {
			return archive.ListResults(ctx, limit)
		}
	}
	return []*domain.SessionResult{}, nil
}
