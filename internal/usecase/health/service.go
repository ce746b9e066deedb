// Package health aggregates component checks into one readiness report.
package health

import (
	"context"

	"github.com/spacebio/pubdex/internal/version"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure; search may return empty results.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status         Status
	Checks         map[string]CheckResult
	Version        string
	CorpusSize     int
	VocabularySize int
}

// Service coordinates health checks.
type Service struct {
	index IndexChecker
	store StorePinger
}

// New creates a Service. store can be nil.
func New(index IndexChecker, store StorePinger) *Service {
	return &Service{index: index, store: store}
}

// Check runs health checks against all components. A missing index marks the
// service degraded, not down: search endpoints still answer with empty pages.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	report := Report{Version: version.Version}
	if articles, vocabulary, ok := s.index.Stats(); ok {
		checks["index"] = CheckOK
		report.CorpusSize = articles
		report.VocabularySize = vocabulary
	} else {
		checks["index"] = CheckError
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks["store"] = CheckError
		} else {
			checks["store"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	report.Status = status
	report.Checks = checks
	return report
}
