package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// RetrievalPinger checks search backend availability.
type RetrievalPinger interface {
	Ping(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	retrieval RetrievalPinger
	cache     RetrievalPinger
}

// New creates a Service. cache can be nil when no embedding cache is wired.
func New(retrieval, cache RetrievalPinger) *Service {
	return &Service{retrieval: retrieval, cache: cache}
}

// Check runs health checks against the retrieval backend and the cache.
// An unhealthy cache only degrades; searches still work without it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.retrieval.Ping(ctx); err != nil {
		checks["retrieval"] = CheckError
	} else {
		checks["retrieval"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
