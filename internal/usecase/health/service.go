// Package health aggregates component availability checks. Optional
// components (cache, oracle) are only checked when configured; the engine
// itself is always operational because every capability has a
// deterministic path.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all configured components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
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

// Service coordinates health checks.
type Service struct {
	cache  CachePinger
	oracle OracleChecker
}

// New creates a Service. Both components may be nil.
func New(cache CachePinger, oracle OracleChecker) *Service {
	return &Service{cache: cache, oracle: oracle}
}

// Check runs health checks against the configured components. A failing
// optional component degrades the report without making it unhealthy:
// answers keep flowing on the deterministic paths.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.oracle != nil {
		if err := s.oracle.HealthCheck(ctx); err != nil {
			checks["oracle"] = CheckError
		} else {
			checks["oracle"] = CheckOK
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
