package health

import "context"

// CachePinger checks embedding-cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// OracleChecker checks oracle API availability.
type OracleChecker interface {
	HealthCheck(ctx context.Context) error
}
