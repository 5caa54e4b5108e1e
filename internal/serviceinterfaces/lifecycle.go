package serviceinterfaces

import "context"

// HealthChecker reports whether a backing dependency is reachable. *sql.DB satisfies it.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}
