package health

import "context"

// StorePinger checks note store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// SimilarityChecker checks the semantic similarity provider.
type SimilarityChecker interface {
	HealthCheck(ctx context.Context) error
}
