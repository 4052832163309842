//go:generate mockgen -source=contracts.go -destination=assignment_mocks_test.go -package=assignment_test

package assignment

import (
	"context"

	"freight-broker-service/internal/domain"
)

// loadSource is the read side of the load store the coordinator needs.
type loadSource interface {
	Get(ctx context.Context, id int64) (*domain.Load, error)
	ListPosted(ctx context.Context) ([]domain.Load, error)
}

// truckSource provides the pool of trucks available for matching.
type truckSource interface {
	ListMatchable(ctx context.Context) ([]domain.Truck, error)
}

// counter is the subset of a Prometheus counter the coordinator uses.
type counter interface {
	Inc()
}
