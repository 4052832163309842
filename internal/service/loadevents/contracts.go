//go:generate mockgen -source=contracts.go -destination=loadevents_mocks_test.go -package=loadevents_test

package loadevents

import (
	"context"

	"freight-broker-service/internal/domain"
)

// AssignerPort abstracts the subset of coordinator operations needed by
// the Processor when handling load events.
type AssignerPort interface {
	Assign(ctx context.Context, loadID int64) (*domain.Assignment, error)
	RematchPosted(ctx context.Context) (int, error)
}
