//go:generate mockgen -source=contracts.go -destination=truck_mocks_test.go -package=truck_test

package truck

import (
	"context"

	"freight-broker-service/internal/domain"
)

// truckRepository defines storage operations required by the business layer.
type truckRepository interface {
	Get(ctx context.Context, id int64) (*domain.Truck, error)
	Create(ctx context.Context, t *domain.Truck) (int64, error)
	ListByDriver(ctx context.Context, driverID int64) ([]domain.Truck, error)
	UpdatePartial(ctx context.Context, u domain.PartialTruckUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
