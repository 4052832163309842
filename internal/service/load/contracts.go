//go:generate mockgen -source=contracts.go -destination=load_mocks_test.go -package=load_test

package load

import (
	"context"

	"freight-broker-service/internal/domain"
)

// loadRepository defines storage operations required by the business layer.
type loadRepository interface {
	Get(ctx context.Context, id int64) (*domain.Load, error)
	Create(ctx context.Context, l *domain.Load) (int64, error)
	ListByShipper(ctx context.Context, shipperID int64, status *domain.LoadStatus, limit, offset *int) ([]domain.Load, error)
	ActiveByDriver(ctx context.Context, driverID int64) (*domain.Load, error)
	UpdatePartial(ctx context.Context, u domain.PartialLoadUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Logs(ctx context.Context, loadID int64) ([]domain.LogEntry, error)
}

// AddressSource supplies default pick-up and delivery addresses for a
// shipper when the load request omits them.
type AddressSource interface {
	DefaultAddresses(ctx context.Context, shipperID int64) (pickUp, delivery domain.Address, err error)
}
