package addresses

import (
	"context"

	"freight-broker-service/internal/domain"
)

// StaticGateway serves fixed fallback addresses. Used when no profile
// service is configured, e.g. in local development.
type StaticGateway struct {
	PickUp   domain.Address
	Delivery domain.Address
}

// NewStaticGateway returns a gateway serving the default depot addresses.
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{
		PickUp:   domain.Address{City: "Kyiv", Street: "street 33", Zip: "07249"},
		Delivery: domain.Address{City: "Kyiv", Street: "street 32", Zip: "07258"},
	}
}

// DefaultAddresses returns the fixed addresses for any shipper.
func (g *StaticGateway) DefaultAddresses(_ context.Context, _ int64) (domain.Address, domain.Address, error) {
	return g.PickUp, g.Delivery, nil
}
