package handlers

import (
	"context"

	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/service/assignment"
	"freight-broker-service/internal/service/load"
	"freight-broker-service/internal/service/truck"
)

//go:generate mockgen -source=contracts.go -destination=mocks/contracts.go -package=mocks

type loadUsecase interface {
	Create(ctx context.Context, shipperID int64, l *domain.Load) (int64, error)
	GetForUser(ctx context.Context, userID int64, role domain.Role, id int64) (*domain.Load, error)
	ListForUser(ctx context.Context, userID int64, role domain.Role, status *domain.LoadStatus, limit, offset *int) ([]domain.Load, error)
	UpdatePartial(ctx context.Context, shipperID int64, u domain.PartialLoadUpdate) error
	Delete(ctx context.Context, shipperID, id int64) error
	Post(ctx context.Context, shipperID, loadID int64) error
	Advance(ctx context.Context, driverID, loadID int64) (*domain.Load, error)
	ShippingLog(ctx context.Context, userID int64, role domain.Role, loadID int64) ([]domain.LogEntry, error)
}

type assignerUsecase interface {
	Assign(ctx context.Context, loadID int64) (*domain.Assignment, error)
}

type truckUsecase interface {
	Create(ctx context.Context, driverID int64, t *domain.Truck) (int64, error)
	List(ctx context.Context, driverID int64) ([]domain.Truck, error)
	UpdatePartial(ctx context.Context, driverID int64, u domain.PartialTruckUpdate) error
	Delete(ctx context.Context, driverID, truckID int64) error
	Assign(ctx context.Context, driverID, truckID int64) (*domain.Truck, error)
}

// NewLoadUsecase adapts the load service to the handler contract.
func NewLoadUsecase(s *load.Service) loadUsecase { return s }

// NewAssignerUsecase adapts the assignment coordinator to the handler contract.
func NewAssignerUsecase(c *assignment.Coordinator) assignerUsecase { return c }

// NewTruckUsecase adapts the truck service to the handler contract.
func NewTruckUsecase(s *truck.Service) truckUsecase { return s }
