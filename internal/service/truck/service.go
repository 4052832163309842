package truck

import (
	"context"
	"time"

	"freight-broker-service/internal/apperr"
	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/logx"
	"freight-broker-service/internal/ports/brokertx"
)

// Service coordinates truck fleet operations for drivers.
type Service struct {
	repo             truckRepository
	tx               brokertx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a truck Service.
func NewService(r truckRepository, tx brokertx.Runner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, tx: tx, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create registers a new FREE truck owned by the driver and returns its ID.
func (s *Service) Create(ctx context.Context, driverID int64, t *domain.Truck) (int64, error) {
	if t == nil || driverID <= 0 {
		return 0, apperr.ErrInvalid
	}
	if !t.Type.Valid() {
		return 0, apperr.ErrInvalid
	}

	t.CreatedBy = driverID
	t.Status = domain.TruckStatusFree
	t.Active = false
	t.LoadID = nil

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return 0, err
	}
	s.logger.Info("truck created",
		logx.String("event", "truck_created"),
		logx.Int64("truck_id", id),
		logx.Int64("driver_id", driverID),
		logx.String("type", string(t.Type)),
	)
	return id, nil
}

// List returns the driver's fleet.
func (s *Service) List(ctx context.Context, driverID int64) ([]domain.Truck, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByDriver(ctx, driverID)
}

// getOwned fetches a truck and verifies the driver owns it.
func (s *Service) getOwned(ctx context.Context, driverID, truckID int64) (*domain.Truck, error) {
	t, err := s.repo.Get(ctx, truckID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.ErrNotFound
	}
	if t.CreatedBy != driverID {
		return nil, apperr.ErrNotAuthorized
	}
	return t, nil
}

// UpdatePartial renames the driver's truck. Trucks on an assignment
// cannot be edited.
func (s *Service) UpdatePartial(ctx context.Context, driverID int64, u domain.PartialTruckUpdate) error {
	if u.ID <= 0 || u.Name == nil {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.getOwned(ctx, driverID, u.ID)
	if err != nil {
		return err
	}
	if t.Status != domain.TruckStatusFree {
		return apperr.ErrTruckUnavailable
	}

	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrTruckUnavailable
	}
	return nil
}

// Delete removes the driver's FREE truck.
func (s *Service) Delete(ctx context.Context, driverID, truckID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.getOwned(ctx, driverID, truckID)
	if err != nil {
		return err
	}
	if t.Status != domain.TruckStatusFree {
		return apperr.ErrTruckUnavailable
	}

	ok, err := s.repo.Delete(ctx, truckID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrTruckUnavailable
	}
	return nil
}

// Assign makes the truck the driver's active rig, the one offered to
// the matcher. The previous active truck is deactivated in the same
// transaction. Fails with ErrTruckUnavailable when the truck is mid-
// assignment.
func (s *Service) Assign(ctx context.Context, driverID, truckID int64) (*domain.Truck, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.getOwned(ctx, driverID, truckID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx brokertx.Repository) error {
		ok, err := tx.ActivateTruck(ctx, driverID, truckID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrTruckUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.Active = true
	s.logger.Info("truck activated",
		logx.String("event", "truck_activated"),
		logx.Int64("truck_id", truckID),
		logx.Int64("driver_id", driverID),
	)
	return t, nil
}
