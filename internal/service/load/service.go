package load

import (
	"context"
	"strings"
	"time"

	"freight-broker-service/internal/apperr"
	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/logx"
	"freight-broker-service/internal/ports/brokertx"
)

const defaultLoadName = "Load"

// Service owns the load lifecycle: creation and edits while NEW, the
// posting transition, and the driver-facing state machine. Every
// transition commits its status/state change and shipping-log entry in
// one transaction.
type Service struct {
	repo             loadRepository
	tx               brokertx.Runner
	addresses        AddressSource
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a load Service. addresses may be
// nil; the caller then must supply addresses on every load.
func NewService(r loadRepository, tx brokertx.Runner, addresses AddressSource, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		tx:               tx,
		addresses:        addresses,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateSpec rejects malformed dimensions or payload before any mutation.
func validateSpec(d domain.Dimensions, payload float64) error {
	if !d.Positive() || payload <= 0 {
		return apperr.ErrInvalidLoadSpec
	}
	return nil
}

// Create persists a new NEW load owned by the shipper and returns its ID.
func (s *Service) Create(ctx context.Context, shipperID int64, l *domain.Load) (int64, error) {
	if l == nil || shipperID <= 0 {
		return 0, apperr.ErrInvalid
	}
	if err := validateSpec(l.Dimensions, l.Payload); err != nil {
		return 0, err
	}

	l.CreatedBy = shipperID
	l.Status = domain.LoadStatusNew
	l.State = domain.LoadStateNone
	l.AssignedTo = nil
	if strings.TrimSpace(l.Name) == "" {
		l.Name = defaultLoadName
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.fillAddresses(ctx, shipperID, l); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, l)
	if err != nil {
		return 0, err
	}
	s.logger.Info("load created",
		logx.String("event", "load_created"),
		logx.Int64("load_id", id),
		logx.Int64("shipper_id", shipperID),
	)
	return id, nil
}

// fillAddresses resolves missing pick-up/delivery addresses from the
// shipper's address profile.
func (s *Service) fillAddresses(ctx context.Context, shipperID int64, l *domain.Load) error {
	if !l.PickUpAddress.Empty() && !l.DeliveryAddress.Empty() {
		return nil
	}
	if s.addresses == nil {
		return apperr.ErrInvalid
	}
	pickUp, delivery, err := s.addresses.DefaultAddresses(ctx, shipperID)
	if err != nil {
		return err
	}
	if l.PickUpAddress.Empty() {
		l.PickUpAddress = pickUp
	}
	if l.DeliveryAddress.Empty() {
		l.DeliveryAddress = delivery
	}
	return nil
}

// GetForUser retrieves a load visible to the caller: the owning shipper
// or the assigned driver.
func (s *Service) GetForUser(ctx context.Context, userID int64, role domain.Role, id int64) (*domain.Load, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrNotFound
	}
	if err := authorize(l, userID, role); err != nil {
		return nil, err
	}
	return l, nil
}

func authorize(l *domain.Load, userID int64, role domain.Role) error {
	switch role {
	case domain.RoleShipper:
		if l.CreatedBy != userID {
			return apperr.ErrNotAuthorized
		}
	case domain.RoleDriver:
		if l.AssignedTo == nil || *l.AssignedTo != userID {
			return apperr.ErrNotAuthorized
		}
	default:
		return apperr.ErrNotAuthorized
	}
	return nil
}

// ListForUser returns the loads visible to the caller: a shipper sees
// their own loads with optional status filter and paging, a driver sees
// the load currently assigned to them.
func (s *Service) ListForUser(ctx context.Context, userID int64, role domain.Role, status *domain.LoadStatus, limit, offset *int) ([]domain.Load, error) {
	if status != nil && !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	switch role {
	case domain.RoleShipper:
		return s.repo.ListByShipper(ctx, userID, status, limit, offset)
	case domain.RoleDriver:
		l, err := s.repo.ActiveByDriver(ctx, userID)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return []domain.Load{}, nil
		}
		return []domain.Load{*l}, nil
	default:
		return nil, apperr.ErrNotAuthorized
	}
}

// UpdatePartial applies a partial update to a NEW load owned by the shipper.
func (s *Service) UpdatePartial(ctx context.Context, shipperID int64, u domain.PartialLoadUpdate) error {
	if u.ID <= 0 {
		return apperr.ErrInvalid
	}
	if u.Dimensions != nil && !u.Dimensions.Positive() {
		return apperr.ErrInvalidLoadSpec
	}
	if u.Payload != nil && *u.Payload <= 0 {
		return apperr.ErrInvalidLoadSpec
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	l, err := s.repo.Get(ctx, u.ID)
	if err != nil {
		return err
	}
	if l == nil {
		return apperr.ErrNotFound
	}
	if l.CreatedBy != shipperID {
		return apperr.ErrNotAuthorized
	}
	if !l.Editable() {
		return apperr.ErrInvalidTransition
	}

	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return err
	}
	if !ok {
		// the load left NEW between the read and the conditional update
		return apperr.ErrInvalidTransition
	}
	return nil
}

// Delete removes a load with no active assignment.
func (s *Service) Delete(ctx context.Context, shipperID, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return apperr.ErrNotFound
	}
	if l.CreatedBy != shipperID {
		return apperr.ErrNotAuthorized
	}
	if !l.Deletable() {
		return apperr.ErrInvalidTransition
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrInvalidTransition
	}
	return nil
}

// Post transitions the shipper's load NEW -> POSTED, making it visible
// to the matcher, and appends the "Load posted" log entry atomically.
func (s *Service) Post(ctx context.Context, shipperID, loadID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.tx.WithTx(ctx, func(tx brokertx.Repository) error {
		l, err := tx.GetLoadForUpdate(ctx, loadID)
		if err != nil {
			return err
		}
		if l == nil {
			return apperr.ErrNotFound
		}
		if l.CreatedBy != shipperID {
			return apperr.ErrNotAuthorized
		}
		if l.Status != domain.LoadStatusNew {
			return apperr.ErrInvalidTransition
		}

		ok, err := tx.PostLoad(ctx, loadID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidTransition
		}
		return tx.AppendLog(ctx, loadID, "Load posted")
	})
	if err != nil {
		return err
	}

	s.logger.Info("load posted",
		logx.String("event", "load_posted"),
		logx.Int64("load_id", loadID),
	)
	return nil
}

// Advance moves the assigned load to the next delivery phase on behalf
// of the assigned driver. Arriving to delivery completes the load:
// status becomes DELIVERED, the state is cleared and the truck is
// released, all in the same commit.
func (s *Service) Advance(ctx context.Context, driverID, loadID int64) (*domain.Load, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Load
	err := s.tx.WithTx(ctx, func(tx brokertx.Repository) error {
		l, err := tx.GetLoadForUpdate(ctx, loadID)
		if err != nil {
			return err
		}
		if l == nil {
			return apperr.ErrNotFound
		}
		if l.AssignedTo == nil || *l.AssignedTo != driverID {
			return apperr.ErrNotAuthorized
		}
		if l.Status != domain.LoadStatusAssigned {
			return apperr.ErrInvalidTransition
		}

		next, ok := l.State.Next()
		if !ok {
			return apperr.ErrInvalidTransition
		}

		if next.Last() {
			if err := s.completeInTx(ctx, tx, l); err != nil {
				return err
			}
			result = l
			return nil
		}

		moved, err := tx.UpdateLoadState(ctx, loadID, l.State, next)
		if err != nil {
			return err
		}
		if !moved {
			return apperr.ErrInvalidTransition
		}
		if next == domain.LoadStateEnRouteToDelivery {
			// cargo on board: the truck leaves the yard
			if err := tx.MarkTruckOnRoute(ctx, loadID); err != nil {
				return err
			}
		}
		if err := tx.AppendLog(ctx, loadID, next.LogMessage()); err != nil {
			return err
		}

		l.State = next
		result = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("load state advanced",
		logx.String("event", "load_state_advanced"),
		logx.Int64("load_id", loadID),
		logx.Int64("driver_id", driverID),
		logx.String("status", string(result.Status)),
		logx.String("state", string(result.State)),
	)
	return result, nil
}

// completeInTx finishes the delivery: the SHIPPED phase has no separate
// driver action in this flow, so the final advance lands on DELIVERED
// directly and frees the truck.
func (s *Service) completeInTx(ctx context.Context, tx brokertx.Repository, l *domain.Load) error {
	done, err := tx.CompleteLoad(ctx, l.ID, l.State)
	if err != nil {
		return err
	}
	if !done {
		return apperr.ErrInvalidTransition
	}
	if err := tx.ReleaseTruckByLoad(ctx, l.ID); err != nil {
		return err
	}
	if err := tx.AppendLog(ctx, l.ID, "Load delivered"); err != nil {
		return err
	}

	l.Status = domain.LoadStatusDelivered
	l.State = domain.LoadStateNone
	return nil
}

// ShippingLog returns the load's append-only log for the owning shipper
// or the assigned driver.
func (s *Service) ShippingLog(ctx context.Context, userID int64, role domain.Role, loadID int64) ([]domain.LogEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	l, err := s.repo.Get(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrNotFound
	}
	if err := authorize(l, userID, role); err != nil {
		return nil, err
	}
	return s.repo.Logs(ctx, loadID)
}
