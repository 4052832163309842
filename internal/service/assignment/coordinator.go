package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-broker-service/internal/apperr"
	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/logx"
	"freight-broker-service/internal/ports/brokertx"
	"freight-broker-service/internal/service/matching"
)

// Coordinator performs the system's only multi-entity transactional
// operation: matching a POSTED load to a driver's truck. Per candidate
// truck it runs one transaction that reserves the truck and assigns the
// load; losing the reservation race moves on to the next candidate, and
// a rollback can never leave a truck reserved without an assigned load.
type Coordinator struct {
	loads            loadSource
	trucks           truckSource
	tx               brokertx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
	assigned         counter
	noDriver         counter
}

// NewCoordinator creates and configures an assignment Coordinator.
// The counters may be nil.
func NewCoordinator(loads loadSource, trucks truckSource, tx brokertx.Runner, timeout time.Duration, logger logx.Logger, assigned, noDriver counter) *Coordinator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Coordinator{
		loads:            loads,
		trucks:           trucks,
		tx:               tx,
		operationTimeout: timeout,
		logger:           logger,
		assigned:         assigned,
		noDriver:         noDriver,
	}
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.operationTimeout)
}

// Assign matches the POSTED load to the smallest sufficient free truck.
// It returns nil without error when no driver is available; the load
// then stays POSTED untouched.
func (c *Coordinator) Assign(ctx context.Context, loadID int64) (*domain.Assignment, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	l, err := c.loads.Get(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrNotFound
	}
	if l.Status != domain.LoadStatusPosted {
		return nil, apperr.ErrInvalidTransition
	}

	pool, err := c.trucks.ListMatchable(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := matching.EligibleTrucks(l, pool)
	if err != nil {
		return nil, err
	}

	for _, t := range candidates {
		res, err := c.tryAssign(ctx, loadID, t)
		switch {
		case err == nil:
			c.inc(c.assigned)
			c.logger.Info("load assigned",
				logx.String("event", "load_assigned"),
				logx.Int64("load_id", loadID),
				logx.Int64("driver_id", res.DriverID),
				logx.Int64("truck_id", res.TruckID),
				logx.String("truck_type", string(res.TruckType)),
			)
			return res, nil
		case errors.Is(err, apperr.ErrTruckUnavailable):
			// reservation race lost, try the next candidate
			continue
		default:
			return nil, err
		}
	}

	c.inc(c.noDriver)
	c.logger.Info("no driver available",
		logx.String("event", "no_driver_available"),
		logx.Int64("load_id", loadID),
		logx.Int("candidates", len(candidates)),
	)
	return nil, nil
}

// tryAssign claims one candidate truck and commits the compound state
// change. Both mutations are conditional updates, so two racing calls
// for the same load or truck cannot both succeed.
func (c *Coordinator) tryAssign(ctx context.Context, loadID int64, t domain.Truck) (*domain.Assignment, error) {
	err := c.tx.WithTx(ctx, func(tx brokertx.Repository) error {
		reserved, err := tx.ReserveTruck(ctx, t.ID, loadID)
		if err != nil {
			return err
		}
		if !reserved {
			return apperr.ErrTruckUnavailable
		}

		assigned, err := tx.AssignLoad(ctx, loadID, t.CreatedBy)
		if err != nil {
			return err
		}
		if !assigned {
			// the load left POSTED under us; rollback frees the truck
			return apperr.ErrInvalidTransition
		}

		return tx.AppendLog(ctx, loadID, fmt.Sprintf("Assigned to driver %d", t.CreatedBy))
	})
	if err != nil {
		return nil, err
	}
	return &domain.Assignment{
		LoadID:    loadID,
		DriverID:  t.CreatedBy,
		TruckID:   t.ID,
		TruckType: t.Type,
	}, nil
}

// RematchPosted retries assignment for every load waiting in POSTED.
// Used by the background worker when trucks free up. Returns the number
// of loads assigned.
func (c *Coordinator) RematchPosted(ctx context.Context) (int, error) {
	posted, err := c.loads.ListPosted(ctx)
	if err != nil {
		return 0, err
	}

	matched := 0
	for _, l := range posted {
		res, err := c.Assign(ctx, l.ID)
		switch {
		case err == nil:
			if res != nil {
				matched++
			}
		case errors.Is(err, apperr.ErrInvalidTransition), errors.Is(err, apperr.ErrNotFound):
			// the load moved on or was deleted since the listing; skip
			continue
		default:
			return matched, err
		}
	}
	return matched, nil
}

func (c *Coordinator) inc(cnt counter) {
	if cnt != nil {
		cnt.Inc()
	}
}
