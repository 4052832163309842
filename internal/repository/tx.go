package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/ports/brokertx"
)

// BrokerRepo runs the engine's multi-entity mutations. Every status or
// state change inside a transaction is a conditional update keyed on
// the expected current value, never a blind write.
type BrokerRepo struct {
	db *pgxpool.Pool
}

// NewBrokerRepo creates a new BrokerRepo.
func NewBrokerRepo(db *pgxpool.Pool) *BrokerRepo {
	return &BrokerRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *BrokerRepo) WithTx(ctx context.Context, fn func(tx brokertx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// rollback on panic before re-raising
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ brokertx.Repository = (*TxRepo)(nil)

// GetLoadForUpdate locks and returns the load, or nil when it does not exist.
func (r *TxRepo) GetLoadForUpdate(ctx context.Context, loadID int64) (*domain.Load, error) {
	l, err := scanLoad(r.tx.QueryRow(ctx,
		`SELECT `+loadColumns+` FROM loads WHERE id=$1 FOR UPDATE`, loadID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock load %d: %w", loadID, err)
	}
	return l, nil
}

// PostLoad transitions the load NEW -> POSTED.
func (r *TxRepo) PostLoad(ctx context.Context, loadID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
		UPDATE loads SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`, loadID, domain.LoadStatusPosted, domain.LoadStatusNew)
	if err != nil {
		return false, fmt.Errorf("post load %d: %w", loadID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// AssignLoad transitions the load POSTED -> ASSIGNED, sets the first
// delivery state and links the driver.
func (r *TxRepo) AssignLoad(ctx context.Context, loadID, driverID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
		UPDATE loads
		SET status = $2, state = $3, assigned_to = $4, updated_at = now()
		WHERE id = $1 AND status = $5
	`, loadID, domain.LoadStatusAssigned, domain.FirstLoadState(), driverID, domain.LoadStatusPosted)
	if err != nil {
		return false, fmt.Errorf("assign load %d: %w", loadID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateLoadState moves the delivery state from the expected current value.
func (r *TxRepo) UpdateLoadState(ctx context.Context, loadID int64, from, to domain.LoadState) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
		UPDATE loads SET state = $2, updated_at = now()
		WHERE id = $1 AND status = $3 AND state = $4
	`, loadID, to, domain.LoadStatusAssigned, from)
	if err != nil {
		return false, fmt.Errorf("update load %d state: %w", loadID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// CompleteLoad finishes the load: status DELIVERED, state cleared.
func (r *TxRepo) CompleteLoad(ctx context.Context, loadID int64, from domain.LoadState) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
		UPDATE loads SET status = $2, state = NULL, updated_at = now()
		WHERE id = $1 AND status = $3 AND state = $4
	`, loadID, domain.LoadStatusDelivered, domain.LoadStatusAssigned, from)
	if err != nil {
		return false, fmt.Errorf("complete load %d: %w", loadID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// AppendLog appends one entry to the load's shipping log.
func (r *TxRepo) AppendLog(ctx context.Context, loadID int64, message string) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO load_logs (load_id, message) VALUES ($1, $2)`, loadID, message)
	if err != nil {
		return fmt.Errorf("append log for load %d: %w", loadID, err)
	}
	return nil
}

// ReserveTruck claims a FREE truck for the load. The conditional update
// is the compare-and-swap that prevents double booking under races.
func (r *TxRepo) ReserveTruck(ctx context.Context, truckID, loadID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
		UPDATE trucks SET status = $2, load_id = $3, updated_at = now()
		WHERE id = $1 AND status = $4
	`, truckID, domain.TruckStatusAssigned, loadID, domain.TruckStatusFree)
	if err != nil {
		return false, fmt.Errorf("reserve truck %d: %w", truckID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseTruckByLoad frees the truck reserved for the load; idempotent.
func (r *TxRepo) ReleaseTruckByLoad(ctx context.Context, loadID int64) error {
	_, err := r.tx.Exec(ctx, `
		UPDATE trucks SET status = $2, load_id = NULL, updated_at = now()
		WHERE load_id = $1
	`, loadID, domain.TruckStatusFree)
	if err != nil {
		return fmt.Errorf("release truck for load %d: %w", loadID, err)
	}
	return nil
}

// MarkTruckOnRoute moves the load's reserved truck ASSIGNED -> ON_ROUTE.
func (r *TxRepo) MarkTruckOnRoute(ctx context.Context, loadID int64) error {
	_, err := r.tx.Exec(ctx, `
		UPDATE trucks SET status = $2, updated_at = now()
		WHERE load_id = $1 AND status = $3
	`, loadID, domain.TruckStatusOnRoute, domain.TruckStatusAssigned)
	if err != nil {
		return fmt.Errorf("mark truck on route for load %d: %w", loadID, err)
	}
	return nil
}

// ActivateTruck makes the truck the driver's active rig. The activation
// itself is keyed on status FREE; a truck mid-assignment loses the race.
func (r *TxRepo) ActivateTruck(ctx context.Context, driverID, truckID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
		UPDATE trucks SET active = true, updated_at = now()
		WHERE id = $1 AND created_by = $2 AND status = $3
	`, truckID, driverID, domain.TruckStatusFree)
	if err != nil {
		return false, fmt.Errorf("activate truck %d: %w", truckID, err)
	}
	if ct.RowsAffected() == 0 {
		return false, nil
	}

	_, err = r.tx.Exec(ctx, `
		UPDATE trucks SET active = false, updated_at = now()
		WHERE created_by = $1 AND active AND id <> $2
	`, driverID, truckID)
	if err != nil {
		return false, fmt.Errorf("deactivate fleet of driver %d: %w", driverID, err)
	}
	return true, nil
}
