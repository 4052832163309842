package brokertx

import (
	"context"

	"freight-broker-service/internal/domain"
)

// Repository is the set of storage operations available inside a broker
// transaction. Every mutation keyed on a current status or state is a
// conditional update: it reports false instead of writing when the
// precondition no longer holds.
type Repository interface {
	// GetLoadForUpdate locks and returns the load, or nil when it does not exist.
	GetLoadForUpdate(ctx context.Context, loadID int64) (*domain.Load, error)
	// PostLoad transitions the load NEW -> POSTED.
	PostLoad(ctx context.Context, loadID int64) (bool, error)
	// AssignLoad transitions the load POSTED -> ASSIGNED, sets the first
	// delivery state and links the driver.
	AssignLoad(ctx context.Context, loadID, driverID int64) (bool, error)
	// UpdateLoadState moves the delivery state from the expected current
	// value to the next one.
	UpdateLoadState(ctx context.Context, loadID int64, from, to domain.LoadState) (bool, error)
	// CompleteLoad finishes the load from the expected delivery state:
	// status becomes DELIVERED and the state is cleared.
	CompleteLoad(ctx context.Context, loadID int64, from domain.LoadState) (bool, error)
	// AppendLog appends one entry to the load's shipping log.
	AppendLog(ctx context.Context, loadID int64, message string) error
	// ReserveTruck claims a FREE truck for the load (FREE -> ASSIGNED).
	ReserveTruck(ctx context.Context, truckID, loadID int64) (bool, error)
	// ReleaseTruckByLoad frees the truck reserved for the load; idempotent.
	ReleaseTruckByLoad(ctx context.Context, loadID int64) error
	// MarkTruckOnRoute moves the load's reserved truck ASSIGNED -> ON_ROUTE.
	MarkTruckOnRoute(ctx context.Context, loadID int64) error
	// ActivateTruck makes the truck the driver's active rig and
	// deactivates the rest of the driver's fleet. Reports false when the
	// truck is not FREE anymore.
	ActivateTruck(ctx context.Context, driverID, truckID int64) (bool, error)
}

// Runner executes a function within a single storage transaction.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
