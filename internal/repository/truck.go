package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freight-broker-service/internal/domain"
)

const truckColumns = `id, created_by, name, type, status, active, load_id`

// TruckRepo represents truck repository.
type TruckRepo struct{ db *pgxpool.Pool }

// NewTruckRepo creates a new TruckRepo.
func NewTruckRepo(db *pgxpool.Pool) *TruckRepo { return &TruckRepo{db: db} }

func scanTruck(row rowScanner) (*domain.Truck, error) {
	var t domain.Truck
	err := row.Scan(&t.ID, &t.CreatedBy, &t.Name, &t.Type, &t.Status, &t.Active, &t.LoadID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Get returns a truck by its ID, or nil when it does not exist.
func (r *TruckRepo) Get(ctx context.Context, id int64) (*domain.Truck, error) {
	t, err := scanTruck(r.db.QueryRow(ctx,
		`SELECT `+truckColumns+` FROM trucks WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get truck %d: %w", id, err)
	}
	return t, nil
}

// Create persists a new truck and returns its generated ID.
func (r *TruckRepo) Create(ctx context.Context, t *domain.Truck) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO trucks (created_by, name, type, status, active)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		t.CreatedBy, t.Name, t.Type, t.Status, t.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create truck: %w", err)
	}
	return id, nil
}

// ListByDriver returns the driver's trucks ordered by id.
func (r *TruckRepo) ListByDriver(ctx context.Context, driverID int64) ([]domain.Truck, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+truckColumns+` FROM trucks WHERE created_by=$1 ORDER BY id`, driverID)
	if err != nil {
		return nil, fmt.Errorf("list trucks for driver %d: %w", driverID, err)
	}
	defer rows.Close()
	return collectTrucks(rows)
}

// ListMatchable returns a consistent snapshot of trucks available for
// assignment: FREE, activated by their driver, and the driver has no
// load in progress.
func (r *TruckRepo) ListMatchable(ctx context.Context) ([]domain.Truck, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+truckColumns+`
		FROM trucks t
		WHERE t.status = $1
		  AND t.active
		  AND NOT EXISTS (
			SELECT 1 FROM loads l
			WHERE l.assigned_to = t.created_by AND l.status IN ($2,$3)
		  )
		ORDER BY t.id`,
		domain.TruckStatusFree, domain.LoadStatusAssigned, domain.LoadStatusShipped)
	if err != nil {
		return nil, fmt.Errorf("list matchable trucks: %w", err)
	}
	defer rows.Close()
	return collectTrucks(rows)
}

func collectTrucks(rows pgx.Rows) ([]domain.Truck, error) {
	out := make([]domain.Truck, 0)
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdatePartial applies a partial update to a truck. Only FREE trucks
// may be edited. Returns true if a row was affected.
func (r *TruckRepo) UpdatePartial(ctx context.Context, u domain.PartialTruckUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE trucks
		SET name = COALESCE($2, name), updated_at = now()
		WHERE id = $1 AND status = $3
	`, u.ID, u.Name, domain.TruckStatusFree)
	if err != nil {
		return false, fmt.Errorf("update truck %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes a FREE truck. Returns true if a row was deleted.
func (r *TruckRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM trucks WHERE id=$1 AND status=$2`, id, domain.TruckStatusFree)
	if err != nil {
		return false, fmt.Errorf("delete truck %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
