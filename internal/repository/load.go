package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freight-broker-service/internal/domain"
)

const loadColumns = `id, created_by, assigned_to, status, state, name, description,
	width, length, height, payload,
	pickup_city, pickup_street, pickup_zip,
	delivery_city, delivery_street, delivery_zip`

// LoadRepo represents load repository.
type LoadRepo struct{ db *pgxpool.Pool }

// NewLoadRepo creates a new LoadRepo.
func NewLoadRepo(db *pgxpool.Pool) *LoadRepo { return &LoadRepo{db: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoad(row rowScanner) (*domain.Load, error) {
	var (
		l     domain.Load
		state *string
	)
	err := row.Scan(
		&l.ID, &l.CreatedBy, &l.AssignedTo, &l.Status, &state, &l.Name, &l.Description,
		&l.Dimensions.Width, &l.Dimensions.Length, &l.Dimensions.Height, &l.Payload,
		&l.PickUpAddress.City, &l.PickUpAddress.Street, &l.PickUpAddress.Zip,
		&l.DeliveryAddress.City, &l.DeliveryAddress.Street, &l.DeliveryAddress.Zip,
	)
	if err != nil {
		return nil, err
	}
	if state != nil {
		l.State = domain.LoadState(*state)
	}
	return &l, nil
}

// Get returns a load by its ID, or nil when it does not exist.
func (r *LoadRepo) Get(ctx context.Context, id int64) (*domain.Load, error) {
	l, err := scanLoad(r.db.QueryRow(ctx,
		`SELECT `+loadColumns+` FROM loads WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get load %d: %w", id, err)
	}
	return l, nil
}

// Create persists a new load and returns its generated ID.
func (r *LoadRepo) Create(ctx context.Context, l *domain.Load) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO loads (
			created_by, status, name, description,
			width, length, height, payload,
			pickup_city, pickup_street, pickup_zip,
			delivery_city, delivery_street, delivery_zip
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id`,
		l.CreatedBy, l.Status, l.Name, l.Description,
		l.Dimensions.Width, l.Dimensions.Length, l.Dimensions.Height, l.Payload,
		l.PickUpAddress.City, l.PickUpAddress.Street, l.PickUpAddress.Zip,
		l.DeliveryAddress.City, l.DeliveryAddress.Street, l.DeliveryAddress.Zip,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create load: %w", err)
	}
	return id, nil
}

// ListByShipper returns the shipper's loads ordered by id, optionally
// filtered by status. If limit/offset are nil, returns the full list.
func (r *LoadRepo) ListByShipper(ctx context.Context, shipperID int64, status *domain.LoadStatus, limit, offset *int) ([]domain.Load, error) {
	q := `SELECT ` + loadColumns + ` FROM loads WHERE created_by=$1`
	args := []any{shipperID}
	if status != nil {
		q += fmt.Sprintf(" AND status=$%d", len(args)+1)
		args = append(args, *status)
	}
	q += " ORDER BY id"
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list loads for shipper %d: %w", shipperID, err)
	}
	defer rows.Close()
	return collectLoads(rows)
}

// ActiveByDriver returns the driver's currently assigned load, or nil.
func (r *LoadRepo) ActiveByDriver(ctx context.Context, driverID int64) (*domain.Load, error) {
	l, err := scanLoad(r.db.QueryRow(ctx,
		`SELECT `+loadColumns+` FROM loads WHERE assigned_to=$1 AND status=$2`,
		driverID, domain.LoadStatusAssigned))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("active load for driver %d: %w", driverID, err)
	}
	return l, nil
}

// ListPosted returns every load currently waiting for a driver.
func (r *LoadRepo) ListPosted(ctx context.Context) ([]domain.Load, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+loadColumns+` FROM loads WHERE status=$1 ORDER BY id`,
		domain.LoadStatusPosted)
	if err != nil {
		return nil, fmt.Errorf("list posted loads: %w", err)
	}
	defer rows.Close()
	return collectLoads(rows)
}

func collectLoads(rows pgx.Rows) ([]domain.Load, error) {
	out := make([]domain.Load, 0)
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// UpdatePartial applies a partial update to a load. The update is keyed
// on status NEW so an edit can never hit a load already in matching.
// Returns true if a row was affected.
func (r *LoadRepo) UpdatePartial(ctx context.Context, u domain.PartialLoadUpdate) (bool, error) {
	var (
		width, length, height *float64
		pCity, pStreet, pZip  *string
		dCity, dStreet, dZip  *string
	)
	if u.Dimensions != nil {
		width, length, height = &u.Dimensions.Width, &u.Dimensions.Length, &u.Dimensions.Height
	}
	if u.PickUpAddress != nil {
		pCity, pStreet, pZip = &u.PickUpAddress.City, &u.PickUpAddress.Street, &u.PickUpAddress.Zip
	}
	if u.DeliveryAddress != nil {
		dCity, dStreet, dZip = &u.DeliveryAddress.City, &u.DeliveryAddress.Street, &u.DeliveryAddress.Zip
	}

	ct, err := r.db.Exec(ctx, `
		UPDATE loads
		SET
			name            = COALESCE($2, name),
			description     = COALESCE($3, description),
			width           = COALESCE($4, width),
			length          = COALESCE($5, length),
			height          = COALESCE($6, height),
			payload         = COALESCE($7, payload),
			pickup_city     = COALESCE($8, pickup_city),
			pickup_street   = COALESCE($9, pickup_street),
			pickup_zip      = COALESCE($10, pickup_zip),
			delivery_city   = COALESCE($11, delivery_city),
			delivery_street = COALESCE($12, delivery_street),
			delivery_zip    = COALESCE($13, delivery_zip),
			updated_at      = now()
		WHERE id = $1 AND status = $14
	`, u.ID, u.Name, u.Description, width, length, height, u.Payload,
		pCity, pStreet, pZip, dCity, dStreet, dZip, domain.LoadStatusNew)
	if err != nil {
		return false, fmt.Errorf("update load %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes a load that has no active assignment (status NEW or
// POSTED). Returns true if a row was deleted.
func (r *LoadRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM loads WHERE id=$1 AND status IN ($2,$3)`,
		id, domain.LoadStatusNew, domain.LoadStatusPosted)
	if err != nil {
		return false, fmt.Errorf("delete load %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Logs returns the load's shipping log in insertion order.
func (r *LoadRepo) Logs(ctx context.Context, loadID int64) ([]domain.LogEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT message, created_at FROM load_logs WHERE load_id=$1 ORDER BY id`, loadID)
	if err != nil {
		return nil, fmt.Errorf("logs for load %d: %w", loadID, err)
	}
	defer rows.Close()

	out := make([]domain.LogEntry, 0)
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.Message, &e.Time); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
