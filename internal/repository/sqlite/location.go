package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stockyard/internal/domain"
	"stockyard/internal/repository"
)

type locationRepository struct {
	s *Store
}

var locationQuery = querySpec{
	columns: map[string]filterColumn{
		"location_id": {"location_id", colExact},
		"vehicle_id":  {"vehicle_id", colExact},
		"side":        {"side", colText},
		"row":         {"row", colNumber},
		"bin":         {"bin", colNumber},
	},
	global: []string{"location_id", "side"},
	sorts: map[string]string{
		"side":       "side, row, bin",
		"row":        "row",
		"bin":        "bin",
		"vehicle_id": "vehicle_id, side, row, bin",
		"created_at": "created_at",
	},
	defaultSort: "vehicle_id, side, row, bin",
}

const locationColumns = `location_id, vehicle_id, side, row, bin,
	created_at, updated_at, last_audited_at`

func scanLocation(scan func(dest ...any) error) (domain.Location, error) {
	var l domain.Location
	var vehicleID, lastAudited sql.NullString
	err := scan(&l.ID, &vehicleID, &l.Side, &l.Row, &l.Bin,
		&l.CreatedAt, &l.UpdatedAt, &lastAudited)
	if err != nil {
		return domain.Location{}, err
	}
	l.VehicleID = nullToString(vehicleID)
	l.LastAuditedAt = nullToString(lastAudited)
	return l, nil
}

func (r *locationRepository) Create(ctx context.Context, nl domain.NewLocation) (*domain.Location, error) {
	if strings.TrimSpace(nl.Side) == "" {
		return nil, fmt.Errorf("%w: side is required", domain.ErrValidation)
	}
	if nl.Row < 0 || nl.Bin < 0 {
		return nil, fmt.Errorf("%w: row and bin must be non-negative", domain.ErrValidation)
	}

	id, err := r.s.AllocateID(ctx)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	now := isoNow()
	_, err = r.s.db.ExecContext(ctx, `
		INSERT INTO locations (
			location_id, vehicle_id, side, row, bin,
			created_at, updated_at, last_audited_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
	`, id, stringToNull(nl.VehicleID), nl.Side, nl.Row, nl.Bin, now, now)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, violation(RuleLocationSlotUnique, err)
		case isForeignKeyViolation(err):
			return nil, violation(RuleLocationVehicleRef, err)
		case isCheckViolation(err):
			return nil, violation(RuleLocationSlotRange, err)
		}
		return nil, fmt.Errorf("create location: %w", err)
	}

	return &domain.Location{
		ID:        id,
		VehicleID: nl.VehicleID,
		Side:      nl.Side,
		Row:       nl.Row,
		Bin:       nl.Bin,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *locationRepository) Get(ctx context.Context, id string) (*domain.Location, error) {
	row := r.s.db.QueryRowContext(ctx,
		"SELECT "+locationColumns+" FROM locations WHERE location_id = ?", id)
	l, err := scanLocation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *locationRepository) Update(ctx context.Context, id string, patch domain.LocationPatch) error {
	if patch.IsZero() {
		return nil
	}

	var sets []string
	var args []any
	if patch.VehicleID != nil {
		sets = append(sets, "vehicle_id = ?")
		args = append(args, stringToNull(*patch.VehicleID))
	}
	if patch.Side != nil {
		sets = append(sets, "side = ?")
		args = append(args, *patch.Side)
	}
	if patch.Row != nil {
		sets = append(sets, "row = ?")
		args = append(args, *patch.Row)
	}
	if patch.Bin != nil {
		sets = append(sets, "bin = ?")
		args = append(args, *patch.Bin)
	}
	if patch.LastAuditedAt != nil {
		sets = append(sets, "last_audited_at = ?")
		args = append(args, stringToNull(*patch.LastAuditedAt))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, isoNow(), id)

	res, err := r.s.db.ExecContext(ctx,
		"UPDATE locations SET "+strings.Join(sets, ", ")+" WHERE location_id = ?", args...)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return violation(RuleLocationSlotUnique, err)
		case isForeignKeyViolation(err):
			return violation(RuleLocationVehicleRef, err)
		case isCheckViolation(err):
			return violation(RuleLocationSlotRange, err)
		}
		return fmt.Errorf("update location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an empty location. The schema's RESTRICT rule rejects
// the delete while inventory items still reference the slot.
func (r *locationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM locations WHERE location_id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return violation(RuleLocationHasItems, err)
		}
		return fmt.Errorf("delete location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *locationRepository) List(ctx context.Context, opts repository.ListOptions) ([]domain.Location, int, error) {
	where, args := locationQuery.whereClause(opts.Filter)

	var total int
	if err := r.s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM locations"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	locations := []domain.Location{}
	if opts.Limit <= 0 {
		return locations, total, nil
	}

	query := "SELECT " + locationColumns + " FROM locations" + where +
		locationQuery.orderClause(opts.Sort, opts.Desc) + " LIMIT ? OFFSET ?"
	rows, err := r.s.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list locations: iterate: %w", err)
	}
	return locations, total, nil
}

func (r *locationRepository) ListForVehicle(ctx context.Context, vehicleID string) ([]domain.Location, error) {
	rows, err := r.s.db.QueryContext(ctx,
		"SELECT "+locationColumns+" FROM locations WHERE vehicle_id = ? ORDER BY side, row, bin",
		vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle locations: %w", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		l, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list vehicle locations: scan row: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicle locations: iterate: %w", err)
	}
	return locations, nil
}
