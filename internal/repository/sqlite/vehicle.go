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

type vehicleRepository struct {
	s *Store
}

var vehicleQuery = querySpec{
	columns: map[string]filterColumn{
		"vehicle_id":     {"vehicle_id", colExact},
		"vehicle_type":   {"vehicle_type", colText},
		"vehicle_name":   {"vehicle_name", colText},
		"vin":            {"vin", colText},
		"vehicle_number": {"vehicle_number", colNumber},
	},
	global:      []string{"vehicle_name", "vin", "vehicle_type"},
	sorts: map[string]string{
		"vehicle_name":   "vehicle_name",
		"vehicle_number": "vehicle_number",
		"vehicle_type":   "vehicle_type",
		"mileage":        "mileage",
		"created_at":     "created_at",
	},
	defaultSort: "vehicle_name",
}

const vehicleColumns = `vehicle_id, vehicle_type, vehicle_name, vin,
	vehicle_number, mileage, last_service, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, nv domain.NewVehicle) (*domain.Vehicle, error) {
	if strings.TrimSpace(nv.Name) == "" {
		return nil, fmt.Errorf("%w: vehicle name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(nv.VIN) == "" {
		return nil, fmt.Errorf("%w: vin is required", domain.ErrValidation)
	}

	id, err := r.s.AllocateID(ctx)
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	now := isoNow()
	_, err = r.s.db.ExecContext(ctx, `
		INSERT INTO vehicles (
			vehicle_id, vehicle_type, vehicle_name, vin, vehicle_number,
			mileage, last_service, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, string(nv.Type), nv.Name, nv.VIN, nv.Number, nv.Mileage, nv.LastService, now, now)
	if err != nil {
		if isCheckViolation(err) {
			return nil, violation(RuleVehicleTypeEnum, err)
		}
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	return &domain.Vehicle{
		ID:          id,
		Type:        nv.Type,
		Name:        nv.Name,
		VIN:         nv.VIN,
		Number:      nv.Number,
		Mileage:     nv.Mileage,
		LastService: nv.LastService,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *vehicleRepository) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var vtype string
	err := r.s.db.QueryRowContext(ctx, `
		SELECT `+vehicleColumns+` FROM vehicles WHERE vehicle_id = ?
	`, id).Scan(&v.ID, &vtype, &v.Name, &v.VIN, &v.Number, &v.Mileage,
		&v.LastService, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	v.Type = domain.VehicleType(vtype)
	return &v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id string, patch domain.VehiclePatch) error {
	if patch.IsZero() {
		return nil
	}

	var sets []string
	var args []any
	if patch.Type != nil {
		sets = append(sets, "vehicle_type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.Name != nil {
		sets = append(sets, "vehicle_name = ?")
		args = append(args, *patch.Name)
	}
	if patch.VIN != nil {
		sets = append(sets, "vin = ?")
		args = append(args, *patch.VIN)
	}
	if patch.Number != nil {
		sets = append(sets, "vehicle_number = ?")
		args = append(args, *patch.Number)
	}
	if patch.Mileage != nil {
		sets = append(sets, "mileage = ?")
		args = append(args, *patch.Mileage)
	}
	if patch.LastService != nil {
		sets = append(sets, "last_service = ?")
		args = append(args, *patch.LastService)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, isoNow(), id)

	res, err := r.s.db.ExecContext(ctx,
		"UPDATE vehicles SET "+strings.Join(sets, ", ")+" WHERE vehicle_id = ?", args...)
	if err != nil {
		if isCheckViolation(err) {
			return violation(RuleVehicleTypeEnum, err)
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the vehicle. Its locations survive with their vehicle
// reference cleared by the schema's SET NULL rule.
func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE vehicle_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, opts repository.ListOptions) ([]domain.Vehicle, int, error) {
	where, args := vehicleQuery.whereClause(opts.Filter)

	var total int
	if err := r.s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vehicles"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	vehicles := []domain.Vehicle{}
	if opts.Limit <= 0 {
		return vehicles, total, nil
	}

	query := "SELECT " + vehicleColumns + " FROM vehicles" + where +
		vehicleQuery.orderClause(opts.Sort, opts.Desc) + " LIMIT ? OFFSET ?"
	rows, err := r.s.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Vehicle
		var vtype string
		if err := rows.Scan(&v.ID, &vtype, &v.Name, &v.VIN, &v.Number,
			&v.Mileage, &v.LastService, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		v.Type = domain.VehicleType(vtype)
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list vehicles: iterate: %w", err)
	}
	return vehicles, total, nil
}

func (r *vehicleRepository) Overview(ctx context.Context) ([]domain.VehicleOverview, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT v.vehicle_id, v.vehicle_type, v.vehicle_name, v.vin,
		       v.vehicle_number, v.mileage, v.last_service,
		       v.created_at, v.updated_at,
		       COALESCE(COUNT(inv.asset_id), 0) AS items_stored_count
		FROM vehicles AS v
		LEFT JOIN locations AS loc ON loc.vehicle_id = v.vehicle_id
		LEFT JOIN inventory AS inv ON inv.location_id = loc.location_id
		GROUP BY v.vehicle_id
		ORDER BY v.vehicle_name
	`)
	if err != nil {
		return nil, fmt.Errorf("vehicle overview: %w", err)
	}
	defer rows.Close()

	overviews := []domain.VehicleOverview{}
	for rows.Next() {
		var o domain.VehicleOverview
		var vtype string
		if err := rows.Scan(&o.ID, &vtype, &o.Name, &o.VIN, &o.Number,
			&o.Mileage, &o.LastService, &o.CreatedAt, &o.UpdatedAt, &o.ItemCount); err != nil {
			return nil, fmt.Errorf("vehicle overview: scan row: %w", err)
		}
		o.Type = domain.VehicleType(vtype)
		overviews = append(overviews, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vehicle overview: iterate: %w", err)
	}
	return overviews, nil
}
