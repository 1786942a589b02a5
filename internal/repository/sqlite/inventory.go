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

type inventoryRepository struct {
	s *Store
}

var inventoryQuery = querySpec{
	columns: map[string]filterColumn{
		"asset_id":      {"asset_id", colExact},
		"location_id":   {"location_id", colExact},
		"description":   {"description", colText},
		"consumable":    {"consumable", colBool},
		"manufacturer":  {"manufacturer", colText},
		"model":         {"model", colText},
		"serial_number": {"serial_number", colText},
	},
	global: []string{
		"asset_id", "description", "manufacturer", "model",
		"serial_number", "location_id",
	},
	sorts: map[string]string{
		"description": "description",
		"asset_id":    "asset_id",
		"location_id": "location_id",
		"created_at":  "created_at",
	},
	defaultSort: "description",
}

// inventoryViewQuery covers the joined display listing; column
// expressions carry table prefixes because three tables participate.
var inventoryViewQuery = querySpec{
	columns: map[string]filterColumn{
		"asset_id":        {"inv.asset_id", colExact},
		"location_id":     {"inv.location_id", colExact},
		"description":     {"inv.description", colText},
		"consumable":      {"inv.consumable", colBool},
		"manufacturer":    {"inv.manufacturer", colText},
		"model":           {"inv.model", colText},
		"serial_number":   {"inv.serial_number", colText},
		"vehicle_name":    {"veh.vehicle_name", colText},
		"vehicle_type":    {"veh.vehicle_type", colText},
		"side":            {"loc.side", colText},
		"row":             {"loc.row", colNumber},
		"bin":             {"loc.bin", colNumber},
		"last_audited_at": {"loc.last_audited_at", colText},
	},
	global: []string{
		"inv.asset_id", "inv.location_id", "inv.description",
		"inv.manufacturer", "inv.model", "inv.serial_number",
		"veh.vehicle_name", "veh.vehicle_type", "loc.side",
	},
	sorts: map[string]string{
		"description":     "inv.description",
		"asset_id":        "inv.asset_id",
		"location_id":     "inv.location_id",
		"vehicle_name":    "veh.vehicle_name",
		"vehicle_type":    "veh.vehicle_type",
		"side":            "loc.side, loc.row, loc.bin",
		"row":             "loc.row",
		"bin":             "loc.bin",
		"last_audited_at": "loc.last_audited_at",
	},
	defaultSort: "inv.description",
}

const inventoryColumns = `asset_id, description, location_id, consumable,
	manufacturer, model, serial_number, created_at, updated_at`

const inventoryViewFrom = `
	FROM inventory AS inv
	JOIN locations AS loc ON inv.location_id = loc.location_id
	LEFT JOIN vehicles AS veh ON loc.vehicle_id = veh.vehicle_id`

func scanInventoryItem(scan func(dest ...any) error) (domain.InventoryItem, error) {
	var it domain.InventoryItem
	var consumable int
	var manufacturer, model, serial sql.NullString
	err := scan(&it.ID, &it.Description, &it.LocationID, &consumable,
		&manufacturer, &model, &serial, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	it.Consumable = consumable != 0
	it.Manufacturer = nullToString(manufacturer)
	it.Model = nullToString(model)
	it.SerialNumber = nullToString(serial)
	return it, nil
}

func (r *inventoryRepository) Create(ctx context.Context, ni domain.NewInventoryItem) (*domain.InventoryItem, error) {
	if strings.TrimSpace(ni.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if strings.TrimSpace(ni.LocationID) == "" {
		return nil, fmt.Errorf("%w: location id is required", domain.ErrValidation)
	}

	id, err := r.s.AllocateID(ctx)
	if err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}

	now := isoNow()
	_, err = r.s.db.ExecContext(ctx, `
		INSERT INTO inventory (
			asset_id, description, location_id, consumable,
			manufacturer, model, serial_number, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, ni.Description, ni.LocationID, boolToInt(ni.Consumable),
		stringToNull(ni.Manufacturer), stringToNull(ni.Model),
		stringToNull(ni.SerialNumber), now, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, violation(RuleInventoryLocation, err)
		}
		return nil, fmt.Errorf("create inventory item: %w", err)
	}

	return &domain.InventoryItem{
		ID:           id,
		Description:  ni.Description,
		LocationID:   ni.LocationID,
		Consumable:   ni.Consumable,
		Manufacturer: ni.Manufacturer,
		Model:        ni.Model,
		SerialNumber: ni.SerialNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *inventoryRepository) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	row := r.s.db.QueryRowContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE asset_id = ?", id)
	it, err := scanInventoryItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

func (r *inventoryRepository) Update(ctx context.Context, id string, patch domain.InventoryPatch) error {
	if patch.IsZero() {
		return nil
	}

	var sets []string
	var args []any
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.LocationID != nil {
		sets = append(sets, "location_id = ?")
		args = append(args, *patch.LocationID)
	}
	if patch.Consumable != nil {
		sets = append(sets, "consumable = ?")
		args = append(args, boolToInt(*patch.Consumable))
	}
	if patch.Manufacturer != nil {
		sets = append(sets, "manufacturer = ?")
		args = append(args, stringToNull(*patch.Manufacturer))
	}
	if patch.Model != nil {
		sets = append(sets, "model = ?")
		args = append(args, stringToNull(*patch.Model))
	}
	if patch.SerialNumber != nil {
		sets = append(sets, "serial_number = ?")
		args = append(args, stringToNull(*patch.SerialNumber))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, isoNow(), id)

	res, err := r.s.db.ExecContext(ctx,
		"UPDATE inventory SET "+strings.Join(sets, ", ")+" WHERE asset_id = ?", args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return violation(RuleInventoryLocation, err)
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the item; its audit trail goes with it via the
// schema's cascade rule.
func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM inventory WHERE asset_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) List(ctx context.Context, opts repository.ListOptions) ([]domain.InventoryItem, int, error) {
	where, args := inventoryQuery.whereClause(opts.Filter)

	var total int
	if err := r.s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inventory"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}

	items := []domain.InventoryItem{}
	if opts.Limit <= 0 {
		return items, total, nil
	}

	query := "SELECT " + inventoryColumns + " FROM inventory" + where +
		inventoryQuery.orderClause(opts.Sort, opts.Desc) + " LIMIT ? OFFSET ?"
	rows, err := r.s.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanInventoryItem(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("list inventory: scan row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list inventory: iterate: %w", err)
	}
	return items, total, nil
}

func (r *inventoryRepository) ListByLocation(ctx context.Context, locationID string) ([]domain.InventoryItem, error) {
	rows, err := r.s.db.QueryContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE location_id = ? ORDER BY description",
		locationID)
	if err != nil {
		return nil, fmt.Errorf("list location inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		it, err := scanInventoryItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list location inventory: scan row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list location inventory: iterate: %w", err)
	}
	return items, nil
}

// ListView queries the three tables directly, so rows always reflect
// the committed state at read time rather than any cached join.
func (r *inventoryRepository) ListView(ctx context.Context, opts repository.ListOptions) ([]domain.InventoryView, int, error) {
	where, args := inventoryViewQuery.whereClause(opts.Filter)

	var total int
	if err := r.s.db.QueryRowContext(ctx,
		"SELECT COUNT(*)"+inventoryViewFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory view: %w", err)
	}

	views := []domain.InventoryView{}
	if opts.Limit <= 0 {
		return views, total, nil
	}

	query := `
		SELECT inv.asset_id, inv.location_id, inv.description, inv.consumable,
		       inv.manufacturer, inv.model, inv.serial_number,
		       veh.vehicle_name, veh.vehicle_type,
		       loc.side, loc.row, loc.bin, loc.last_audited_at` +
		inventoryViewFrom + where +
		inventoryViewQuery.orderClause(opts.Sort, opts.Desc) + " LIMIT ? OFFSET ?"
	rows, err := r.s.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory view: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.InventoryView
		var consumable int
		var manufacturer, model, serial sql.NullString
		var vehicleName, vehicleType, lastAudited sql.NullString
		if err := rows.Scan(&v.AssetID, &v.LocationID, &v.Description, &consumable,
			&manufacturer, &model, &serial,
			&vehicleName, &vehicleType,
			&v.Side, &v.Row, &v.Bin, &lastAudited); err != nil {
			return nil, 0, fmt.Errorf("list inventory view: scan row: %w", err)
		}
		v.Consumable = consumable != 0
		v.Manufacturer = nullToString(manufacturer)
		v.Model = nullToString(model)
		v.SerialNumber = nullToString(serial)
		v.VehicleName = nullToString(vehicleName)
		v.VehicleType = domain.VehicleType(nullToString(vehicleType))
		v.LastAuditedAt = nullToString(lastAudited)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list inventory view: iterate: %w", err)
	}
	return views, total, nil
}
