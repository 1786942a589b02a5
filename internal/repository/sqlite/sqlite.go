package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"stockyard/internal/repository"

	_ "modernc.org/sqlite"
)

// Store owns the SQLite database file and exposes one repository per
// entity kind. All writes go through the repositories; the backup
// scheduler reads the same file through its own connection and relies
// on WAL snapshot isolation, never on this pool.
type Store struct {
	db   *sql.DB
	path string

	Vehicles  repository.VehicleRepository
	Locations repository.LocationRepository
	Inventory repository.InventoryRepository
	Audits    repository.AuditRepository
}

// Open opens (creating if necessary) the store at path and initializes
// the schema. Initialization is idempotent: opening an existing store
// leaves its data untouched.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open store: create parent dir: %w", err)
		}
	}

	// _pragma DSN parameters apply to every pooled connection.
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(4)

	store := &Store{db: db, path: path}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store: migrate: %w", err)
	}

	store.Vehicles = &vehicleRepository{s: store}
	store.Locations = &locationRepository{s: store}
	store.Inventory = &inventoryRepository{s: store}
	store.Audits = &auditRepository{s: store}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS global_ids (
		id TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id     TEXT PRIMARY KEY,
		vehicle_type   TEXT NOT NULL CHECK (vehicle_type IN ('Truck', 'Trailer')),
		vehicle_name   TEXT NOT NULL,
		vin            TEXT NOT NULL,
		vehicle_number INTEGER NOT NULL DEFAULT 0,
		mileage        INTEGER NOT NULL DEFAULT 0,
		last_service   INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_vehicles_type ON vehicles (vehicle_type);
	CREATE INDEX IF NOT EXISTS idx_vehicles_number ON vehicles (vehicle_number);
	CREATE INDEX IF NOT EXISTS idx_vehicles_vin ON vehicles (vin);

	CREATE TABLE IF NOT EXISTS locations (
		location_id     TEXT PRIMARY KEY,
		vehicle_id      TEXT,
		side            TEXT NOT NULL,
		row             INTEGER NOT NULL CHECK (row >= 0),
		bin             INTEGER NOT NULL CHECK (bin >= 0),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		last_audited_at TEXT,

		FOREIGN KEY (vehicle_id) REFERENCES vehicles(vehicle_id)
			ON UPDATE CASCADE
			ON DELETE SET NULL,

		CONSTRAINT uq_locations_slot UNIQUE (vehicle_id, side, row, bin)
	);

	-- SQLite treats NULLs as distinct in UNIQUE constraints, so the
	-- tuple constraint above cannot catch two unassigned locations
	-- sharing a slot. This partial index closes that gap.
	CREATE UNIQUE INDEX IF NOT EXISTS uq_locations_unassigned_slot
		ON locations (side, row, bin) WHERE vehicle_id IS NULL;

	CREATE INDEX IF NOT EXISTS idx_locations_vehicle ON locations (vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_locations_slot ON locations (side, row, bin);

	CREATE TABLE IF NOT EXISTS inventory (
		asset_id      TEXT PRIMARY KEY,
		description   TEXT NOT NULL,
		location_id   TEXT NOT NULL,
		consumable    INTEGER NOT NULL DEFAULT 0,
		manufacturer  TEXT,
		model         TEXT,
		serial_number TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,

		FOREIGN KEY (location_id) REFERENCES locations(location_id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT
	);

	CREATE INDEX IF NOT EXISTS idx_inventory_location ON inventory (location_id);
	CREATE INDEX IF NOT EXISTS idx_inventory_description ON inventory (description);
	CREATE INDEX IF NOT EXISTS idx_inventory_manufacturer ON inventory (manufacturer);
	CREATE INDEX IF NOT EXISTS idx_inventory_model ON inventory (model);
	CREATE INDEX IF NOT EXISTS idx_inventory_serial ON inventory (serial_number);

	CREATE TABLE IF NOT EXISTS inventory_audit (
		audit_id         INTEGER PRIMARY KEY AUTOINCREMENT,
		asset_id         TEXT NOT NULL,
		from_location_id TEXT,
		to_location_id   TEXT,
		action           TEXT NOT NULL,
		notes            TEXT,
		audited_at       TEXT NOT NULL,
		user             TEXT,

		FOREIGN KEY (asset_id) REFERENCES inventory(asset_id)
			ON UPDATE CASCADE
			ON DELETE CASCADE,
		FOREIGN KEY (from_location_id) REFERENCES locations(location_id),
		FOREIGN KEY (to_location_id) REFERENCES locations(location_id)
	);

	CREATE INDEX IF NOT EXISTS idx_inventory_audit_asset ON inventory_audit (asset_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Path returns the store's database file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying pool for tests and integrity checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
