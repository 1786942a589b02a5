package sqlite

import (
	"errors"

	"stockyard/internal/domain"

	sqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// Integrity rule names surfaced through domain.ConstraintViolation.
const (
	RuleVehicleTypeEnum    = "vehicle.type_enum"
	RuleLocationSlotUnique = "location.slot_unique"
	RuleLocationVehicleRef = "location.vehicle_exists"
	RuleLocationSlotRange  = "location.slot_non_negative"
	RuleInventoryLocation  = "inventory.location_exists"
	RuleLocationHasItems   = "location.has_inventory"
	RuleAuditAssetRef      = "audit.asset_exists"
	RuleIDUnique           = "id.globally_unique"
)

// constraintCode extracts the extended SQLite result code when err is a
// constraint failure of any kind.
func constraintCode(err error) (int, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return 0, false
	}
	code := se.Code()
	if code&0xff != sqlitelib.SQLITE_CONSTRAINT {
		return 0, false
	}
	return code, true
}

func isUniqueViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && (code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY)
}

func isForeignKeyViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && code == sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY
}

func isCheckViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && (code == sqlitelib.SQLITE_CONSTRAINT_CHECK ||
		code == sqlitelib.SQLITE_CONSTRAINT_NOTNULL)
}

// violation wraps a driver constraint error with the rule it violated.
func violation(rule string, err error) error {
	return &domain.ConstraintViolation{Rule: rule, Err: err}
}
