// Package domain defines the core domain types for the Stockyard asset tracker.
//
// This package contains the entities persisted by the repository layer
// (vehicles, storage locations, inventory items, audit records), the
// sparse-patch types used for partial updates, and the error taxonomy
// shared by every repository operation.
//
// # Entities
//
// Vehicle is a truck or trailer that owns storage locations. Location is
// a physical slot (side/row/bin) that may or may not belong to a vehicle.
// InventoryItem is an asset stored in exactly one location. AuditRecord
// is an append-only trail entry describing item movement.
//
// All entity identifiers except audit ids come from a single shared
// 8-digit numeric namespace; audit records use an auto-incrementing
// integer key instead.
//
// # Timestamps
//
// Created/updated timestamps are ISO-8601 strings with second resolution,
// assigned by the repository layer. Callers never supply them, with the
// single exception of AuditEntry.AuditedAt which exists for importing
// historical trails.
//
// # Errors
//
// ErrValidation, ErrNotFound and ErrIDSpaceExhausted are sentinels meant
// for errors.Is. ConstraintViolation is a typed error carrying the
// specific integrity rule that rejected a write.
package domain
