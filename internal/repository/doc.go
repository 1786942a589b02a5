// Package repository defines the data access interfaces for Stockyard.
//
// This package provides the repository abstraction layer for persisting
// and retrieving domain entities. The actual implementation is in the
// sqlite subpackage.
//
// # Repositories
//
// One repository exists per entity kind: vehicles, locations, inventory
// items and the audit trail. Repositories exclusively own write access;
// identifiers for new vehicles, locations and items always come from
// the store's shared allocator.
//
// # Dynamic Queries
//
// List operations take ListOptions with an allow-listed filter map,
// an allow-listed sort key, and offset/limit pagination. Unknown filter
// and sort keys are ignored rather than interpolated, so user-supplied
// criteria can never inject query text. Every list call also returns
// the total size of the filtered set before pagination.
//
// # SQLite Implementation
//
// The sqlite implementation initializes its schema idempotently on
// open, runs in WAL mode with foreign keys enforced, and maps driver
// constraint errors onto the domain error taxonomy.
package repository
