package repository

import (
	"context"

	"stockyard/internal/domain"
)

// Filter maps allow-listed field names to match values. Keys outside a
// repository's allow-list are ignored, never interpolated into query
// text. The GlobalKey entry matches substrings across the view's text
// columns and is ANDed with the remaining entries.
type Filter map[string]string

// GlobalKey is the filter key for cross-column substring search.
const GlobalKey = "global"

// ListOptions controls filtering, sorting and pagination for list
// operations. Sort keys outside the allow-list fall back to the
// repository's default column. A Limit of zero or less returns no rows.
type ListOptions struct {
	Filter Filter
	Sort   string
	Desc   bool
	Limit  int
	Offset int
}

// VehicleRepository mediates all vehicle reads and writes
type VehicleRepository interface {
	Create(ctx context.Context, nv domain.NewVehicle) (*domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	Update(ctx context.Context, id string, patch domain.VehiclePatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]domain.Vehicle, int, error)

	// Overview lists vehicles with per-vehicle stored item counts
	Overview(ctx context.Context) ([]domain.VehicleOverview, error)
}

// LocationRepository mediates all storage-location reads and writes
type LocationRepository interface {
	Create(ctx context.Context, nl domain.NewLocation) (*domain.Location, error)
	Get(ctx context.Context, id string) (*domain.Location, error)
	Update(ctx context.Context, id string, patch domain.LocationPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]domain.Location, int, error)

	// ListForVehicle returns a vehicle's locations in slot order
	ListForVehicle(ctx context.Context, vehicleID string) ([]domain.Location, error)
}

// InventoryRepository mediates all inventory item reads and writes
type InventoryRepository interface {
	Create(ctx context.Context, ni domain.NewInventoryItem) (*domain.InventoryItem, error)
	Get(ctx context.Context, id string) (*domain.InventoryItem, error)
	Update(ctx context.Context, id string, patch domain.InventoryPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]domain.InventoryItem, int, error)

	// ListByLocation returns a location's items ordered by description
	ListByLocation(ctx context.Context, locationID string) ([]domain.InventoryItem, error)

	// ListView returns the denormalized display rows (item + slot +
	// vehicle), reflecting committed state of all three tables at read
	// time
	ListView(ctx context.Context, opts ListOptions) ([]domain.InventoryView, int, error)
}

// AuditRepository records and reads the append-only movement trail
type AuditRepository interface {
	Record(ctx context.Context, entry domain.AuditEntry) (int64, error)
	ListForAsset(ctx context.Context, assetID string) ([]domain.AuditRecord, error)
}
