package domain

// InventoryItem represents an asset stored in exactly one location
type InventoryItem struct {
	ID           string `json:"asset_id"`
	Description  string `json:"description"`
	LocationID   string `json:"location_id"`
	Consumable   bool   `json:"consumable"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// NewInventoryItem holds the caller-supplied fields for item creation
type NewInventoryItem struct {
	Description  string `json:"description"`
	LocationID   string `json:"location_id"`
	Consumable   bool   `json:"consumable"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// InventoryPatch is a sparse update: nil fields are left untouched
type InventoryPatch struct {
	Description  *string `json:"description,omitempty"`
	LocationID   *string `json:"location_id,omitempty"`
	Consumable   *bool   `json:"consumable,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Model        *string `json:"model,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
}

// IsZero reports whether the patch carries no fields
func (p InventoryPatch) IsZero() bool {
	return p.Description == nil && p.LocationID == nil && p.Consumable == nil &&
		p.Manufacturer == nil && p.Model == nil && p.SerialNumber == nil
}

// InventoryView is a denormalized, read-only row joining an item with
// its location slot and the vehicle that owns the slot. Vehicle fields
// are empty for unassigned locations.
type InventoryView struct {
	AssetID       string      `json:"asset_id"`
	LocationID    string      `json:"location_id"`
	Description   string      `json:"description"`
	Consumable    bool        `json:"consumable"`
	Manufacturer  string      `json:"manufacturer,omitempty"`
	Model         string      `json:"model,omitempty"`
	SerialNumber  string      `json:"serial_number,omitempty"`
	VehicleName   string      `json:"vehicle_name,omitempty"`
	VehicleType   VehicleType `json:"vehicle_type,omitempty"`
	Side          string      `json:"side"`
	Row           int         `json:"row"`
	Bin           int         `json:"bin"`
	LastAuditedAt string      `json:"last_audited_at,omitempty"`
}
