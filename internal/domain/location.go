package domain

// Location represents a physical storage slot. A location may belong to
// a vehicle or stand on its own (VehicleID empty); the (vehicle, side,
// row, bin) tuple is unique either way. Deleting the owning vehicle
// detaches the location rather than destroying it.
type Location struct {
	ID            string `json:"location_id"`
	VehicleID     string `json:"vehicle_id,omitempty"` // empty when unassigned
	Side          string `json:"side"`
	Row           int    `json:"row"`
	Bin           int    `json:"bin"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	LastAuditedAt string `json:"last_audited_at,omitempty"` // empty until first audit
}

// NewLocation holds the caller-supplied fields for location creation
type NewLocation struct {
	VehicleID string `json:"vehicle_id,omitempty"`
	Side      string `json:"side"`
	Row       int    `json:"row"`
	Bin       int    `json:"bin"`
}

// LocationPatch is a sparse update: nil fields are left untouched.
// Setting VehicleID to an empty string detaches the location from its
// vehicle.
type LocationPatch struct {
	VehicleID     *string `json:"vehicle_id,omitempty"`
	Side          *string `json:"side,omitempty"`
	Row           *int    `json:"row,omitempty"`
	Bin           *int    `json:"bin,omitempty"`
	LastAuditedAt *string `json:"last_audited_at,omitempty"`
}

// IsZero reports whether the patch carries no fields
func (p LocationPatch) IsZero() bool {
	return p.VehicleID == nil && p.Side == nil && p.Row == nil &&
		p.Bin == nil && p.LastAuditedAt == nil
}
