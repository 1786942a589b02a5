package domain

// VehicleType classifies a vehicle
type VehicleType string

const (
	VehicleTruck   VehicleType = "Truck"
	VehicleTrailer VehicleType = "Trailer"
)

// Valid reports whether t is a known vehicle type
func (t VehicleType) Valid() bool {
	return t == VehicleTruck || t == VehicleTrailer
}

// Vehicle represents a truck or trailer that owns storage locations
type Vehicle struct {
	ID          string      `json:"vehicle_id"`
	Type        VehicleType `json:"vehicle_type"`
	Name        string      `json:"vehicle_name"`
	VIN         string      `json:"vin"`
	Number      int         `json:"vehicle_number"`
	Mileage     int         `json:"mileage"`
	LastService int         `json:"last_service"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// NewVehicle holds the caller-supplied fields for vehicle creation.
// The id and timestamps are assigned by the repository.
type NewVehicle struct {
	Type        VehicleType `json:"vehicle_type"`
	Name        string      `json:"vehicle_name"`
	VIN         string      `json:"vin"`
	Number      int         `json:"vehicle_number"`
	Mileage     int         `json:"mileage"`
	LastService int         `json:"last_service"`
}

// VehiclePatch is a sparse update: nil fields are left untouched
type VehiclePatch struct {
	Type        *VehicleType `json:"vehicle_type,omitempty"`
	Name        *string      `json:"vehicle_name,omitempty"`
	VIN         *string      `json:"vin,omitempty"`
	Number      *int         `json:"vehicle_number,omitempty"`
	Mileage     *int         `json:"mileage,omitempty"`
	LastService *int         `json:"last_service,omitempty"`
}

// IsZero reports whether the patch carries no fields
func (p VehiclePatch) IsZero() bool {
	return p.Type == nil && p.Name == nil && p.VIN == nil &&
		p.Number == nil && p.Mileage == nil && p.LastService == nil
}

// VehicleOverview is a vehicle together with the number of inventory
// items stored across its locations, for display listings
type VehicleOverview struct {
	Vehicle
	ItemCount int `json:"items_stored_count"`
}
