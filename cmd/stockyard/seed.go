package main

import (
	"context"
	"fmt"

	"stockyard/internal/domain"
	"stockyard/internal/repository/sqlite"
)

// seed populates an empty store with a small fleet for trying the tool
// out. Running it against a non-empty store will fail on the duplicate
// location slots rather than insert twice.
func seed(ctx context.Context, store *sqlite.Store) error {
	truck, err := store.Vehicles.Create(ctx, domain.NewVehicle{
		Type:        domain.VehicleTruck,
		Name:        "Truck T-100",
		VIN:         "VINTRUCK123",
		Number:      101,
		Mileage:     12500,
		LastService: 7800,
	})
	if err != nil {
		return fmt.Errorf("seed truck: %w", err)
	}
	trailer, err := store.Vehicles.Create(ctx, domain.NewVehicle{
		Type:        domain.VehicleTrailer,
		Name:        "Trailer TR-200",
		VIN:         "VINTRAILER456",
		Number:      201,
		Mileage:     4200,
		LastService: 1500,
	})
	if err != nil {
		return fmt.Errorf("seed trailer: %w", err)
	}

	slots := []struct {
		vehicleID string
		side      string
		row, bin  int
	}{
		{truck.ID, "Left", 1, 1},
		{truck.ID, "Right", 1, 1},
		{truck.ID, "Left", 2, 2},
		{trailer.ID, "Front", 1, 1},
	}
	locations := make([]*domain.Location, 0, len(slots))
	for _, s := range slots {
		loc, err := store.Locations.Create(ctx, domain.NewLocation{
			VehicleID: s.vehicleID,
			Side:      s.side,
			Row:       s.row,
			Bin:       s.bin,
		})
		if err != nil {
			return fmt.Errorf("seed location %s/%d/%d: %w", s.side, s.row, s.bin, err)
		}
		locations = append(locations, loc)
	}

	items := []domain.NewInventoryItem{
		{Description: "Impact Wrench", Manufacturer: "Makita", Model: "XWT08Z",
			SerialNumber: "IMPACT-001", LocationID: locations[0].ID},
		{Description: "Oil Filter", Manufacturer: "WIX", Model: "51348",
			LocationID: locations[1].ID, Consumable: true},
		{Description: "Hydraulic Jack", Manufacturer: "Torin", Model: "T83006",
			SerialNumber: "JACK-099", LocationID: locations[2].ID},
		{Description: "Spare Tire", Manufacturer: "Goodyear", Model: "Wrangler",
			SerialNumber: "TIRE-SPARE-01", LocationID: locations[3].ID},
		{Description: "Ratchet Straps (Pack of 4)", Manufacturer: "Erickson", Model: "34410",
			LocationID: locations[3].ID, Consumable: true},
	}
	for _, ni := range items {
		item, err := store.Inventory.Create(ctx, ni)
		if err != nil {
			return fmt.Errorf("seed item %q: %w", ni.Description, err)
		}
		_, err = store.Audits.Record(ctx, domain.AuditEntry{
			AssetID:      item.ID,
			Action:       domain.ActionItemCreated,
			ToLocationID: item.LocationID,
			User:         "seed",
		})
		if err != nil {
			return fmt.Errorf("seed audit for %q: %w", ni.Description, err)
		}
	}

	return nil
}
