package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stockyard/internal/domain"
	"stockyard/internal/repository"
)

func TestVehicleCreateValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Vehicles.Create(ctx, domain.NewVehicle{
		Type: domain.VehicleTruck, VIN: "VIN1",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = store.Vehicles.Create(ctx, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestVehicleCreateRejectsUnknownType(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Vehicles.Create(context.Background(), domain.NewVehicle{
		Type: "Forklift", Name: "F-1", VIN: "VINF1",
	})
	require.True(t, domain.IsConstraintViolation(err))

	var cv *domain.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	require.Equal(t, RuleVehicleTypeEnum, cv.Rule)
}

func TestVehicleGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Vehicles.Get(context.Background(), "00000000")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleSparseUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v := createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck T-100", VIN: "VINTRUCK123",
		Number: 101, Mileage: 12500, LastService: 7800,
	})

	mileage := 13000
	err := store.Vehicles.Update(ctx, v.ID, domain.VehiclePatch{Mileage: &mileage})
	require.NoError(t, err)

	got, err := store.Vehicles.Get(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, 13000, got.Mileage)

	// Untouched fields keep their values.
	require.Equal(t, v.Name, got.Name)
	require.Equal(t, v.VIN, got.VIN)
	require.Equal(t, v.Number, got.Number)
	require.Equal(t, v.LastService, got.LastService)
	require.Equal(t, v.CreatedAt, got.CreatedAt)
}

func TestVehicleEmptyPatchIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v := createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck T-100", VIN: "VINTRUCK123",
	})
	require.NoError(t, store.Vehicles.Update(ctx, v.ID, domain.VehiclePatch{}))

	got, err := store.Vehicles.Get(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, v.UpdatedAt, got.UpdatedAt)
}

func TestVehicleUpdateNotFound(t *testing.T) {
	store := newTestStore(t)

	name := "Ghost"
	err := store.Vehicles.Update(context.Background(), "00000000",
		domain.VehiclePatch{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleDeleteDetachesLocations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v := createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck T-100", VIN: "VINTRUCK123",
	})
	loc := createLocation(t, store, domain.NewLocation{
		VehicleID: v.ID, Side: "Left", Row: 1, Bin: 1,
	})

	require.NoError(t, store.Vehicles.Delete(ctx, v.ID))

	got, err := store.Locations.Get(ctx, loc.ID)
	require.NoError(t, err)
	require.Empty(t, got.VehicleID)
}

func TestVehicleList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck T-100", VIN: "VINTRUCK123", Number: 101,
	})
	createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTrailer, Name: "Trailer TR-200", VIN: "VINTRAILER456", Number: 201,
	})

	vehicles, total, err := store.Vehicles.List(ctx, repository.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, vehicles, 2)
	// Default sort is by name.
	require.Equal(t, "Trailer TR-200", vehicles[0].Name)
	require.Equal(t, "Truck T-100", vehicles[1].Name)

	vehicles, total, err = store.Vehicles.List(ctx, repository.ListOptions{
		Filter: repository.Filter{"vehicle_type": "Truck"},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Truck T-100", vehicles[0].Name)
}

func TestVehicleListZeroLimitCountsOnly(t *testing.T) {
	store := newTestStore(t)

	createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck T-100", VIN: "VINTRUCK123",
	})

	vehicles, total, err := store.Vehicles.List(context.Background(), repository.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Empty(t, vehicles)
}

func TestVehicleOverviewCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	truck := createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTruck, Name: "Truck T-100", VIN: "VINTRUCK123",
	})
	trailer := createVehicle(t, store, domain.NewVehicle{
		Type: domain.VehicleTrailer, Name: "Trailer TR-200", VIN: "VINTRAILER456",
	})

	left := createLocation(t, store, domain.NewLocation{
		VehicleID: truck.ID, Side: "Left", Row: 1, Bin: 1,
	})
	right := createLocation(t, store, domain.NewLocation{
		VehicleID: truck.ID, Side: "Right", Row: 1, Bin: 1,
	})
	createItem(t, store, domain.NewInventoryItem{
		Description: "Impact Wrench", LocationID: left.ID,
	})
	createItem(t, store, domain.NewInventoryItem{
		Description: "Oil Filter", LocationID: right.ID, Consumable: true,
	})

	overviews, err := store.Vehicles.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	counts := map[string]int{}
	for _, o := range overviews {
		counts[o.ID] = o.ItemCount
	}
	require.Equal(t, 2, counts[truck.ID])
	require.Equal(t, 0, counts[trailer.ID])
}
