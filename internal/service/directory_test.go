package service_test

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"avrental-backend/internal/clock"
	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository/memory"
	"avrental-backend/internal/service"
	"avrental-backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	ctx := context.Background()
	svc := service.NewClientService(memory.NewClientRepository(), validator.New())

	c, err := svc.Register(ctx, " Maria Souza ", "11122233344")
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", c.Name)
	assert.Equal(t, domain.RoleClient, c.Role)

	_, err = svc.Register(ctx, "Outra Maria", "11122233344")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	tests := []struct{ name, cpf string }{
		{"R2D2", "55566677788"},
		{"   ", "55566677788"},
		{"Joana", "555666777"},
		{"Joana", "555.666.777-88"},
	}
	for _, tt := range tests {
		_, err := svc.Register(ctx, tt.name, tt.cpf)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%q / %q", tt.name, tt.cpf)
	}

	got, err := svc.Get(ctx, "11122233344")
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", got.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVehicleService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := service.NewVehicleService(memory.NewVehicleRepository(), validator.New(), clock.NewFixed(now))

	v, err := svc.Register(ctx, service.RegisterVehicleRequest{Plate: "abc1234", Model: "Fiat Mobi", Year: 2022, DailyRateCents: 9550})
	require.NoError(t, err)
	assert.Equal(t, "ABC1234", v.Plate)
	assert.True(t, v.Available)

	_, err = svc.Register(ctx, service.RegisterVehicleRequest{Plate: "ABC1234", Model: "Other", Year: 2022, DailyRateCents: 100})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	invalid := []service.RegisterVehicleRequest{
		{Plate: "AB1234", Model: "Short plate", Year: 2022, DailyRateCents: 100},
		{Plate: "XYZ9876", Model: " ", Year: 2022, DailyRateCents: 100},
		{Plate: "XYZ9876", Model: "Old", Year: 1960, DailyRateCents: 100},
		{Plate: "XYZ9876", Model: "Future", Year: 2027, DailyRateCents: 100},
		{Plate: "XYZ9876", Model: "Free", Year: 2022, DailyRateCents: 0},
		{Plate: "XYZ9876", Model: "Gold", Year: 2022, DailyRateCents: service.MaxDailyRateCents + 1},
	}
	for _, req := range invalid {
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", req)
	}

	_, err = svc.Register(ctx, service.RegisterVehicleRequest{Plate: "XYZ9876", Model: "Next year", Year: 2026, DailyRateCents: 100})
	require.NoError(t, err)

	t.Run("Maintenance", func(t *testing.T) {
		require.NoError(t, svc.RecordMaintenance(ctx, "abc1234", "Oil change", "05/03/2025", 18000))
		assert.ErrorIs(t, svc.RecordMaintenance(ctx, "ABC1234", "Oil change", "2025-03-05", 100), domain.ErrInvalidInput)
		assert.ErrorIs(t, svc.RecordMaintenance(ctx, "ABC1234", "", "05/03/2025", 100), domain.ErrInvalidInput)
		assert.ErrorIs(t, svc.RecordMaintenance(ctx, "ABC1234", "Tyres", "05/03/2025", -1), domain.ErrInvalidInput)
		assert.ErrorIs(t, svc.RecordMaintenance(ctx, "NOP0000", "Tyres", "05/03/2025", 1), domain.ErrNotFound)

		entries, err := svc.ListMaintenance(ctx, "ABC1234")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), entries[0].Date)

		history, err := svc.MaintenanceHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "ABC1234", history[0].Plate)
	})

	t.Run("FleetStats", func(t *testing.T) {
		stats, err := svc.FleetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.FleetStats{Total: 2, Available: 2, Rented: 0}, stats)
	})
}

func TestVehicleService_Track(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	newSvc := func() service.VehicleService {
		return service.NewVehicleServiceWithRand(memory.NewVehicleRepository(), validator.New(),
			clock.NewFixed(now), rand.New(rand.NewSource(1)))
	}
	req := service.RegisterVehicleRequest{Plate: "ABC1234", Model: "Fiat Mobi", Year: 2022, DailyRateCents: 9550}

	svc := newSvc()
	v, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v.Latitude, service.MinStartLatitude)
	assert.Less(t, v.Latitude, service.MaxStartLatitude)
	assert.GreaterOrEqual(t, v.Longitude, service.MinStartLongitude)
	assert.Less(t, v.Longitude, service.MaxStartLongitude)

	lat, lon := v.Latitude, v.Longitude
	for i := 0; i < 5; i++ {
		moved, err := svc.Track(ctx, "abc1234")
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(moved.Latitude-lat), service.TrackStep)
		assert.LessOrEqual(t, math.Abs(moved.Longitude-lon), service.TrackStep)

		stored, err := svc.Get(ctx, "ABC1234")
		require.NoError(t, err)
		assert.Equal(t, moved.Latitude, stored.Latitude)
		assert.Equal(t, moved.Longitude, stored.Longitude)
		lat, lon = moved.Latitude, moved.Longitude
	}

	t.Run("Same seed repeats the path", func(t *testing.T) {
		again := newSvc()
		v2, err := again.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, v.Latitude, v2.Latitude)
		assert.Equal(t, v.Longitude, v2.Longitude)

		var last *domain.Vehicle
		for i := 0; i < 5; i++ {
			last, err = again.Track(ctx, "ABC1234")
			require.NoError(t, err)
		}
		assert.Equal(t, lat, last.Latitude)
		assert.Equal(t, lon, last.Longitude)
	})

	t.Run("Unknown plate", func(t *testing.T) {
		_, err := svc.Track(ctx, "ZZZ0000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCouponService(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCouponService(memory.NewCouponRepository())

	c, err := svc.Add(ctx, "verao10", domain.CouponKindPercentage, 10)
	require.NoError(t, err)
	assert.Equal(t, "VERAO10", c.Code)

	_, err = svc.Add(ctx, "VERAO10", domain.CouponKindFixed, 500)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	_, err = svc.Add(ctx, "HUGE", domain.CouponKindPercentage, 150)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	found, err := svc.Find(ctx, " verao10 ")
	require.NoError(t, err)
	assert.Equal(t, int64(10), found.Value)

	require.NoError(t, svc.Remove(ctx, "verao10"))
	assert.ErrorIs(t, svc.Remove(ctx, "VERAO10"), domain.ErrNotFound)
	_, err = svc.Find(ctx, "VERAO10")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	v := validator.New()
	clients := service.NewClientService(store.ClientRepository, v)
	vehicles := service.NewVehicleService(store.VehicleRepository, v, nil)
	coupons := service.NewCouponService(store.CouponRepository)

	require.NoError(t, service.Seed(ctx, clients, vehicles, coupons))
	require.NoError(t, service.Seed(ctx, clients, vehicles, coupons), "seeding twice is harmless")

	all, err := vehicles.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(9550), all[0].DailyRateCents)

	ferias, err := coupons.Find(ctx, "FERIAS50")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponKindFixed, ferias.Kind)
	assert.Equal(t, int64(5000), ferias.Value)

	_, err = clients.Get(ctx, "12345678900")
	assert.NoError(t, err)
}
