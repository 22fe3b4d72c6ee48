package service

import (
	"context"
	"errors"
	"fmt"

	"avrental-backend/internal/domain"
)

// Seed registers the records every run starts with. Records that already
// exist are skipped.
func Seed(ctx context.Context, clients ClientService, vehicles VehicleService, coupons CouponService) error {
	if _, err := clients.Register(ctx, "Arthur Alves", "12345678900"); err != nil && !errors.Is(err, domain.ErrDuplicateKey) {
		return fmt.Errorf("seed client: %w", err)
	}

	seedVehicles := []RegisterVehicleRequest{
		{Plate: "ABC1234", Model: "Fiat Mobi", Year: 2022, DailyRateCents: 9550},
		{Plate: "DEF5678", Model: "Hyundai HB20", Year: 2023, DailyRateCents: 12000},
	}
	for _, req := range seedVehicles {
		if _, err := vehicles.Register(ctx, req); err != nil && !errors.Is(err, domain.ErrDuplicateKey) {
			return fmt.Errorf("seed vehicle %s: %w", req.Plate, err)
		}
	}

	seedCoupons := []domain.Coupon{
		{Code: "BEMVINDO15", Kind: domain.CouponKindPercentage, Value: 15},
		{Code: "FERIAS50", Kind: domain.CouponKindFixed, Value: 5000},
	}
	for _, c := range seedCoupons {
		if _, err := coupons.Add(ctx, c.Code, c.Kind, c.Value); err != nil && !errors.Is(err, domain.ErrDuplicateKey) {
			return fmt.Errorf("seed coupon %s: %w", c.Code, err)
		}
	}
	return nil
}
