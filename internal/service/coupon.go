package service

import (
	"context"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository"
)

type couponService struct {
	repo repository.CouponRepository
}

func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{repo: repo}
}

func (s *couponService) Find(ctx context.Context, code string) (*domain.Coupon, error) {
	return s.repo.GetByCode(ctx, domain.NormalizeCouponCode(code))
}

func (s *couponService) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *couponService) Add(ctx context.Context, code string, kind domain.CouponKind, value int64) (*domain.Coupon, error) {
	coupon, err := domain.NewCoupon(code, kind, value)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	logger.Info("Coupon added", "code", coupon.Code, "kind", coupon.Kind, "value", coupon.Value)
	return coupon, nil
}

func (s *couponService) Remove(ctx context.Context, code string) error {
	code = domain.NormalizeCouponCode(code)
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	logger.Info("Coupon removed", "code", code)
	return nil
}
