package memory

import (
	"context"
	"fmt"
	"sync"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository"
)

type couponRepository struct {
	mu      sync.RWMutex
	order   []string
	coupons map[string]domain.Coupon
}

func NewCouponRepository() repository.CouponRepository {
	return &couponRepository{coupons: make(map[string]domain.Coupon)}
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[c.Code]; ok {
		return fmt.Errorf("coupon %s: %w", c.Code, domain.ErrDuplicateKey)
	}
	r.coupons[c.Code] = *c
	r.order = append(r.order, c.Code)
	return nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coupons[domain.NormalizeCouponCode(code)]
	if !ok {
		return nil, fmt.Errorf("coupon %s: %w", code, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Coupon, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.coupons[code])
	}
	return out, nil
}

func (r *couponRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code = domain.NormalizeCouponCode(code)
	if _, ok := r.coupons[code]; !ok {
		return fmt.Errorf("coupon %s: %w", code, domain.ErrNotFound)
	}
	delete(r.coupons, code)
	for i, c := range r.order {
		if c == code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
