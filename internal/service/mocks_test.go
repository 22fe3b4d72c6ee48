package service_test

import (
	"context"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Name() string { return "mock" }

func (m *MockSender) Send(ctx context.Context, msg service.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, msg service.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockCouponLookup
type MockCouponLookup struct {
	mock.Mock
}

func (m *MockCouponLookup) Find(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
