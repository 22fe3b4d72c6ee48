package repository

import (
	"context"

	"avrental-backend/internal/domain"

	"github.com/google/uuid"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByCPF(ctx context.Context, cpf string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
	// SetAvailable is the only vehicle mutation the reservation engine performs.
	SetAvailable(ctx context.Context, plate string, available bool) error
	AddMaintenance(ctx context.Context, plate string, m domain.Maintenance) error
	UpdateLocation(ctx context.Context, plate string, lat, lon float64) error
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Delete(ctx context.Context, code string) error
}

// ReservationRepository keeps reservations in insertion order.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByClient(ctx context.Context, cpf string) ([]domain.Reservation, error)
	ListByPlate(ctx context.Context, plate string) ([]domain.Reservation, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByClient(ctx context.Context, cpf string, limit, offset int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, cpf string) error
}
