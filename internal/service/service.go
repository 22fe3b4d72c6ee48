package service

import (
	"context"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/utils"

	"github.com/google/uuid"
)

type AuthService interface {
	LoginAdmin(ctx context.Context, username, password string) (*Session, error)
	LoginClient(ctx context.Context, cpf string) (*Session, error)
}

type ClientService interface {
	Register(ctx context.Context, name, cpf string) (*domain.Client, error)
	Get(ctx context.Context, cpf string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

type VehicleService interface {
	Register(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error)
	Get(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
	RecordMaintenance(ctx context.Context, plate, description, date string, costCents int64) error
	ListMaintenance(ctx context.Context, plate string) ([]domain.Maintenance, error)
	FleetStats(ctx context.Context) (domain.FleetStats, error)
	MaintenanceHistory(ctx context.Context) ([]VehicleMaintenance, error)
	// Track moves the simulated GPS position a small step and returns the vehicle.
	Track(ctx context.Context, plate string) (*domain.Vehicle, error)
}

// CouponLookup resolves promotional codes at payment time
type CouponLookup interface {
	Find(ctx context.Context, code string) (*domain.Coupon, error)
}

type CouponService interface {
	CouponLookup
	List(ctx context.Context) ([]domain.Coupon, error)
	Add(ctx context.Context, code string, kind domain.CouponKind, value int64) (*domain.Coupon, error)
	Remove(ctx context.Context, code string) error
}

type ReservationService interface {
	Quote(ctx context.Context, plate string, days int) (utils.RentalQuote, error)
	Book(ctx context.Context, cpf, plate string, days int) (*domain.Reservation, error)
	Pay(ctx context.Context, id uuid.UUID, req PaymentRequest, coupons CouponLookup) (*PaymentResult, error)
	ReportIncident(ctx context.Context, id uuid.UUID, description string) (*domain.Reservation, error)
	Return(ctx context.Context, id uuid.UUID, req ReturnRequest) (*domain.Reservation, error)
	Rate(ctx context.Context, id uuid.UUID, score int, comment string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Modify(ctx context.Context, id uuid.UUID, days int) (*domain.Reservation, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ListByClient(ctx context.Context, cpf string, filter ReservationFilter) ([]domain.Reservation, error)
	History(ctx context.Context, cpf string) ([]domain.Reservation, error)
	ContractsByCPF(ctx context.Context, cpf string) ([]domain.Contract, error)
	IncidentsByPlate(ctx context.Context, plate string) ([]IncidentGroup, error)
	PaymentReport(ctx context.Context) (*PaymentReport, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, cpf string, page, pageSize int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, cpf string, notificationID uuid.UUID) error
}

// Notifier receives lifecycle events. Delivery is best-effort.
type Notifier interface {
	Dispatch(ctx context.Context, msg Message)
}
