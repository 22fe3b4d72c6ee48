package memory

import (
	"avrental-backend/internal/repository"
)

// Store groups the in-memory repositories. State lives for the process
// lifetime only.
type Store struct {
	repository.ClientRepository
	repository.VehicleRepository
	repository.CouponRepository
	repository.ReservationRepository
	repository.NotificationRepository
}

func NewStore() *Store {
	return &Store{
		ClientRepository:       NewClientRepository(),
		VehicleRepository:      NewVehicleRepository(),
		CouponRepository:       NewCouponRepository(),
		ReservationRepository:  NewReservationRepository(),
		NotificationRepository: NewNotificationRepository(),
	}
}
