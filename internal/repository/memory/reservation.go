package memory

import (
	"context"
	"fmt"
	"sync"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository"

	"github.com/google/uuid"
)

type reservationRepository struct {
	mu           sync.RWMutex
	reservations []*domain.Reservation
}

func NewReservationRepository() repository.ReservationRepository {
	return &reservationRepository{}
}

func (r *reservationRepository) indexOf(id uuid.UUID) int {
	for i, rt := range r.reservations {
		if rt.ID == id {
			return i
		}
	}
	return -1
}

func (r *reservationRepository) Create(ctx context.Context, rt *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(rt.ID) >= 0 {
		return fmt.Errorf("reservation %s: %w", rt.ID, domain.ErrDuplicateKey)
	}
	r.reservations = append(r.reservations, rt.Clone())
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	return r.reservations[idx].Clone(), nil
}

func (r *reservationRepository) Update(ctx context.Context, rt *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(rt.ID)
	if idx < 0 {
		return fmt.Errorf("reservation %s: %w", rt.ID, domain.ErrNotFound)
	}
	r.reservations[idx] = rt.Clone()
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	r.reservations = append(r.reservations[:idx], r.reservations[idx+1:]...)
	return nil
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.filter(func(*domain.Reservation) bool { return true }), nil
}

func (r *reservationRepository) ListByClient(ctx context.Context, cpf string) ([]domain.Reservation, error) {
	return r.filter(func(rt *domain.Reservation) bool { return rt.ClientCPF == cpf }), nil
}

func (r *reservationRepository) ListByPlate(ctx context.Context, plate string) ([]domain.Reservation, error) {
	return r.filter(func(rt *domain.Reservation) bool { return rt.VehiclePlate == plate }), nil
}

func (r *reservationRepository) filter(keep func(*domain.Reservation) bool) []domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Reservation{}
	for _, rt := range r.reservations {
		if keep(rt) {
			out = append(out, *rt.Clone())
		}
	}
	return out
}
