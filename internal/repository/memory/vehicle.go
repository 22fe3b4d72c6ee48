package memory

import (
	"context"
	"fmt"
	"sync"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository"
)

type vehicleRepository struct {
	mu       sync.RWMutex
	vehicles []*domain.Vehicle
	byPlate  map[string]*domain.Vehicle
}

func NewVehicleRepository() repository.VehicleRepository {
	return &vehicleRepository{byPlate: make(map[string]*domain.Vehicle)}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPlate[v.Plate]; ok {
		return fmt.Errorf("plate %s: %w", v.Plate, domain.ErrDuplicateKey)
	}
	stored := v.Clone()
	r.vehicles = append(r.vehicles, stored)
	r.byPlate[v.Plate] = stored
	return nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byPlate[plate]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", plate, domain.ErrNotFound)
	}
	return v.Clone(), nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v.Clone())
	}
	return out, nil
}

func (r *vehicleRepository) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Vehicle
	for _, v := range r.vehicles {
		if v.Available {
			out = append(out, *v.Clone())
		}
	}
	return out, nil
}

func (r *vehicleRepository) SetAvailable(ctx context.Context, plate string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byPlate[plate]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", plate, domain.ErrNotFound)
	}
	v.Available = available
	return nil
}

func (r *vehicleRepository) AddMaintenance(ctx context.Context, plate string, m domain.Maintenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byPlate[plate]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", plate, domain.ErrNotFound)
	}
	v.Maintenance = append(v.Maintenance, m)
	return nil
}

func (r *vehicleRepository) UpdateLocation(ctx context.Context, plate string, lat, lon float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byPlate[plate]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", plate, domain.ErrNotFound)
	}
	v.Latitude, v.Longitude = lat, lon
	return nil
}
