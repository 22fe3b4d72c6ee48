package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"avrental-backend/internal/clock"
	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository"

	playground "github.com/go-playground/validator/v10"
)

// MinVehicleYear is the oldest model year the fleet accepts
const MinVehicleYear = 1961

// MaxDailyRateCents is R$ 1.000.000,00 per day
const MaxDailyRateCents = 100_000_000

// Simulated GPS: new vehicles start inside this São Paulo box and each
// Track call moves them by at most TrackStep degrees per axis.
const (
	MinStartLatitude  = -23.6
	MaxStartLatitude  = -23.5
	MinStartLongitude = -46.7
	MaxStartLongitude = -46.6
	TrackStep         = 0.01
)

type RegisterVehicleRequest struct {
	Plate          string `validate:"plate"`
	Model          string `validate:"notblank"`
	Year           int    `validate:"gte=1961"`
	DailyRateCents int64  `validate:"gt=0,lte=100000000"`
}

type maintenanceInput struct {
	Description string `validate:"notblank"`
	CostCents   int64  `validate:"gte=0"`
}

// VehicleMaintenance is one vehicle's maintenance log in the fleet history
type VehicleMaintenance struct {
	Plate   string               `json:"plate"`
	Model   string               `json:"model"`
	Entries []domain.Maintenance `json:"entries"`
}

type vehicleService struct {
	repo     repository.VehicleRepository
	validate *playground.Validate
	clock    clock.Clock

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewVehicleService(repo repository.VehicleRepository, v *playground.Validate, clk clock.Clock) VehicleService {
	return NewVehicleServiceWithRand(repo, v, clk, nil)
}

// NewVehicleServiceWithRand drives the simulated GPS from rnd, so a fixed
// seed gives repeatable positions.
func NewVehicleServiceWithRand(repo repository.VehicleRepository, v *playground.Validate, clk clock.Clock, rnd *rand.Rand) VehicleService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &vehicleService{repo: repo, validate: v, clock: clk, rnd: rnd}
}

// uniform returns a value in [lo, hi)
func (s *vehicleService) uniform(lo, hi float64) float64 {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return lo + s.rnd.Float64()*(hi-lo)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (s *vehicleService) Register(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	req.Plate = normalizePlate(req.Plate)
	req.Model = strings.TrimSpace(req.Model)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	now := s.clock.Now()
	if maxYear := now.Year() + 1; req.Year > maxYear {
		return nil, fmt.Errorf("%w: year must be between %d and %d", domain.ErrInvalidInput, MinVehicleYear, maxYear)
	}

	v := &domain.Vehicle{
		Plate:          req.Plate,
		Model:          req.Model,
		Year:           req.Year,
		DailyRateCents: req.DailyRateCents,
		Available:      true,
		Maintenance:    []domain.Maintenance{},
		Latitude:       s.uniform(MinStartLatitude, MaxStartLatitude),
		Longitude:      s.uniform(MinStartLongitude, MaxStartLongitude),
		CreatedOn:      now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	logger.Info("Vehicle registered", "plate", v.Plate, "model", v.Model)
	return v, nil
}

func (s *vehicleService) Get(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return s.repo.GetByPlate(ctx, normalizePlate(plate))
}

func (s *vehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *vehicleService) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.ListAvailable(ctx)
}

// RecordMaintenance appends an entry; date uses the dd/mm/yyyy layout
func (s *vehicleService) RecordMaintenance(ctx context.Context, plate, description, date string, costCents int64) error {
	in := maintenanceInput{Description: strings.TrimSpace(description), CostCents: costCents}
	if err := s.validate.Struct(in); err != nil {
		return validationError(err)
	}
	when, err := time.Parse(domain.MaintenanceDateLayout, strings.TrimSpace(date))
	if err != nil {
		return fmt.Errorf("%w: date must use dd/mm/yyyy", domain.ErrInvalidInput)
	}

	plate = normalizePlate(plate)
	entry := domain.Maintenance{Description: in.Description, Date: when, CostCents: costCents}
	if err := s.repo.AddMaintenance(ctx, plate, entry); err != nil {
		return err
	}
	logger.Info("Maintenance recorded", "plate", plate, "cost_cents", costCents)
	return nil
}

func (s *vehicleService) ListMaintenance(ctx context.Context, plate string) ([]domain.Maintenance, error) {
	v, err := s.repo.GetByPlate(ctx, normalizePlate(plate))
	if err != nil {
		return nil, err
	}
	return v.Maintenance, nil
}

func (s *vehicleService) FleetStats(ctx context.Context) (domain.FleetStats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return domain.FleetStats{}, err
	}
	stats := domain.FleetStats{Total: len(all)}
	for _, v := range all {
		if v.Available {
			stats.Available++
		}
	}
	stats.Rented = stats.Total - stats.Available
	return stats, nil
}

// MaintenanceHistory lists vehicles that have at least one maintenance entry
func (s *vehicleService) MaintenanceHistory(ctx context.Context) ([]VehicleMaintenance, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	history := []VehicleMaintenance{}
	for _, v := range all {
		if len(v.Maintenance) == 0 {
			continue
		}
		history = append(history, VehicleMaintenance{Plate: v.Plate, Model: v.Model, Entries: v.Maintenance})
	}
	return history, nil
}

func (s *vehicleService) Track(ctx context.Context, plate string) (*domain.Vehicle, error) {
	logger.EnterMethod("vehicleService.Track", "plate", plate)

	plate = normalizePlate(plate)
	v, err := s.repo.GetByPlate(ctx, plate)
	if err != nil {
		logger.ExitMethodWithError("vehicleService.Track", err, "plate", plate)
		return nil, err
	}
	v.Latitude += s.uniform(-TrackStep, TrackStep)
	v.Longitude += s.uniform(-TrackStep, TrackStep)
	if err := s.repo.UpdateLocation(ctx, plate, v.Latitude, v.Longitude); err != nil {
		logger.ExitMethodWithError("vehicleService.Track", err, "plate", plate)
		return nil, err
	}

	logger.Debug("Vehicle position updated", "plate", plate, "lat", v.Latitude, "lon", v.Longitude)
	logger.ExitMethod("vehicleService.Track", "plate", plate)
	return v, nil
}
