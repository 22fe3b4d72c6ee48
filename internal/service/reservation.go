package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"avrental-backend/internal/clock"
	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository"
	"avrental-backend/internal/utils"

	"github.com/google/uuid"
)

// PaymentRequest carries the choices made at the payment prompt. Without
// Confirm the call only quotes the payable amount.
type PaymentRequest struct {
	CouponCode string
	Method     domain.PaymentMethod
	Confirm    bool
}

type PaymentResult struct {
	AlreadyPaid               bool
	CouponApplied             bool
	CouponInvalid             bool
	CouponDiscountCents       int64
	DiscountedDailyTotalCents int64
	DepositCents              int64
	PayableCents              int64
	Confirmed                 bool
	Reservation               *domain.Reservation
}

// ReturnRequest settles a return; Rating is optional
type ReturnRequest struct {
	Damaged           bool
	DamageDescription string
	Rating            *int
	Comment           string
}

type ReservationFilter int

const (
	FilterAll        ReservationFilter = iota
	FilterUnpaid                       // unpaid and open: payable, modifiable, cancellable
	FilterOpen                         // not closed: incidents may be reported
	FilterReturnable                   // paid and open
)

func (f ReservationFilter) match(r *domain.Reservation) bool {
	switch f {
	case FilterUnpaid:
		return !r.Paid && !r.Closed
	case FilterOpen:
		return !r.Closed
	case FilterReturnable:
		return r.Paid && !r.Closed
	}
	return true
}

type IncidentGroup struct {
	ReservationID uuid.UUID         `json:"reservation_id"`
	ClientCPF     string            `json:"client_cpf"`
	Incidents     []domain.Incident `json:"incidents"`
}

type PaymentReportEntry struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ClientCPF     string    `json:"client_cpf"`
	VehicleModel  string    `json:"vehicle_model"`
	VehiclePlate  string    `json:"vehicle_plate"`
	AmountCents   int64     `json:"amount_cents"`
}

// PaymentReport partitions reservations into pending (unpaid, open) and
// paid (any paid, closed or not). Amounts are daily total plus deposit.
type PaymentReport struct {
	Pending           []PaymentReportEntry `json:"pending"`
	Paid              []PaymentReportEntry `json:"paid"`
	PendingTotalCents int64                `json:"pending_total_cents"`
	PaidTotalCents    int64                `json:"paid_total_cents"`
}

type reservationService struct {
	reservations repository.ReservationRepository
	vehicles     repository.VehicleRepository
	clients      repository.ClientRepository
	notifier     Notifier
	clock        clock.Clock
	depositCents int64

	mu         sync.Mutex
	plateLocks sync.Map // plate -> *sync.Mutex
}

func NewReservationService(
	reservations repository.ReservationRepository,
	vehicles repository.VehicleRepository,
	clients repository.ClientRepository,
	notifier Notifier,
	clk clock.Clock,
	depositCents int64,
) ReservationService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &reservationService{
		reservations: reservations,
		vehicles:     vehicles,
		clients:      clients,
		notifier:     notifier,
		clock:        clk,
		depositCents: depositCents,
	}
}

func (s *reservationService) lockPlate(plate string) func() {
	v, _ := s.plateLocks.LoadOrStore(plate, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *reservationService) clientName(ctx context.Context, cpf string) string {
	c, err := s.clients.GetByCPF(ctx, cpf)
	if err != nil {
		return cpf
	}
	return c.Name
}

func (s *reservationService) Quote(ctx context.Context, plate string, days int) (utils.RentalQuote, error) {
	plate = normalizePlate(plate)
	if err := domain.ValidateDays(days); err != nil {
		return utils.RentalQuote{}, err
	}
	vehicle, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		return utils.RentalQuote{}, err
	}
	return utils.QuoteRental(vehicle.DailyRateCents, days), nil
}

func (s *reservationService) Book(ctx context.Context, cpf, plate string, days int) (*domain.Reservation, error) {
	plate = normalizePlate(plate)
	logger.EnterMethod("reservationService.Book", "cpf", cpf, "plate", plate, "days", days)

	if err := domain.ValidateDays(days); err != nil {
		logger.ExitMethodWithError("reservationService.Book", err)
		return nil, err
	}

	client, err := s.clients.GetByCPF(ctx, cpf)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Book", err, "cpf", cpf)
		return nil, err
	}

	unlock := s.lockPlate(plate)
	defer unlock()

	vehicle, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Book", err, "plate", plate)
		return nil, err
	}
	if !vehicle.Available {
		err := fmt.Errorf("vehicle %s: %w", plate, domain.ErrVehicleUnavailable)
		logger.ExitMethodWithError("reservationService.Book", err)
		return nil, err
	}

	quote := utils.QuoteRental(vehicle.DailyRateCents, days)
	now := s.clock.Now()
	r, err := domain.NewReservation(client, vehicle, days, quote.DailyTotalCents, s.depositCents, now)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Book", err)
		return nil, err
	}

	if err := s.vehicles.SetAvailable(ctx, plate, false); err != nil {
		logger.ExitMethodWithError("reservationService.Book", err)
		return nil, err
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		// Undo the flip so the vehicle is not stranded
		_ = s.vehicles.SetAvailable(ctx, plate, true)
		logger.ExitMethodWithError("reservationService.Book", err)
		return nil, err
	}

	logger.Info("Reservation booked",
		"reservation_id", r.ID,
		"cpf", cpf,
		"plate", plate,
		"days", days,
		"long_duration_discount_cents", quote.LongDurationDiscount,
		"daily_total_cents", r.DailyTotalCents)
	s.notifier.Dispatch(ctx, bookedMessage(r, client.Name, now))

	logger.ExitMethod("reservationService.Book", "reservation_id", r.ID)
	return r.Clone(), nil
}

func (s *reservationService) Pay(ctx context.Context, id uuid.UUID, req PaymentRequest, coupons CouponLookup) (*PaymentResult, error) {
	logger.EnterMethod("reservationService.Pay", "reservation_id", id, "method", req.Method, "confirm", req.Confirm)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Pay", err)
		return nil, err
	}

	result := &PaymentResult{DepositCents: r.DepositCents, Reservation: r}
	if r.Paid {
		result.AlreadyPaid = true
		result.PayableCents = r.PayableCents
		logger.ExitMethod("reservationService.Pay", "already_paid", true)
		return result, nil
	}
	if r.Closed {
		logger.ExitMethodWithError("reservationService.Pay", domain.ErrReservationClosed)
		return nil, domain.ErrReservationClosed
	}

	var coupon *domain.Coupon
	code := domain.NormalizeCouponCode(req.CouponCode)
	if code != "" {
		if coupons != nil {
			coupon, err = coupons.Find(ctx, code)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				logger.ExitMethodWithError("reservationService.Pay", err)
				return nil, err
			}
		}
		if coupon == nil {
			result.CouponInvalid = true
			code = ""
		} else {
			result.CouponApplied = true
		}
	}

	result.CouponDiscountCents = utils.CouponDiscount(r.DailyTotalCents, coupon)
	result.DiscountedDailyTotalCents = r.DailyTotalCents - result.CouponDiscountCents

	payable, err := req.Method.ProcessPayment(result.DiscountedDailyTotalCents, r.DepositCents)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Pay", err)
		return nil, err
	}
	result.PayableCents = payable

	if !req.Confirm {
		logger.ExitMethod("reservationService.Pay", "confirmed", false, "payable_cents", payable)
		return result, nil
	}

	now := s.clock.Now()
	if err := r.MarkPaid(req.Method, code, payable, now); err != nil {
		logger.ExitMethodWithError("reservationService.Pay", err)
		return nil, err
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.Pay", err)
		return nil, err
	}
	result.Confirmed = true

	logger.Info("Payment processed",
		"reservation_id", r.ID,
		"method", req.Method,
		"coupon", code,
		"payable_cents", payable)
	s.notifier.Dispatch(ctx, paymentMessage(r, s.clientName(ctx, r.ClientCPF), now))

	logger.ExitMethod("reservationService.Pay", "payable_cents", payable)
	return result, nil
}

func (s *reservationService) ReportIncident(ctx context.Context, id uuid.UUID, description string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if err := r.AddIncident(now, description); err != nil {
		logger.ExitMethodWithError("reservationService.ReportIncident", err, "reservation_id", id)
		return nil, err
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}

	incident := r.Incidents[len(r.Incidents)-1]
	logger.Info("Incident reported", "reservation_id", r.ID, "plate", r.VehiclePlate)
	s.notifier.Dispatch(ctx, incidentMessage(r, s.clientName(ctx, r.ClientCPF), incident, now))
	return r, nil
}

func (s *reservationService) Return(ctx context.Context, id uuid.UUID, req ReturnRequest) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.Return", "reservation_id", id, "damaged", req.Damaged)

	if req.Rating != nil {
		if err := domain.ValidateRating(*req.Rating); err != nil {
			logger.ExitMethodWithError("reservationService.Return", err)
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Return", err)
		return nil, err
	}
	if !r.Paid {
		logger.ExitMethodWithError("reservationService.Return", domain.ErrNotPaid)
		return nil, domain.ErrNotPaid
	}
	if r.Closed {
		logger.ExitMethodWithError("reservationService.Return", domain.ErrReservationClosed)
		return nil, domain.ErrReservationClosed
	}

	unlock := s.lockPlate(r.VehiclePlate)
	defer unlock()

	if _, err := s.vehicles.GetByPlate(ctx, r.VehiclePlate); err != nil {
		logger.ExitMethodWithError("reservationService.Return", err)
		return nil, err
	}

	now := s.clock.Now()
	if err := r.Close(req.Damaged, req.DamageDescription, now); err != nil {
		logger.ExitMethodWithError("reservationService.Return", err)
		return nil, err
	}
	if req.Rating != nil {
		if err := r.Rate(*req.Rating, req.Comment); err != nil {
			logger.ExitMethodWithError("reservationService.Return", err)
			return nil, err
		}
	}

	if err := s.vehicles.SetAvailable(ctx, r.VehiclePlate, true); err != nil {
		logger.ExitMethodWithError("reservationService.Return", err)
		return nil, err
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.Return", err)
		return nil, err
	}

	logger.Info("Vehicle returned",
		"reservation_id", r.ID,
		"plate", r.VehiclePlate,
		"deposit_status", r.DepositStatus)
	s.notifier.Dispatch(ctx, returnedMessage(r, s.clientName(ctx, r.ClientCPF), now))

	logger.ExitMethod("reservationService.Return", "reservation_id", r.ID)
	return r, nil
}

func (s *reservationService) Rate(ctx context.Context, id uuid.UUID, score int, comment string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Rate(score, comment); err != nil {
		return nil, err
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	logger.Info("Reservation rated", "reservation_id", r.ID, "rating", score)
	return r, nil
}

func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID) error {
	logger.EnterMethod("reservationService.Cancel", "reservation_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Cancel", err)
		return err
	}
	if r.Paid || r.Closed {
		logger.ExitMethodWithError("reservationService.Cancel", domain.ErrAlreadyPaid)
		return domain.ErrAlreadyPaid
	}

	unlock := s.lockPlate(r.VehiclePlate)
	defer unlock()

	// A vehicle removed from the directory leaves nothing to release
	if err := s.vehicles.SetAvailable(ctx, r.VehiclePlate, true); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.ExitMethodWithError("reservationService.Cancel", err)
		return err
	}
	if err := s.reservations.Delete(ctx, r.ID); err != nil {
		logger.ExitMethodWithError("reservationService.Cancel", err)
		return err
	}

	logger.Info("Reservation cancelled", "reservation_id", r.ID, "plate", r.VehiclePlate)
	s.notifier.Dispatch(ctx, cancelledMessage(r, s.clientName(ctx, r.ClientCPF), s.clock.Now()))

	logger.ExitMethod("reservationService.Cancel")
	return nil
}

func (s *reservationService) Modify(ctx context.Context, id uuid.UUID, days int) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.Modify", "reservation_id", id, "days", days)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Modify", err)
		return nil, err
	}
	if r.Paid || r.Closed {
		logger.ExitMethodWithError("reservationService.Modify", domain.ErrAlreadyPaid)
		return nil, domain.ErrAlreadyPaid
	}
	if err := domain.ValidateDays(days); err != nil {
		logger.ExitMethodWithError("reservationService.Modify", err)
		return nil, err
	}

	vehicle, err := s.vehicles.GetByPlate(ctx, r.VehiclePlate)
	if err != nil {
		logger.ExitMethodWithError("reservationService.Modify", err)
		return nil, err
	}

	quote := utils.QuoteRental(vehicle.DailyRateCents, days)
	if err := r.Reschedule(days, quote.DailyTotalCents); err != nil {
		logger.ExitMethodWithError("reservationService.Modify", err)
		return nil, err
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.Modify", err)
		return nil, err
	}

	logger.Info("Reservation modified", "reservation_id", r.ID, "days", days, "daily_total_cents", r.DailyTotalCents)
	s.notifier.Dispatch(ctx, modifiedMessage(r, s.clientName(ctx, r.ClientCPF), s.clock.Now()))

	logger.ExitMethod("reservationService.Modify")
	return r, nil
}

func (s *reservationService) Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *reservationService) ListByClient(ctx context.Context, cpf string, filter ReservationFilter) ([]domain.Reservation, error) {
	all, err := s.reservations.ListByClient(ctx, cpf)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(all))
	for i := range all {
		if filter.match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *reservationService) History(ctx context.Context, cpf string) ([]domain.Reservation, error) {
	return s.ListByClient(ctx, cpf, FilterAll)
}

func (s *reservationService) ContractsByCPF(ctx context.Context, cpf string) ([]domain.Contract, error) {
	client, err := s.clients.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	list, err := s.reservations.ListByClient(ctx, cpf)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	contracts := make([]domain.Contract, 0, len(list))
	for i := range list {
		contracts = append(contracts, list[i].Contract(client, now))
	}
	return contracts, nil
}

func (s *reservationService) IncidentsByPlate(ctx context.Context, plate string) ([]IncidentGroup, error) {
	list, err := s.reservations.ListByPlate(ctx, normalizePlate(plate))
	if err != nil {
		return nil, err
	}
	groups := make([]IncidentGroup, 0, len(list))
	for _, r := range list {
		groups = append(groups, IncidentGroup{
			ReservationID: r.ID,
			ClientCPF:     r.ClientCPF,
			Incidents:     append([]domain.Incident{}, r.Incidents...),
		})
	}
	return groups, nil
}

func (s *reservationService) PaymentReport(ctx context.Context) (*PaymentReport, error) {
	list, err := s.reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	report := &PaymentReport{
		Pending: []PaymentReportEntry{},
		Paid:    []PaymentReportEntry{},
	}
	for _, r := range list {
		entry := PaymentReportEntry{
			ReservationID: r.ID,
			ClientCPF:     r.ClientCPF,
			VehicleModel:  r.VehicleModel,
			VehiclePlate:  r.VehiclePlate,
			AmountCents:   r.AmountDueCents(),
		}
		switch {
		case r.Paid:
			report.Paid = append(report.Paid, entry)
			report.PaidTotalCents += entry.AmountCents
		case !r.Closed:
			report.Pending = append(report.Pending, entry)
			report.PendingTotalCents += entry.AmountCents
		}
	}
	return report, nil
}
