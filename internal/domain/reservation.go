package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDepositCents is the caution charged on every reservation (R$ 250,00)
const DefaultDepositCents int64 = 25000

// MaxRentalDays bounds a single booking
const MaxRentalDays = 365

type ReservationStatus string

const (
	ReservationStatusPending ReservationStatus = "PENDING"
	ReservationStatusPaid    ReservationStatus = "PAID"
	ReservationStatusClosed  ReservationStatus = "CLOSED"
)

type DepositStatus string

const (
	DepositHeld     DepositStatus = "HELD"
	DepositRefunded DepositStatus = "REFUNDED"
	DepositRetained DepositStatus = "RETAINED"
)

type Incident struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type Reservation struct {
	ID           uuid.UUID `json:"id"`
	ClientCPF    string    `json:"client_cpf"`
	VehiclePlate string    `json:"vehicle_plate"`
	// Snapshot taken at booking time, later vehicle edits do not change it.
	VehicleModel    string        `json:"vehicle_model"`
	Days            int           `json:"days"`
	DailyTotalCents int64         `json:"daily_total_cents"`
	DepositCents    int64         `json:"deposit_cents"`
	DepositStatus   DepositStatus `json:"deposit_status"`
	Incidents       []Incident    `json:"incidents"`
	Paid            bool          `json:"paid"`
	Closed          bool          `json:"closed"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
	CouponCode      string        `json:"coupon_code,omitempty"`
	PayableCents    int64         `json:"payable_cents"`
	Rating          *int          `json:"rating,omitempty"`
	Comment         *string       `json:"comment,omitempty"`
	CreatedOn       time.Time     `json:"created_on"`
	PaidOn          *time.Time    `json:"paid_on,omitempty"`
	ClosedOn        *time.Time    `json:"closed_on,omitempty"`
}

// NewReservation opens a booking for client on vehicle. dailyTotalCents is the
// already discounted total for the whole period.
func NewReservation(client *Client, vehicle *Vehicle, days int, dailyTotalCents, depositCents int64, now time.Time) (*Reservation, error) {
	if client == nil || vehicle == nil {
		return nil, fmt.Errorf("%w: client and vehicle are required", ErrInvalidInput)
	}
	if err := ValidateDays(days); err != nil {
		return nil, err
	}
	if dailyTotalCents < 0 {
		return nil, fmt.Errorf("%w: daily total cannot be negative", ErrInvalidInput)
	}
	return &Reservation{
		ID:              uuid.New(),
		ClientCPF:       client.CPF,
		VehiclePlate:    vehicle.Plate,
		VehicleModel:    vehicle.Model,
		Days:            days,
		DailyTotalCents: dailyTotalCents,
		DepositCents:    depositCents,
		DepositStatus:   DepositHeld,
		Incidents:       []Incident{},
		CreatedOn:       now,
	}, nil
}

func (r *Reservation) Status() ReservationStatus {
	switch {
	case r.Closed:
		return ReservationStatusClosed
	case r.Paid:
		return ReservationStatusPaid
	}
	return ReservationStatusPending
}

// AmountDueCents is the daily total plus deposit, before payment discounts
func (r *Reservation) AmountDueCents() int64 {
	return r.DailyTotalCents + r.DepositCents
}

// Reschedule replaces the period and its total. Only unpaid, open reservations change.
func (r *Reservation) Reschedule(days int, dailyTotalCents int64) error {
	if r.Paid || r.Closed {
		return ErrAlreadyPaid
	}
	if err := ValidateDays(days); err != nil {
		return err
	}
	if dailyTotalCents < 0 {
		return fmt.Errorf("%w: daily total cannot be negative", ErrInvalidInput)
	}
	r.Days = days
	r.DailyTotalCents = dailyTotalCents
	return nil
}

// MarkPaid records a confirmed payment. A reservation is paid at most once.
func (r *Reservation) MarkPaid(method PaymentMethod, couponCode string, payableCents int64, now time.Time) error {
	if r.Paid {
		return ErrAlreadyPaid
	}
	r.Paid = true
	r.PaymentMethod = method
	r.CouponCode = couponCode
	r.PayableCents = payableCents
	r.PaidOn = &now
	return nil
}

func (r *Reservation) AddIncident(date time.Time, description string) error {
	if r.Closed {
		return ErrReservationClosed
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("%w: incident description is required", ErrInvalidInput)
	}
	r.Incidents = append(r.Incidents, Incident{Date: date, Description: description})
	return nil
}

// Close settles the return. Damage adds one incident and retains the deposit.
func (r *Reservation) Close(damaged bool, damageDescription string, now time.Time) error {
	if !r.Paid {
		return ErrNotPaid
	}
	if r.Closed {
		return ErrReservationClosed
	}
	if damaged {
		if err := r.AddIncident(now, damageDescription); err != nil {
			return err
		}
		r.DepositStatus = DepositRetained
	} else {
		r.DepositStatus = DepositRefunded
	}
	r.Closed = true
	r.ClosedOn = &now
	return nil
}

func (r *Reservation) Rate(score int, comment string) error {
	if !r.Closed {
		return ErrNotClosed
	}
	if r.Rating != nil {
		return ErrAlreadyRated
	}
	if err := ValidateRating(score); err != nil {
		return err
	}
	c := strings.TrimSpace(comment)
	r.Rating = &score
	r.Comment = &c
	return nil
}

// ValidateDays accepts 1..MaxRentalDays
func ValidateDays(days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: days must be greater than zero", ErrInvalidInput)
	}
	if days > MaxRentalDays {
		return fmt.Errorf("%w: days cannot exceed %d", ErrInvalidInput, MaxRentalDays)
	}
	return nil
}

func ValidateRating(score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

// Clone returns a deep copy so stored reservations are never aliased by callers
func (r *Reservation) Clone() *Reservation {
	cp := *r
	cp.Incidents = append([]Incident{}, r.Incidents...)
	if r.Rating != nil {
		v := *r.Rating
		cp.Rating = &v
	}
	if r.Comment != nil {
		v := *r.Comment
		cp.Comment = &v
	}
	if r.PaidOn != nil {
		v := *r.PaidOn
		cp.PaidOn = &v
	}
	if r.ClosedOn != nil {
		v := *r.ClosedOn
		cp.ClosedOn = &v
	}
	return &cp
}

// Contract is the printable view of a reservation
type Contract struct {
	ClientName     string    `json:"client_name"`
	ClientCPF      string    `json:"client_cpf"`
	VehicleModel   string    `json:"vehicle_model"`
	VehiclePlate   string    `json:"vehicle_plate"`
	Days           int       `json:"days"`
	DailyTotal     int64     `json:"daily_total_cents"`
	Deposit        int64     `json:"deposit_cents"`
	Paid           bool      `json:"paid"`
	PickupDate     time.Time `json:"pickup_date"`
	ExpectedReturn time.Time `json:"expected_return"`
}

// Contract simulates the pickup as Days before now; the expected return is
// pickup plus Days.
func (r *Reservation) Contract(client *Client, now time.Time) Contract {
	pickup := now.AddDate(0, 0, -r.Days)
	c := Contract{
		ClientCPF:      r.ClientCPF,
		VehicleModel:   r.VehicleModel,
		VehiclePlate:   r.VehiclePlate,
		Days:           r.Days,
		DailyTotal:     r.DailyTotalCents,
		Deposit:        r.DepositCents,
		Paid:           r.Paid,
		PickupDate:     pickup,
		ExpectedReturn: pickup.AddDate(0, 0, r.Days),
	}
	if client != nil {
		c.ClientName = client.Name
	}
	return c
}
