package cli

import (
	"fmt"
	"strconv"
	"strings"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/service"

	"github.com/google/uuid"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func parseRating(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalidf("rating must be a number between 1 and 5")
	}
	if err := domain.ValidateRating(n); err != nil {
		return 0, err
	}
	return n, nil
}

// shortID is the first block of a reservation id, enough to tell rows apart
func shortID(id uuid.UUID) string {
	return strings.SplitN(id.String(), "-", 2)[0]
}

func vehicleLine(v *domain.Vehicle) string {
	return fmt.Sprintf("%s %d (%s) - %s/day", v.Model, v.Year, v.Plate, domain.FormatBRL(v.DailyRateCents))
}

func reservationLine(r *domain.Reservation) string {
	return fmt.Sprintf("%s (%s) - %d day(s) - %s + deposit %s - %s",
		r.VehicleModel, r.VehiclePlate, r.Days,
		domain.FormatBRL(r.DailyTotalCents), domain.FormatBRL(r.DepositCents),
		statusLabel(r.Status()))
}

func statusLabel(s domain.ReservationStatus) string {
	switch s {
	case domain.ReservationStatusPaid:
		return "paid"
	case domain.ReservationStatusClosed:
		return "closed"
	}
	return "pending payment"
}

func (a *App) printReservation(r *domain.Reservation) {
	a.printf("- [%s] %s\n", shortID(r.ID), reservationLine(r))
	if r.Paid {
		a.printf("    paid %s via %s", domain.FormatBRL(r.PayableCents), r.PaymentMethod.Label())
		if r.CouponCode != "" {
			a.printf(" with coupon %s", r.CouponCode)
		}
		a.println("")
	}
	if r.Closed {
		a.printf("    deposit %s\n", strings.ToLower(string(r.DepositStatus)))
	}
	for _, inc := range r.Incidents {
		a.printf("    incident %s: %s\n", inc.Date.Format(dateLayout), inc.Description)
	}
	if r.Rating != nil {
		a.printf("    rating %d/5", *r.Rating)
		if r.Comment != nil && *r.Comment != "" {
			a.printf(" %q", *r.Comment)
		}
		a.println("")
	}
}

func (a *App) printContracts(contracts []domain.Contract) {
	if len(contracts) == 0 {
		a.println("No contracts found.")
		return
	}
	for _, c := range contracts {
		a.println("----- RENTAL CONTRACT -----")
		a.printf("Client: %s (%s)\n", c.ClientName, c.ClientCPF)
		a.printf("Vehicle: %s (%s)\n", c.VehicleModel, c.VehiclePlate)
		a.printf("Pickup: %s\n", c.PickupDate.Format(dateLayout))
		a.printf("Expected return: %s\n", c.ExpectedReturn.Format(dateLayout))
		a.printf("Days: %d\n", c.Days)
		a.printf("Daily total: %s\n", domain.FormatBRL(c.DailyTotal))
		a.printf("Deposit: %s\n", domain.FormatBRL(c.Deposit))
		paid := "no"
		if c.Paid {
			paid = "yes"
		}
		a.printf("Paid: %s\n", paid)
	}
}

func (a *App) printMaintenance(entries []domain.Maintenance) {
	for _, m := range entries {
		a.printf("  - %s: %s (%s)\n", m.Date.Format(dateLayout), m.Description, domain.FormatBRL(m.CostCents))
	}
}

func (a *App) printPaymentReport(report *service.PaymentReport) {
	a.println("Pending payments:")
	if len(report.Pending) == 0 {
		a.println("  (none)")
	}
	for _, e := range report.Pending {
		a.printf("  - %s: %s (%s) %s\n", e.ClientCPF, e.VehicleModel, e.VehiclePlate, domain.FormatBRL(e.AmountCents))
	}
	a.printf("Pending total: %s\n", domain.FormatBRL(report.PendingTotalCents))

	a.println("Paid reservations:")
	if len(report.Paid) == 0 {
		a.println("  (none)")
	}
	for _, e := range report.Paid {
		a.printf("  - %s: %s (%s) %s\n", e.ClientCPF, e.VehicleModel, e.VehiclePlate, domain.FormatBRL(e.AmountCents))
	}
	a.printf("Paid total: %s\n", domain.FormatBRL(report.PaidTotalCents))
}
