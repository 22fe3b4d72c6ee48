package cli

import (
	"context"
	"strings"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/service"
)

const inboxPageSize = 10

func (a *App) clientActions() []action {
	return []action{
		{"Book a vehicle", a.book},
		{"My contracts", a.myContracts},
		{"Pay a reservation", a.pay},
		{"Report an incident", a.reportIncident},
		{"Return a vehicle", a.returnVehicle},
		{"Rental history", a.history},
		{"Modify a reservation", a.modify},
		{"Cancel a reservation", a.cancel},
		{"Notifications", a.inbox},
		{"Logout", func(context.Context) error { return errLogout }},
	}
}

func (a *App) cpf() string {
	return a.session.Client.CPF
}

func (a *App) book(ctx context.Context) error {
	vehicles, err := a.svc.Vehicles.ListAvailable(ctx)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		a.println("No vehicles available at the moment.")
		return nil
	}

	a.println("Available vehicles:")
	for i := range vehicles {
		a.printf("%d. %s\n", i+1, vehicleLine(&vehicles[i]))
	}
	idx, err := a.chooseIndex("Vehicle number: ", len(vehicles))
	if err != nil {
		return err
	}
	days, err := a.readInt("Number of days: ")
	if err != nil {
		return err
	}

	v := vehicles[idx]
	quote, err := a.svc.Reservations.Quote(ctx, v.Plate, days)
	if err != nil {
		return err
	}
	r, err := a.svc.Reservations.Book(ctx, a.cpf(), v.Plate, days)
	if err != nil {
		return err
	}

	a.printf("Reservation %s created for %s (%s).\n", shortID(r.ID), r.VehicleModel, r.VehiclePlate)
	if quote.LongDurationDiscount > 0 {
		a.printf("Long rental discount: -%s\n", domain.FormatBRL(quote.LongDurationDiscount))
	}
	a.printf("Daily total: %s\n", domain.FormatBRL(r.DailyTotalCents))
	a.printf("Deposit: %s\n", domain.FormatBRL(r.DepositCents))
	a.printf("Amount due: %s\n", domain.FormatBRL(r.AmountDueCents()))
	return nil
}

func (a *App) myContracts(ctx context.Context) error {
	contracts, err := a.svc.Reservations.ContractsByCPF(ctx, a.cpf())
	if err != nil {
		return err
	}
	a.printContracts(contracts)
	return nil
}

// pickReservation lists the caller's reservations matching filter and
// asks for one. It returns nil when there is nothing to choose.
func (a *App) pickReservation(ctx context.Context, filter service.ReservationFilter, empty string) (*domain.Reservation, error) {
	list, err := a.svc.Reservations.ListByClient(ctx, a.cpf(), filter)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		a.println(empty)
		return nil, nil
	}
	for i := range list {
		a.printf("%d. %s\n", i+1, reservationLine(&list[i]))
	}
	idx, err := a.chooseIndex("Reservation number: ", len(list))
	if err != nil {
		return nil, err
	}
	return &list[idx], nil
}

func (a *App) pay(ctx context.Context) error {
	r, err := a.pickReservation(ctx, service.FilterUnpaid, "No pending payments.")
	if err != nil || r == nil {
		return err
	}

	code, err := a.readLine("Coupon code (leave blank for none): ")
	if err != nil {
		return err
	}
	preview, err := a.svc.Reservations.Pay(ctx, r.ID, service.PaymentRequest{CouponCode: code, Method: domain.PaymentCard}, a.svc.Coupons)
	if err != nil {
		return err
	}
	if preview.AlreadyPaid {
		a.println("This reservation has already been paid.")
		return nil
	}
	switch {
	case preview.CouponApplied:
		a.printf("Coupon applied: -%s\n", domain.FormatBRL(preview.CouponDiscountCents))
	case preview.CouponInvalid:
		a.println("Invalid or expired coupon. Continuing without discount.")
	}
	a.printf("Daily total: %s\n", domain.FormatBRL(preview.DiscountedDailyTotalCents))
	a.printf("Deposit: %s\n", domain.FormatBRL(preview.DepositCents))

	a.println("Payment methods:")
	for i, m := range domain.PaymentMethods {
		a.printf("%d. %s\n", i+1, m.Label())
	}
	var method domain.PaymentMethod
	if _, err := a.readUntil("Payment method: ", func(s string) error {
		var perr error
		method, perr = domain.ParsePaymentMethod(s)
		return perr
	}); err != nil {
		return err
	}

	req := service.PaymentRequest{CouponCode: code, Method: method}
	quote, err := a.svc.Reservations.Pay(ctx, r.ID, req, a.svc.Coupons)
	if err != nil {
		return err
	}
	a.printf("Amount to pay (%s): %s\n", method.Label(), domain.FormatBRL(quote.PayableCents))

	ok, err := a.readYesNo("Confirm payment?")
	if err != nil {
		return err
	}
	if !ok {
		a.println("Payment not confirmed. The reservation remains pending.")
		return nil
	}

	req.Confirm = true
	result, err := a.svc.Reservations.Pay(ctx, r.ID, req, a.svc.Coupons)
	if err != nil {
		return err
	}
	if result.AlreadyPaid {
		a.println("This reservation has already been paid.")
		return nil
	}
	a.printf("Payment of %s confirmed.\n", domain.FormatBRL(result.PayableCents))
	return nil
}

func (a *App) reportIncident(ctx context.Context) error {
	r, err := a.pickReservation(ctx, service.FilterOpen, "No active reservations.")
	if err != nil || r == nil {
		return err
	}
	desc, err := a.readLine("Describe the incident: ")
	if err != nil {
		return err
	}
	if _, err := a.svc.Reservations.ReportIncident(ctx, r.ID, desc); err != nil {
		return err
	}
	a.println("Incident recorded.")
	return nil
}

func (a *App) returnVehicle(ctx context.Context) error {
	r, err := a.pickReservation(ctx, service.FilterReturnable, "No paid reservations awaiting return.")
	if err != nil || r == nil {
		return err
	}

	var req service.ReturnRequest
	if req.Damaged, err = a.readYesNo("Was there any new damage?"); err != nil {
		return err
	}
	if req.Damaged {
		if req.DamageDescription, err = a.readUntil("Describe the damage: ", notBlank("damage description")); err != nil {
			return err
		}
	}

	rate, err := a.readYesNo("Would you like to rate the rental?")
	if err != nil {
		return err
	}
	if rate {
		var score int
		if _, err := a.readUntil("Rating (1-5): ", func(s string) error {
			n, perr := parseRating(s)
			score = n
			return perr
		}); err != nil {
			return err
		}
		req.Rating = &score
		if req.Comment, err = a.readLine("Comment (optional): "); err != nil {
			return err
		}
	}

	closed, err := a.svc.Reservations.Return(ctx, r.ID, req)
	if err != nil {
		return err
	}
	a.printf("Vehicle %s returned.\n", closed.VehiclePlate)
	if closed.DepositStatus == domain.DepositRetained {
		a.printf("Deposit of %s retained for damage.\n", domain.FormatBRL(closed.DepositCents))
	} else {
		a.printf("Deposit of %s refunded.\n", domain.FormatBRL(closed.DepositCents))
	}
	if closed.Rating != nil {
		a.println("Thank you for your feedback!")
	}
	return nil
}

func (a *App) history(ctx context.Context) error {
	list, err := a.svc.Reservations.History(ctx, a.cpf())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No rentals yet.")
		return nil
	}
	for i := range list {
		a.printReservation(&list[i])
	}
	return nil
}

func (a *App) modify(ctx context.Context) error {
	r, err := a.pickReservation(ctx, service.FilterUnpaid, "No reservations can be modified.")
	if err != nil || r == nil {
		return err
	}
	days, err := a.readInt("New number of days: ")
	if err != nil {
		return err
	}
	updated, err := a.svc.Reservations.Modify(ctx, r.ID, days)
	if err != nil {
		return err
	}
	a.printf("Reservation updated: %d day(s), daily total %s.\n", updated.Days, domain.FormatBRL(updated.DailyTotalCents))
	return nil
}

func (a *App) cancel(ctx context.Context) error {
	r, err := a.pickReservation(ctx, service.FilterUnpaid, "No reservations can be cancelled.")
	if err != nil || r == nil {
		return err
	}
	if err := a.svc.Reservations.Cancel(ctx, r.ID); err != nil {
		return err
	}
	a.printf("Reservation for %s cancelled. The vehicle is available again.\n", r.VehiclePlate)
	return nil
}

func (a *App) inbox(ctx context.Context) error {
	notes, total, err := a.svc.Notifications.GetNotifications(ctx, a.cpf(), 1, inboxPageSize)
	if err != nil {
		return err
	}
	if total == 0 {
		a.println("No notifications.")
		return nil
	}
	a.printf("Showing %d of %d notification(s):\n", len(notes), total)
	for _, n := range notes {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		a.printf("%s [%s] %s: %s\n", marker, n.CreatedOn.Format(dateTimeLayout), n.Title, n.Message)
		if !n.IsRead {
			if err := a.svc.Notifications.MarkAsRead(ctx, a.cpf(), n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return invalidf("%s cannot be empty", field)
		}
		return nil
	}
}
