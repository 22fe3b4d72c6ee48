package cli

import (
	"context"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/service"
)

func (a *App) adminActions() []action {
	return []action{
		{"Register client", a.registerClient},
		{"Register vehicle", a.registerVehicle},
		{"List vehicles", a.listVehicles},
		{"Contracts by CPF", a.contractsByCPF},
		{"Record maintenance", a.recordMaintenance},
		{"Incidents by plate", a.incidentsByPlate},
		{"Maintenance by plate", a.maintenanceByPlate},
		{"List clients", a.listClients},
		{"Reports", a.reports},
		{"Manage coupons", a.manageCoupons},
		{"Track vehicle (simulated GPS)", a.trackVehicle},
		{"Show API token", a.showToken},
		{"Logout", func(context.Context) error { return errLogout }},
	}
}

func (a *App) registerClient(ctx context.Context) error {
	name, err := a.readLine("Client name: ")
	if err != nil {
		return err
	}
	cpf, err := a.readLine("Client CPF (11 digits): ")
	if err != nil {
		return err
	}
	c, err := a.svc.Clients.Register(ctx, name, cpf)
	if err != nil {
		return err
	}
	a.printf("Client %s (%s) registered.\n", c.Name, c.CPF)
	return nil
}

func (a *App) registerVehicle(ctx context.Context) error {
	model, err := a.readLine("Model: ")
	if err != nil {
		return err
	}
	plate, err := a.readLine("Plate: ")
	if err != nil {
		return err
	}
	year, err := a.readInt("Year: ")
	if err != nil {
		return err
	}
	rate, err := a.readLine("Daily rate (R$): ")
	if err != nil {
		return err
	}
	cents, err := domain.ParseBRL(rate)
	if err != nil {
		return err
	}

	v, err := a.svc.Vehicles.Register(ctx, service.RegisterVehicleRequest{
		Plate:          plate,
		Model:          model,
		Year:           year,
		DailyRateCents: cents,
	})
	if err != nil {
		return err
	}
	a.printf("Vehicle %s registered.\n", vehicleLine(v))
	return nil
}

func (a *App) listVehicles(ctx context.Context) error {
	vehicles, err := a.svc.Vehicles.List(ctx)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		a.println("No vehicles registered.")
		return nil
	}
	for i := range vehicles {
		status := "available"
		if !vehicles[i].Available {
			status = "rented"
		}
		a.printf("- %s [%s]\n", vehicleLine(&vehicles[i]), status)
	}
	return nil
}

func (a *App) contractsByCPF(ctx context.Context) error {
	cpf, err := a.readLine("Client CPF: ")
	if err != nil {
		return err
	}
	contracts, err := a.svc.Reservations.ContractsByCPF(ctx, cpf)
	if err != nil {
		return err
	}
	a.printContracts(contracts)
	return nil
}

func (a *App) recordMaintenance(ctx context.Context) error {
	plate, err := a.readLine("Plate: ")
	if err != nil {
		return err
	}
	desc, err := a.readLine("Service description: ")
	if err != nil {
		return err
	}
	date, err := a.readLine("Date (dd/mm/yyyy): ")
	if err != nil {
		return err
	}
	cost, err := a.readLine("Cost (R$): ")
	if err != nil {
		return err
	}
	cents, err := domain.ParseBRL(cost)
	if err != nil {
		return err
	}
	if err := a.svc.Vehicles.RecordMaintenance(ctx, plate, desc, date, cents); err != nil {
		return err
	}
	a.println("Maintenance recorded.")
	return nil
}

func (a *App) incidentsByPlate(ctx context.Context) error {
	plate, err := a.readLine("Plate: ")
	if err != nil {
		return err
	}
	if _, err := a.svc.Vehicles.Get(ctx, plate); err != nil {
		return err
	}
	groups, err := a.svc.Reservations.IncidentsByPlate(ctx, plate)
	if err != nil {
		return err
	}
	printed := 0
	for _, g := range groups {
		if len(g.Incidents) == 0 {
			continue
		}
		printed++
		a.printf("Reservation %s (client %s):\n", shortID(g.ReservationID), g.ClientCPF)
		for _, inc := range g.Incidents {
			a.printf("  - %s: %s\n", inc.Date.Format(dateLayout), inc.Description)
		}
	}
	if printed == 0 {
		a.println("No incidents recorded for this vehicle.")
	}
	return nil
}

func (a *App) maintenanceByPlate(ctx context.Context) error {
	plate, err := a.readLine("Plate: ")
	if err != nil {
		return err
	}
	entries, err := a.svc.Vehicles.ListMaintenance(ctx, plate)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.println("No maintenance recorded for this vehicle.")
		return nil
	}
	a.printMaintenance(entries)
	return nil
}

func (a *App) listClients(ctx context.Context) error {
	clients, err := a.svc.Clients.List(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		a.println("No clients registered.")
		return nil
	}
	for _, c := range clients {
		a.printf("- %s (%s)\n", c.Name, c.CPF)
	}
	return nil
}

func (a *App) trackVehicle(ctx context.Context) error {
	plate, err := a.readLine("Plate: ")
	if err != nil {
		return err
	}
	v, err := a.svc.Vehicles.Track(ctx, plate)
	if err != nil {
		return err
	}
	a.printf("Current location of %s (%s): %s\n", v.Model, v.Plate, v.Position())
	a.println("(Note: this is a simulation.)")
	return nil
}

func (a *App) reports(ctx context.Context) error {
	a.println("1. Fleet statistics")
	a.println("2. Maintenance history")
	a.println("3. Payment control")
	a.println("0. Back")
	choice, err := a.readLine("Choose a report: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		stats, err := a.svc.Vehicles.FleetStats(ctx)
		if err != nil {
			return err
		}
		a.printf("Total vehicles: %d\nAvailable: %d\nRented: %d\n", stats.Total, stats.Available, stats.Rented)
	case "2":
		history, err := a.svc.Vehicles.MaintenanceHistory(ctx)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			a.println("No maintenance recorded.")
		}
		for _, vm := range history {
			a.printf("%s (%s):\n", vm.Model, vm.Plate)
			a.printMaintenance(vm.Entries)
		}
	case "3":
		report, err := a.svc.Reservations.PaymentReport(ctx)
		if err != nil {
			return err
		}
		a.printPaymentReport(report)
	case "0":
	default:
		a.println("Invalid option.")
	}
	return nil
}

func (a *App) manageCoupons(ctx context.Context) error {
	for {
		coupons, err := a.svc.Coupons.List(ctx)
		if err != nil {
			return err
		}
		a.println("Active coupons:")
		if len(coupons) == 0 {
			a.println("  (none)")
		}
		for i := range coupons {
			a.printf("  - %s\n", coupons[i].String())
		}

		a.println("1. Add coupon")
		a.println("2. Remove coupon")
		a.println("0. Back")
		choice, err := a.readLine("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.addCoupon(ctx)
		case "2":
			err = a.removeCoupon(ctx)
		case "0":
			return nil
		default:
			a.println("Invalid option.")
		}
		if err := a.report(err); err != nil {
			return err
		}
	}
}

func (a *App) addCoupon(ctx context.Context) error {
	code, err := a.readLine("Code: ")
	if err != nil {
		return err
	}
	kindIn, err := a.readLine("Kind (percentage/fixed): ")
	if err != nil {
		return err
	}
	kind, err := domain.ParseCouponKind(kindIn)
	if err != nil {
		return err
	}

	var value int64
	if kind == domain.CouponKindPercentage {
		pct, err := a.readInt("Percentage (1-100): ")
		if err != nil {
			return err
		}
		value = int64(pct)
	} else {
		amount, err := a.readLine("Amount (R$): ")
		if err != nil {
			return err
		}
		if value, err = domain.ParseBRL(amount); err != nil {
			return err
		}
	}

	c, err := a.svc.Coupons.Add(ctx, code, kind, value)
	if err != nil {
		return err
	}
	a.printf("Coupon %s added.\n", c.String())
	return nil
}

func (a *App) removeCoupon(ctx context.Context) error {
	code, err := a.readLine("Code to remove: ")
	if err != nil {
		return err
	}
	if err := a.svc.Coupons.Remove(ctx, code); err != nil {
		return err
	}
	a.printf("Coupon %s removed.\n", domain.NormalizeCouponCode(code))
	return nil
}

func (a *App) showToken(context.Context) error {
	if a.session.Token == "" {
		a.println("No API token issued for this session.")
		return nil
	}
	a.println("Use this bearer token for the report API:")
	a.println(a.session.Token)
	return nil
}
