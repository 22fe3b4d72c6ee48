package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/service"
	"avrental-backend/internal/validator"
)

// Services are the operations the terminal front end drives
type Services struct {
	Auth          service.AuthService
	Clients       service.ClientService
	Vehicles      service.VehicleService
	Coupons       service.CouponService
	Reservations  service.ReservationService
	Notifications service.NotificationService
}

var (
	errLogout = errors.New("logout")
	errExit   = errors.New("exit")
)

type action struct {
	label string
	run   func(ctx context.Context) error
}

// App is the interactive rental desk. It reads commands line by line from
// in and writes prompts and results to out.
type App struct {
	svc     Services
	in      *bufio.Scanner
	out     io.Writer
	session *service.Session
}

func New(svc Services, in io.Reader, out io.Writer) *App {
	return &App{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run shows the login screen and the role menus until the user exits,
// the input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.println("=== AV Rental ===")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var err error
		if a.session == nil {
			err = a.loginScreen(ctx)
		} else if a.session.IsAdmin() {
			err = a.menu(ctx, "ADMIN MENU", a.adminActions())
		} else {
			err = a.menu(ctx, "CLIENT MENU", a.clientActions())
		}

		switch {
		case err == nil:
		case errors.Is(err, errLogout):
			a.session = nil
			a.println("Logged out.")
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			a.println("Goodbye!")
			return nil
		default:
			return err
		}
	}
}

func (a *App) loginScreen(ctx context.Context) error {
	a.println("")
	a.println("1. Login")
	a.println("2. Register")
	a.println("0. Exit")
	choice, err := a.readLine("Choose an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.report(a.login(ctx))
	case "2":
		return a.report(a.registerSelf(ctx))
	case "0":
		return errExit
	}
	a.println("Invalid option.")
	return nil
}

func (a *App) login(ctx context.Context) error {
	user, err := a.readLine("CPF (or admin user): ")
	if err != nil {
		return err
	}

	var session *service.Session
	if validator.IsCPF(user) {
		session, err = a.svc.Auth.LoginClient(ctx, user)
	} else {
		var password string
		if password, err = a.readLine("Password: "); err != nil {
			return err
		}
		session, err = a.svc.Auth.LoginAdmin(ctx, user, password)
	}
	if err != nil {
		return err
	}

	a.session = session
	a.printf("Welcome, %s!\n", session.Client.Name)
	return nil
}

func (a *App) registerSelf(ctx context.Context) error {
	name, err := a.readLine("Full name: ")
	if err != nil {
		return err
	}
	cpf, err := a.readLine("CPF (11 digits): ")
	if err != nil {
		return err
	}
	client, err := a.svc.Clients.Register(ctx, name, cpf)
	if err != nil {
		return err
	}
	a.printf("Client %s registered. You can now log in with CPF %s.\n", client.Name, client.CPF)
	return nil
}

// menu shows one round of a numbered menu. The last entry is always logout.
func (a *App) menu(ctx context.Context, title string, actions []action) error {
	a.println("")
	a.printf("=== %s ===\n", title)
	for i, act := range actions {
		a.printf("%d. %s\n", i+1, act.label)
	}
	choice, err := a.readLine("Choose an option: ")
	if err != nil {
		return err
	}

	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(actions) {
		a.println("Invalid option.")
		return nil
	}
	logger.Debug("Menu option selected", "menu", title, "option", actions[n-1].label)
	return a.report(actions[n-1].run(ctx))
}

// report prints domain failures and keeps the session going. Only input
// exhaustion and control flow errors escape.
func (a *App) report(err error) error {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, errLogout) || errors.Is(err, errExit) {
		return err
	}
	logger.Debug("Operation failed", "error", err)
	a.println(userMessage(err))
	return nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, domain.ErrAlreadyPaid):
		return "This reservation has already been paid."
	case errors.Is(err, domain.ErrNotPaid):
		return "Please complete the payment before returning the vehicle."
	case errors.Is(err, domain.ErrVehicleUnavailable):
		return "Vehicle unavailable."
	case errors.Is(err, domain.ErrReservationClosed):
		return "This reservation is already closed."
	case errors.Is(err, domain.ErrAlreadyRated):
		return "This reservation has already been rated."
	case errors.Is(err, domain.ErrDuplicateKey):
		return "Record already exists: " + err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "Not found: " + err.Error()
	}
	return "Error: " + err.Error()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) readLine(prompt string) (string, error) {
	a.printf("%s", prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) readInt(prompt string) (int, error) {
	s, err := a.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, s)
	}
	return n, nil
}

func (a *App) readYesNo(prompt string) (bool, error) {
	for {
		s, err := a.readLine(prompt + " (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes", "s", "sim":
			return true, nil
		case "n", "no", "nao", "não":
			return false, nil
		}
		a.println("Please answer y or n.")
	}
}

// readUntil re-prompts until parse accepts the line
func (a *App) readUntil(prompt string, parse func(string) error) (string, error) {
	for {
		s, err := a.readLine(prompt)
		if err != nil {
			return "", err
		}
		if err := parse(s); err != nil {
			a.println(userMessage(err))
			continue
		}
		return s, nil
	}
}

func (a *App) chooseIndex(prompt string, n int) (int, error) {
	i, err := a.readInt(prompt)
	if err != nil {
		return 0, err
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: option %d does not exist", domain.ErrInvalidInput, i)
	}
	return i - 1, nil
}
