package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avrental-backend/internal/api/cli"
	httpapi "avrental-backend/internal/api/http"
	"avrental-backend/internal/clock"
	"avrental-backend/internal/config"
	"avrental-backend/internal/jobs"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository/memory"
	"avrental-backend/internal/scheduler"
	"avrental-backend/internal/security"
	"avrental-backend/internal/service"
	"avrental-backend/internal/validator"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file (defaults apply when empty)")
	runOnce := flag.String("run-once", "", "Run a scheduled job once against the freshly seeded in-memory store and exit ('payment-reminders', 'fleet-snapshot', 'all')")
	flag.Parse()

	if *runOnce != "" && !isKnownJob(*runOnce) {
		fmt.Fprintf(os.Stderr, "Unknown job: %s\nAvailable jobs:\n", *runOnce)
		for _, name := range jobNames {
			fmt.Fprintf(os.Stderr, "  - %s\n", name)
		}
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AV Rental...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Rental configuration", "deposit_cents", cfg.Rental.DepositCents, "channels", cfg.Notification.Channels)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repositories
	store := memory.NewStore()
	clk := clock.NewSystem()
	validate := validator.New()

	// Initialize notification senders
	queueCtx, cancelQueue := context.WithCancel(context.Background())
	var queue *service.EmailQueue
	var senders []service.Sender
	if cfg.HasChannel(config.ChannelLog) {
		senders = append(senders, service.LogSender{})
	}
	if cfg.HasChannel(config.ChannelInbox) {
		senders = append(senders, service.NewInboxSender(store.NotificationRepository))
	}
	if cfg.HasChannel(config.ChannelEmail) {
		sg := cfg.Notification.SendGrid
		logger.Info("SendGrid configuration", "from", sg.FromEmail, "workers", sg.Workers, "queue_size", sg.QueueSize)
		mailer := service.NewSendGridMailer(sg.APIKey, sg.FromEmail, sg.FromName)
		queue = service.NewEmailQueue(mailer, sg.Workers, sg.QueueSize, sg.MaxRetries)
		queue.Start(queueCtx)
		senders = append(senders, service.NewEmailSender(queue, sg.Domain))
	}
	notifier := service.NewDispatcher(senders...)

	// Initialize Services
	clientSvc := service.NewClientService(store.ClientRepository, validate)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, validate, clk)
	couponSvc := service.NewCouponService(store.CouponRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.VehicleRepository,
		store.ClientRepository,
		notifier,
		clk,
		cfg.Rental.DepositCents,
	)

	if err := service.Seed(ctx, clientSvc, vehicleSvc, couponSvc); err != nil {
		logger.Error("Failed to seed data", "error", err)
		log.Fatalf("Failed to seed data: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	authSvc, err := service.NewAuthService(store.ClientRepository, tokenManager, cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Admin.Password)
	if err != nil {
		logger.Error("Failed to initialize auth service", "error", err)
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Reservation: reservationSvc,
		Vehicle:     vehicleSvc,
		Client:      clientSvc,
	}, notifier, clk, cfg)

	defer shutdownQueue(queue, cancelQueue)

	// Check if running a single job. The store only holds seed data here,
	// so payment-reminders finds nothing unpaid; it still exercises the wiring.
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	if cfg.Scheduler.Enabled {
		cronScheduler, err := scheduler.NewScheduler(jobRunner)
		if err != nil {
			logger.Error("Failed to initialize scheduler", "error", err)
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// Set up HTTP server for the report API
	if cfg.HTTP.Enabled {
		srv := &http.Server{
			Addr:              cfg.GetHTTPAddress(),
			Handler:           httpapi.NewRouter(httpapi.NewReportHandler(reservationSvc, vehicleSvc), tokenManager),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("HTTP report API listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", "error", err)
			}
		}()
	}

	app := cli.New(cli.Services{
		Auth:          authSvc,
		Clients:       clientSvc,
		Vehicles:      vehicleSvc,
		Coupons:       couponSvc,
		Reservations:  reservationSvc,
		Notifications: noteSvc,
	}, os.Stdin, os.Stdout)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Terminal session ended with error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Interrupt received, shutting down...")
	}
	logger.Info("AV Rental stopped. Goodbye!")
}

var jobNames = []string{"payment-reminders", "fleet-snapshot", "all"}

func isKnownJob(name string) bool {
	for _, n := range jobNames {
		if n == name {
			return true
		}
	}
	return false
}

// runJobOnce runs a specific job once. It reports false for unknown names.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "payment-reminders":
		jobRunner.SendPendingPaymentReminders()
	case "fleet-snapshot":
		jobRunner.LogFleetSnapshot()
	case "all":
		jobRunner.RunAll()
	default:
		return false
	}
	return true
}

// shutdownQueue delivers what is still queued, then stops the workers
func shutdownQueue(queue *service.EmailQueue, cancel context.CancelFunc) {
	if queue == nil {
		cancel()
		return
	}
	logger.Info("Flushing email queue...")
	queue.Flush()
	cancel()
	queue.Wait()
}
