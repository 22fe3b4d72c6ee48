package jobs

import (
	"avrental-backend/internal/clock"
	"avrental-backend/internal/config"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	notifier service.Notifier
	clock    clock.Clock
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reservation service.ReservationService
	Vehicle     service.VehicleService
	Client      service.ClientService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, notifier service.Notifier, clk clock.Clock, cfg *config.Config) *JobRunner {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &JobRunner{
		services: services,
		notifier: notifier,
		clock:    clk,
		config:   cfg,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendPendingPaymentReminders()
	jr.LogFleetSnapshot()
}
