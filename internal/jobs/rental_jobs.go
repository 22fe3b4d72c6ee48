package jobs

import (
	"context"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
)

// LogFleetSnapshot logs fleet utilisation and payment totals
func (jr *JobRunner) LogFleetSnapshot() {
	jr.runWithRecovery("LogFleetSnapshot", func() {
		ctx := context.Background()

		stats, err := jr.services.Vehicle.FleetStats(ctx)
		if err != nil {
			logger.Error("Failed to compute fleet stats", "error", err)
			return
		}
		report, err := jr.services.Reservation.PaymentReport(ctx)
		if err != nil {
			logger.Error("Failed to build payment report", "error", err)
			return
		}

		logger.Info("Fleet snapshot",
			"vehicles_total", stats.Total,
			"vehicles_available", stats.Available,
			"vehicles_rented", stats.Rented,
			"payments_pending", len(report.Pending),
			"payments_pending_total", domain.FormatBRL(report.PendingTotalCents),
			"payments_paid", len(report.Paid),
			"payments_paid_total", domain.FormatBRL(report.PaidTotalCents))
	})
}
