package jobs

import (
	"context"

	"avrental-backend/internal/logger"
	"avrental-backend/internal/service"
)

// SendPendingPaymentReminders notifies every client holding an unpaid, open reservation
func (jr *JobRunner) SendPendingPaymentReminders() {
	jr.runWithRecovery("SendPendingPaymentReminders", func() {
		ctx := context.Background()

		report, err := jr.services.Reservation.PaymentReport(ctx)
		if err != nil {
			logger.Error("Failed to build payment report", "error", err)
			return
		}

		now := jr.clock.Now()
		count := 0
		for _, entry := range report.Pending {
			r, err := jr.services.Reservation.Get(ctx, entry.ReservationID)
			if err != nil {
				// Cancelled between the report and now
				logger.Warn("Skipping reminder", "reservation_id", entry.ReservationID, "error", err)
				continue
			}

			name := r.ClientCPF
			if client, err := jr.services.Client.Get(ctx, r.ClientCPF); err == nil {
				name = client.Name
			}

			jr.notifier.Dispatch(ctx, service.PaymentReminderMessage(r, name, now))
			count++
		}

		logger.Info("Pending payment reminders sent", "count", count)
	})
}
