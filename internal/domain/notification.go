package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationReservationBooked    NotificationType = "RESERVATION_BOOKED"
	NotificationReservationModified  NotificationType = "RESERVATION_MODIFIED"
	NotificationReservationCancelled NotificationType = "RESERVATION_CANCELLED"
	NotificationPaymentProcessed     NotificationType = "PAYMENT_PROCESSED"
	NotificationIncidentReported     NotificationType = "INCIDENT_REPORTED"
	NotificationVehicleReturned      NotificationType = "VEHICLE_RETURNED"
	NotificationPaymentReminder      NotificationType = "PAYMENT_REMINDER"
)

type Notification struct {
	ID         uuid.UUID         `json:"id"`
	ClientCPF  string            `json:"client_cpf"`
	Type       NotificationType  `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  time.Time         `json:"created_on"`
}
