package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository"

	"github.com/google/uuid"
)

// Message is a formatted lifecycle event ready for delivery
type Message struct {
	Type       domain.NotificationType
	ClientCPF  string
	ClientName string
	Title      string
	Body       string
	Attributes map[string]string
	CreatedOn  time.Time
}

// Sender delivers a message over one channel
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans messages out to every sender. A failing sender is logged
// and never affects the others or the caller.
type Dispatcher struct {
	senders []Sender
}

func NewDispatcher(senders ...Sender) *Dispatcher {
	return &Dispatcher{senders: senders}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	for _, s := range d.senders {
		if err := s.Send(ctx, msg); err != nil {
			logger.Warn("Notification delivery failed",
				"sender", s.Name(),
				"type", msg.Type,
				"cpf", msg.ClientCPF,
				"error", err)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Dispatch(context.Context, Message) {}

// LogSender writes messages to the structured log
type LogSender struct{}

func (LogSender) Name() string { return "log" }

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.InfoContext(ctx, "Notification",
		"type", msg.Type,
		"cpf", msg.ClientCPF,
		"title", msg.Title,
		"body", msg.Body)
	return nil
}

// InboxSender stores messages as in-app notifications
type InboxSender struct {
	repo repository.NotificationRepository
}

func NewInboxSender(repo repository.NotificationRepository) *InboxSender {
	return &InboxSender{repo: repo}
}

func (s *InboxSender) Name() string { return "inbox" }

func (s *InboxSender) Send(ctx context.Context, msg Message) error {
	note := &domain.Notification{
		ID:         uuid.New(),
		ClientCPF:  msg.ClientCPF,
		Type:       msg.Type,
		Title:      msg.Title,
		Message:    msg.Body,
		Attributes: msg.Attributes,
		CreatedOn:  msg.CreatedOn,
	}
	return s.repo.Create(ctx, note)
}

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, cpf string, page, pageSize int) ([]domain.Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.ListByClient(ctx, cpf, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, cpf string, notificationID uuid.UUID) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, cpf)
}

// Message builders

func reservationAttributes(r *domain.Reservation) map[string]string {
	return map[string]string{
		"reservation_id": r.ID.String(),
		"plate":          r.VehiclePlate,
		"model":          r.VehicleModel,
		"days":           strconv.Itoa(r.Days),
	}
}

func newMessage(typ domain.NotificationType, r *domain.Reservation, clientName, title, body string, now time.Time) Message {
	return Message{
		Type:       typ,
		ClientCPF:  r.ClientCPF,
		ClientName: clientName,
		Title:      title,
		Body:       body,
		Attributes: reservationAttributes(r),
		CreatedOn:  now,
	}
}

func bookedMessage(r *domain.Reservation, clientName string, now time.Time) Message {
	body := fmt.Sprintf("Hello %s, your reservation of the %s (%s) for %d days is confirmed. Daily total: %s. Deposit: %s.",
		clientName, r.VehicleModel, r.VehiclePlate, r.Days,
		domain.FormatBRL(r.DailyTotalCents), domain.FormatBRL(r.DepositCents))
	return newMessage(domain.NotificationReservationBooked, r, clientName, "Reservation confirmed", body, now)
}

func modifiedMessage(r *domain.Reservation, clientName string, now time.Time) Message {
	body := fmt.Sprintf("Your reservation of the %s (%s) now covers %d days. New daily total: %s.",
		r.VehicleModel, r.VehiclePlate, r.Days, domain.FormatBRL(r.DailyTotalCents))
	return newMessage(domain.NotificationReservationModified, r, clientName, "Reservation modified", body, now)
}

func cancelledMessage(r *domain.Reservation, clientName string, now time.Time) Message {
	body := fmt.Sprintf("Your reservation of the %s (%s) was cancelled.", r.VehicleModel, r.VehiclePlate)
	return newMessage(domain.NotificationReservationCancelled, r, clientName, "Reservation cancelled", body, now)
}

func paymentMessage(r *domain.Reservation, clientName string, now time.Time) Message {
	body := fmt.Sprintf("Payment of %s received for the %s (%s) via %s.",
		domain.FormatBRL(r.PayableCents), r.VehicleModel, r.VehiclePlate, r.PaymentMethod.Label())
	msg := newMessage(domain.NotificationPaymentProcessed, r, clientName, "Payment processed", body, now)
	msg.Attributes["payable_cents"] = strconv.FormatInt(r.PayableCents, 10)
	msg.Attributes["method"] = string(r.PaymentMethod)
	if r.CouponCode != "" {
		msg.Attributes["coupon"] = r.CouponCode
	}
	return msg
}

func incidentMessage(r *domain.Reservation, clientName string, incident domain.Incident, now time.Time) Message {
	body := fmt.Sprintf("Incident recorded on %s for the %s (%s): %s",
		incident.Date.Format(domain.MaintenanceDateLayout), r.VehicleModel, r.VehiclePlate, incident.Description)
	return newMessage(domain.NotificationIncidentReported, r, clientName, "Incident reported", body, now)
}

func returnedMessage(r *domain.Reservation, clientName string, now time.Time) Message {
	deposit := "refunded in full"
	if r.DepositStatus == domain.DepositRetained {
		deposit = "retained to cover damages"
	}
	body := fmt.Sprintf("The %s (%s) was returned. Deposit of %s %s.",
		r.VehicleModel, r.VehiclePlate, domain.FormatBRL(r.DepositCents), deposit)
	msg := newMessage(domain.NotificationVehicleReturned, r, clientName, "Vehicle returned", body, now)
	msg.Attributes["deposit_status"] = string(r.DepositStatus)
	return msg
}

// PaymentReminderMessage asks the client to settle an unpaid reservation
func PaymentReminderMessage(r *domain.Reservation, clientName string, now time.Time) Message {
	body := fmt.Sprintf("Your reservation of the %s (%s) is awaiting payment of %s.",
		r.VehicleModel, r.VehiclePlate, domain.FormatBRL(r.AmountDueCents()))
	return newMessage(domain.NotificationPaymentReminder, r, clientName, "Payment pending", body, now)
}
