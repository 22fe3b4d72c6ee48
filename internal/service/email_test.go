package service_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func noBackoff(int) time.Duration { return time.Millisecond }

func TestEmailQueue_DeliversAndRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := new(MockMailer)
	mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(m service.EmailMessage) bool { return m.To == "ok@x" })).Return(nil).Once()
	mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(m service.EmailMessage) bool { return m.To == "flaky@x" })).Return(assert.AnError).Twice()
	mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(m service.EmailMessage) bool { return m.To == "flaky@x" })).Return(nil).Once()

	queue := service.NewEmailQueue(mailer, 2, 10, 3).WithBackoff(noBackoff)
	queue.Start(ctx)

	require.NoError(t, queue.Enqueue(service.EmailMessage{To: "ok@x", Subject: "hi"}))
	require.NoError(t, queue.Enqueue(service.EmailMessage{To: "flaky@x", Subject: "hi"}))
	queue.Flush()

	mailer.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "SendEmail", 4)

	cancel()
	queue.Wait()
}

func TestEmailQueue_GivesUpAfterMaxRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := new(MockMailer)
	mailer.On("SendEmail", mock.Anything, mock.Anything).Return(assert.AnError)

	queue := service.NewEmailQueue(mailer, 1, 10, 2).WithBackoff(noBackoff)
	queue.Start(ctx)
	require.NoError(t, queue.Enqueue(service.EmailMessage{To: "down@x"}))
	queue.Flush()

	mailer.AssertNumberOfCalls(t, "SendEmail", 3)
}

func TestEmailQueue_Full(t *testing.T) {
	// Not started, so nothing drains the buffer
	queue := service.NewEmailQueue(new(MockMailer), 1, 1, 0)
	require.NoError(t, queue.Enqueue(service.EmailMessage{To: "a@x"}))
	assert.ErrorIs(t, queue.Enqueue(service.EmailMessage{To: "b@x"}), service.ErrEmailQueueFull)
}

func TestEmailSender_Send(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := new(MockMailer)
	mailer.On("SendEmail", mock.Anything, mock.Anything).Return(nil)
	queue := service.NewEmailQueue(mailer, 1, 10, 0)
	queue.Start(ctx)

	sender := service.NewEmailSender(queue, "clients.test")
	err := sender.Send(ctx, service.Message{
		Type:       domain.NotificationReservationBooked,
		ClientCPF:  "12345678900",
		ClientName: "Arthur Alves",
		Title:      "Reservation confirmed",
		Body:       "Your reservation is confirmed.",
	})
	require.NoError(t, err)
	queue.Flush()

	sent := mailer.Calls[0].Arguments.Get(1).(service.EmailMessage)
	assert.Equal(t, "12345678900@clients.test", sent.To)
	assert.Equal(t, "Arthur Alves", sent.ToName)
	assert.Equal(t, "AV Rental Car - Reservation confirmed", sent.Subject)
	assert.Contains(t, sent.PlainText, "Your reservation is confirmed.")
}

func TestSendGridMailer(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	status := http.StatusAccepted

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	mailer := service.NewSendGridMailer("SG.test-key", "reservas@avrental.local", "AV Rental Car").WithBaseURL(srv.URL)
	msg := service.EmailMessage{To: "12345678900@clients.test", ToName: "Arthur", Subject: "Payment processed", PlainText: "paid"}

	require.NoError(t, mailer.SendEmail(context.Background(), msg))
	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Bearer SG.test-key", gotAuth)
	assert.Equal(t, "Payment processed", gotBody["subject"])

	status = http.StatusUnauthorized
	assert.Error(t, mailer.SendEmail(context.Background(), msg))
}
