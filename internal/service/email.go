package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"avrental-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrEmailQueueFull = errors.New("email queue is full")

type EmailMessage struct {
	To        string
	ToName    string
	Subject   string
	PlainText string
}

// Mailer is any email backend
type Mailer interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// WithBaseURL points the client at another host, e.g. a local mock
func (s *SendGridMailer) WithBaseURL(baseURL string) *SendGridMailer {
	s.baseURL = baseURL
	return s
}

func (s *SendGridMailer) SendEmail(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, recipient, msg.PlainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	if s.baseURL != "" {
		client.Request.BaseURL = s.baseURL + "/v3/mail/send"
	}

	logger.ExternalServiceCall("sendgrid", "send", "to", msg.To)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
	} else if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", msg.To)
	return err
}

// EmailJob is an email waiting in the queue
type EmailJob struct {
	ID        string
	Message   EmailMessage
	Retries   int
	CreatedAt time.Time
}

// EmailQueue sends emails asynchronously with a fixed worker pool and retries
type EmailQueue struct {
	mailer     Mailer
	jobs       chan EmailJob
	maxRetries int
	workers    int
	backoff    func(attempt int) time.Duration
	wg         sync.WaitGroup
	pending    sync.WaitGroup
}

func NewEmailQueue(mailer Mailer, workers, queueSize, maxRetries int) *EmailQueue {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &EmailQueue{
		mailer:     mailer,
		jobs:       make(chan EmailJob, queueSize),
		maxRetries: maxRetries,
		workers:    workers,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt*attempt) * time.Second
		},
	}
}

// WithBackoff replaces the retry delay, attempt starts at 1
func (q *EmailQueue) WithBackoff(backoff func(attempt int) time.Duration) *EmailQueue {
	q.backoff = backoff
	return q
}

// Start begins processing emails until ctx is cancelled
func (q *EmailQueue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
}

// Wait blocks until every worker has stopped
func (q *EmailQueue) Wait() {
	q.wg.Wait()
}

// Flush blocks until every enqueued job was sent or given up on
func (q *EmailQueue) Flush() {
	q.pending.Wait()
}

func (q *EmailQueue) worker(ctx context.Context, id int) {
	defer q.wg.Done()
	logger.Debug("Email worker started", "worker", id)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Email worker stopping", "worker", id)
			return
		case job := <-q.jobs:
			q.processJob(ctx, job)
		}
	}
}

func (q *EmailQueue) processJob(ctx context.Context, job EmailJob) {
	err := q.mailer.SendEmail(ctx, job.Message)
	if err == nil {
		logger.Debug("Email sent", "job_id", job.ID, "to", job.Message.To)
		q.pending.Done()
		return
	}

	if job.Retries >= q.maxRetries || ctx.Err() != nil {
		logger.Error("Email dropped", "job_id", job.ID, "to", job.Message.To, "retries", job.Retries, "error", err)
		q.pending.Done()
		return
	}

	job.Retries++
	backoff := q.backoff(job.Retries)
	logger.Warn("Retrying email", "job_id", job.ID, "attempt", job.Retries, "max_retries", q.maxRetries, "backoff", backoff, "error", err)
	time.AfterFunc(backoff, func() {
		select {
		case q.jobs <- job:
		default:
			logger.Error("Email dropped, queue full on retry", "job_id", job.ID)
			q.pending.Done()
		}
	})
}

// Enqueue adds an email without blocking
func (q *EmailQueue) Enqueue(msg EmailMessage) error {
	job := EmailJob{
		ID:        uuid.NewString(),
		Message:   msg,
		CreatedAt: time.Now(),
	}

	q.pending.Add(1)
	select {
	case q.jobs <- job:
		return nil
	default:
		q.pending.Done()
		return ErrEmailQueueFull
	}
}

// EmailSender delivers notifications through the email queue. Clients
// register by CPF only, so the address is derived from it.
type EmailSender struct {
	queue           *EmailQueue
	recipientDomain string
}

func NewEmailSender(queue *EmailQueue, recipientDomain string) *EmailSender {
	return &EmailSender{queue: queue, recipientDomain: recipientDomain}
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, msg Message) error {
	return s.queue.Enqueue(EmailMessage{
		To:        fmt.Sprintf("%s@%s", msg.ClientCPF, s.recipientDomain),
		ToName:    msg.ClientName,
		Subject:   fmt.Sprintf("AV Rental Car - %s", msg.Title),
		PlainText: msg.Body + "\n\nAV Rental Car",
	})
}
