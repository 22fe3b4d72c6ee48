package memory

import (
	"context"
	"fmt"
	"sync"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	mu    sync.RWMutex
	notes []domain.Notification
}

func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	r.notes = append(r.notes, *note)
	return nil
}

// ListByClient returns the newest notifications first, with the total count
func (r *notificationRepository) ListByClient(ctx context.Context, cpf string, limit, offset int) ([]domain.Notification, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var mine []domain.Notification
	for i := len(r.notes) - 1; i >= 0; i-- {
		if r.notes[i].ClientCPF == cpf {
			mine = append(mine, r.notes[i])
		}
	}
	total := len(mine)
	if offset >= total {
		return []domain.Notification{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return mine[offset:end], total, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID, cpf string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notes {
		if r.notes[i].ID == id && r.notes[i].ClientCPF == cpf {
			r.notes[i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
}
