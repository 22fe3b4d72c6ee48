package memory

import (
	"context"
	"fmt"
	"sync"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/repository"
)

type clientRepository struct {
	mu      sync.RWMutex
	clients []domain.Client
	byCPF   map[string]int
}

func NewClientRepository() repository.ClientRepository {
	return &clientRepository{byCPF: make(map[string]int)}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCPF[c.CPF]; ok {
		return fmt.Errorf("cpf %s: %w", c.CPF, domain.ErrDuplicateKey)
	}
	r.byCPF[c.CPF] = len(r.clients)
	r.clients = append(r.clients, *c)
	return nil
}

func (r *clientRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byCPF[cpf]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", cpf, domain.ErrNotFound)
	}
	c := r.clients[idx]
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Client(nil), r.clients...), nil
}
