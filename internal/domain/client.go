package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

type Client struct {
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Role      Role      `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}

// NewClient builds a client or admin record from its identifying data
func NewClient(name, cpf string, role Role) (*Client, error) {
	name = strings.TrimSpace(name)
	cpf = strings.TrimSpace(cpf)
	if name == "" || cpf == "" {
		return nil, fmt.Errorf("%w: name and cpf are required", ErrInvalidInput)
	}
	if role != RoleClient && role != RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return &Client{
		Name:      name,
		CPF:       cpf,
		Role:      role,
		CreatedOn: time.Now().UTC(),
	}, nil
}

func (c *Client) IsAdmin() bool { return c.Role == RoleAdmin }
