package service

import (
	"context"
	"fmt"
	"strings"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository"
	"avrental-backend/internal/security"
	"avrental-backend/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

// AdminCPF identifies the built-in admin account
const AdminCPF = "00000000000"

// Session is the logged-in actor. Token is only issued for admins and
// authorizes the report API.
type Session struct {
	Client *domain.Client
	Token  string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Client != nil && s.Client.IsAdmin()
}

type authService struct {
	clientRepo    repository.ClientRepository
	tokens        security.TokenManager
	adminUsername string
	adminHash     []byte
}

// NewAuthService builds the login flow. passwordHash is a bcrypt hash; when
// empty the plain password is hashed once here.
func NewAuthService(clientRepo repository.ClientRepository, tokens security.TokenManager, adminUsername, passwordHash, password string) (AuthService, error) {
	hash := []byte(passwordHash)
	if passwordHash == "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	}
	return &authService{
		clientRepo:    clientRepo,
		tokens:        tokens,
		adminUsername: adminUsername,
		adminHash:     hash,
	}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) != s.adminUsername {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		logger.Warn("Admin login rejected", "username", username)
		return nil, ErrInvalidCredentials
	}

	admin, err := domain.NewClient("Administrator", AdminCPF, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.GenerateAdminToken(s.adminUsername, admin.CPF)
	if err != nil {
		return nil, fmt.Errorf("failed to issue admin token: %w", err)
	}

	logger.Info("Admin logged in", "username", username)
	return &Session{Client: admin, Token: token}, nil
}

func (s *authService) LoginClient(ctx context.Context, cpf string) (*Session, error) {
	cpf = strings.TrimSpace(cpf)
	if !validator.IsCPF(cpf) {
		return nil, fmt.Errorf("%w: cpf must have 11 digits", domain.ErrInvalidInput)
	}
	client, err := s.clientRepo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	logger.Info("Client logged in", "cpf", cpf)
	return &Session{Client: client}, nil
}
