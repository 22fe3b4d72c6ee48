package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/repository"

	playground "github.com/go-playground/validator/v10"
)

type registerClientInput struct {
	Name string `validate:"notblank,personname"`
	CPF  string `validate:"cpf"`
}

type clientService struct {
	repo     repository.ClientRepository
	validate *playground.Validate
}

func NewClientService(repo repository.ClientRepository, v *playground.Validate) ClientService {
	return &clientService{repo: repo, validate: v}
}

func (s *clientService) Register(ctx context.Context, name, cpf string) (*domain.Client, error) {
	in := registerClientInput{Name: strings.TrimSpace(name), CPF: strings.TrimSpace(cpf)}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	client, err := domain.NewClient(in.Name, in.CPF, domain.RoleClient)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	logger.Info("Client registered", "cpf", client.CPF)
	return client, nil
}

func (s *clientService) Get(ctx context.Context, cpf string) (*domain.Client, error) {
	return s.repo.GetByCPF(ctx, strings.TrimSpace(cpf))
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

// validationError turns validator failures into ErrInvalidInput naming the fields
func validationError(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
}
