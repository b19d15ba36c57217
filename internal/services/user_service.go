package services

import (
	"context"
	"time"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/errors"
	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/domain/repositories"
	"github.com/rafabene/preconsult-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(userRepo repositories.UserRepository, logger ports.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUserByID busca um usuário por ID (visão completa, apenas self-service)
func (s *UserService) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// ResolveOrProvision retorna o usuário com o e-mail informado ou, se não
// existir, provisiona e persiste um novo com o role informado. Idempotente:
// chamadas repetidas com o mesmo e-mail retornam o mesmo usuário.
func (s *UserService) ResolveOrProvision(ctx context.Context, email, firstName, lastName string, role entities.Role) (*entities.User, error) {
	address, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	existing, err := s.userRepo.FindByEmail(ctx, address.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := &entities.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     address,
		Role:      role,
		Enabled:   true,
		CreatedAt: time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user provisioned", "user_id", user.ID, "role", string(role))
	return user, nil
}

// ProvisionAnalogUser cria sempre um *novo* usuário analógico, sem e-mail e
// sem credenciais. Comentaristas anônimos nunca são deduplicados.
func (s *UserService) ProvisionAnalogUser(ctx context.Context, firstName, lastName string) (*entities.User, error) {
	user := &entities.User{
		FirstName: firstName,
		LastName:  lastName,
		Role:      entities.RoleAnalog,
		Enabled:   true,
		CreatedAt: time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("analog user provisioned", "user_id", user.ID)
	return user, nil
}
