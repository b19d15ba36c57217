package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/rafabene/preconsult-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um ator do sistema: cidadão registrado, identificado,
// moderador ou usuário "analógico" (comentarista sem conta, criado a cada envio).
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          valueobjects.Email // vazio para usuários analógicos
	IdentityNumber *string
	Role           Role
	Enabled        bool
	CreatedAt      time.Time
}

// IsModerator verifica se o usuário pode bloquear/desbloquear comentários
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// IsAnalog verifica se o usuário é um comentarista analógico
func (u *User) IsAnalog() bool {
	return u.Role == RoleAnalog
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// Deactivate desabilita o usuário (usuários nunca são removidos, apenas desativados)
func (u *User) Deactivate() {
	u.Enabled = false
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if strings.TrimSpace(u.FirstName) == "" {
		return errors.New("first name is required")
	}

	if strings.TrimSpace(u.LastName) == "" {
		return errors.New("last name is required")
	}

	switch u.Role {
	case RoleRegistered, RoleIdentified, RoleAnalog, RoleModerator:
	default:
		return errors.New("invalid role")
	}

	// Usuários analógicos existem apenas como âncora de autoria:
	// sem e-mail e sem número de identidade.
	if u.Role == RoleAnalog {
		if u.Email.String() != "" {
			return errors.New("analog user must not have an email")
		}
		if u.IdentityNumber != nil {
			return errors.New("analog user must not have an identity number")
		}
		return nil
	}

	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	return nil
}
