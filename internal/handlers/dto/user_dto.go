package dto

import (
	"time"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
)

// AuthorResponse é o resumo público de autoria: apenas nome.
// E-mail, role e número de identidade nunca são expostos aqui.
type AuthorResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserFullResponse é a visão completa do usuário, exclusiva do self-service
type UserFullResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email,omitempty"`
	IdentityNumber *string   `json:"identityNumber,omitempty"`
	Role           string    `json:"role"`
	Enabled        bool      `json:"enabled"`
	DateCreated    time.Time `json:"dateCreated"`
}

// ToAuthorResponse converte uma entidade User para o resumo de autoria
func ToAuthorResponse(user *entities.User) *AuthorResponse {
	if user == nil {
		return nil
	}
	return &AuthorResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// ToUserFullResponse converte uma entidade User para a visão completa
func ToUserFullResponse(user *entities.User) UserFullResponse {
	return UserFullResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email.String(),
		IdentityNumber: user.IdentityNumber,
		Role:           string(user.Role),
		Enabled:        user.Enabled,
		DateCreated:    user.CreatedAt,
	}
}
