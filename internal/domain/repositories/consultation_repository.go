package repositories

import (
	"context"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
)

// ConsultationRepository define a interface para persistência de pré-consultas
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entities.PreConsultation) error

	// FindActiveByID retorna a consulta com autor e comentários (ordenados por
	// data de criação ascendente). Consultas inativas são tratadas como
	// inexistentes: retorna nil, nil.
	FindActiveByID(ctx context.Context, id string) (*entities.PreConsultation, error)

	// ListActive retorna todas as consultas ativas ordenadas por número de
	// comentários descendente; empates por data de criação ascendente.
	ListActive(ctx context.Context) ([]*entities.PreConsultation, error)

	Update(ctx context.Context, consultation *entities.PreConsultation) error

	// Delete remove fisicamente o registro da consulta. Os comentários filhos
	// devem ser removidos antes, pelo chamador, na mesma transação.
	Delete(ctx context.Context, id string) error
}
