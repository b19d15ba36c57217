package repositories

import (
	"context"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
)

// CommentRepository define a interface para persistência de comentários
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	FindByID(ctx context.Context, id string) (*entities.Comment, error)
	Update(ctx context.Context, comment *entities.Comment) error

	// ListActiveByConsultation retorna os comentários não bloqueados da
	// consulta, ordenados por data de criação ascendente.
	ListActiveByConsultation(ctx context.Context, consultationID string) ([]*entities.Comment, error)

	// ListBlocked retorna todos os comentários bloqueados de todas as
	// consultas, ordenados por data de criação descendente (fila de moderação).
	ListBlocked(ctx context.Context) ([]*entities.Comment, error)

	// ToggleApproval alterna atomicamente o voto do usuário no conjunto de
	// aprovações do comentário. Retorna true se o voto foi adicionado.
	// A operação é serializada por entidade na camada de armazenamento.
	ToggleApproval(ctx context.Context, commentID, userID string) (bool, error)

	// DeleteByConsultation remove fisicamente os comentários (e aprovações)
	// de uma consulta. Usado apenas pela rotina de purge transacional.
	DeleteByConsultation(ctx context.Context, consultationID string) error
}
