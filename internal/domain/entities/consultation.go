package entities

import (
	"errors"
	"strings"
	"time"
)

// PreConsultation representa um tópico de pré-consulta aberto a comentários de cidadãos.
//
// Ciclo de vida: criada ativa; pode ser editada enquanto ativa; a desativação
// (soft delete) é permanente — não existe caminho de reativação. Consultas
// inativas são invisíveis para todas as consultas de leitura.
type PreConsultation struct {
	ID          string
	Subject     string
	Description string
	Active      bool
	AuthorID    string
	Author      *User
	CreatedAt   time.Time

	// Comments sempre ordenados por data de criação ascendente
	Comments []*Comment
}

// IsActive verifica se a consulta ainda aceita leitura e mutação
func (p *PreConsultation) IsActive() bool {
	return p.Active
}

// Deactivate marca a consulta como inativa (transição de mão única)
func (p *PreConsultation) Deactivate() {
	p.Active = false
}

// CommentsCount retorna o número de comentários associados
func (p *PreConsultation) CommentsCount() int {
	return len(p.Comments)
}

// Validate valida regras de negócio da entidade PreConsultation
func (p *PreConsultation) Validate() error {
	if strings.TrimSpace(p.Subject) == "" {
		return errors.New("subject is required")
	}

	if strings.TrimSpace(p.Description) == "" {
		return errors.New("description is required")
	}

	if p.AuthorID == "" {
		return errors.New("author is required")
	}

	return nil
}
