package entities

import (
	"errors"
	"strings"
	"time"
)

// Comment representa um comentário de cidadão em uma pré-consulta.
//
// O estado bloqueado/desbloqueado é ortogonal às aprovações: um comentário
// bloqueado mantém suas aprovações. Comentários nunca mudam de consulta e
// nunca são removidos pelo fluxo de moderação.
type Comment struct {
	ID             string
	Content        string
	AuthorID       string
	Author         *User
	ConsultationID string
	Blocked        bool
	CreatedAt      time.Time

	// Approves é o conjunto de ids de usuários que aprovaram o comentário.
	// Sem duplicatas: o número de aprovações é a cardinalidade do conjunto.
	Approves []string
}

// ApprovesNumber retorna a cardinalidade do conjunto de aprovações
func (c *Comment) ApprovesNumber() int {
	return len(c.Approves)
}

// IsApprovedBy verifica se o usuário já aprovou o comentário
func (c *Comment) IsApprovedBy(userID string) bool {
	for _, id := range c.Approves {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleApproval alterna o voto de aprovação do usuário: remove se presente,
// adiciona se ausente. Retorna true se o voto foi adicionado.
func (c *Comment) ToggleApproval(userID string) bool {
	for i, id := range c.Approves {
		if id == userID {
			c.Approves = append(c.Approves[:i], c.Approves[i+1:]...)
			return false
		}
	}
	c.Approves = append(c.Approves, userID)
	return true
}

// Block marca o comentário como bloqueado (idempotente)
func (c *Comment) Block() {
	c.Blocked = true
}

// Unblock remove o bloqueio do comentário (idempotente)
func (c *Comment) Unblock() {
	c.Blocked = false
}

// Validate valida regras de negócio da entidade Comment
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return errors.New("content is required")
	}

	if c.AuthorID == "" {
		return errors.New("author is required")
	}

	if c.ConsultationID == "" {
		return errors.New("consultation is required")
	}

	return nil
}
