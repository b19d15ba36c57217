package dto

import (
	"time"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
)

// CreateCommentRequest representa a requisição para criar um comentário
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank,max=10000"`
}

// CreateAnalogCommentRequest representa a requisição de um comentário
// analógico: conteúdo mais o nome do comentarista sem conta
type CreateAnalogCommentRequest struct {
	Content   string `json:"content" binding:"required,notblank,max=10000"`
	FirstName string `json:"firstName" binding:"required,notblank,max=255"`
	LastName  string `json:"lastName" binding:"required,notblank,max=255"`
}

// CommentResponse representa a projeção de um comentário
type CommentResponse struct {
	ID             string          `json:"id"`
	Content        string          `json:"content"`
	DateCreated    time.Time       `json:"dateCreated"`
	ApprovesNumber int             `json:"approvesNumber"`
	Author         *AuthorResponse `json:"author"`
	Blocked        bool            `json:"blocked"`
}

// ToCommentResponse converte uma entidade Comment para CommentResponse.
// approvesNumber é sempre a cardinalidade do conjunto de aprovações.
func ToCommentResponse(comment *entities.Comment) CommentResponse {
	return CommentResponse{
		ID:             comment.ID,
		Content:        comment.Content,
		DateCreated:    comment.CreatedAt,
		ApprovesNumber: comment.ApprovesNumber(),
		Author:         ToAuthorResponse(comment.Author),
		Blocked:        comment.Blocked,
	}
}

// ToCommentResponses converte uma lista de entidades Comment
func ToCommentResponses(comments []*entities.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = ToCommentResponse(comment)
	}
	return responses
}
