package dto

import (
	"time"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
)

// ConsultationRequest representa a requisição para criar ou editar uma pré-consulta
type ConsultationRequest struct {
	Subject     string `json:"subject" binding:"required,notblank,max=500"`
	Description string `json:"description" binding:"required,notblank"`
}

// ConsultationResponse representa a projeção de uma pré-consulta
type ConsultationResponse struct {
	ID          string            `json:"id"`
	Subject     string            `json:"subject"`
	Description string            `json:"description"`
	Active      bool              `json:"active"`
	DateCreated time.Time         `json:"dateCreated"`
	Author      *AuthorResponse   `json:"author"`
	Comments    []CommentResponse `json:"comments"`
}

// ToConsultationResponse converte uma entidade PreConsultation
func ToConsultationResponse(consultation *entities.PreConsultation) ConsultationResponse {
	return ConsultationResponse{
		ID:          consultation.ID,
		Subject:     consultation.Subject,
		Description: consultation.Description,
		Active:      consultation.Active,
		DateCreated: consultation.CreatedAt,
		Author:      ToAuthorResponse(consultation.Author),
		Comments:    ToCommentResponses(consultation.Comments),
	}
}

// ToConsultationResponses converte uma lista de entidades PreConsultation
func ToConsultationResponses(consultations []*entities.PreConsultation) []ConsultationResponse {
	responses := make([]ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		responses[i] = ToConsultationResponse(consultation)
	}
	return responses
}
