package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
	"github.com/rafabene/preconsult-backend/internal/services"
)

// ConsultationHandler lida com requisições HTTP de pré-consultas
type ConsultationHandler struct {
	consultationService *services.ConsultationService
}

// NewConsultationHandler cria um novo ConsultationHandler
func NewConsultationHandler(consultationService *services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: consultationService,
	}
}

// Create cria uma nova pré-consulta ativa
func (h *ConsultationHandler) Create(c *gin.Context) {
	var req dto.ConsultationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	consultation, err := h.consultationService.CreateConsultation(c.Request.Context(), services.ConsultationInput{
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConsultationResponse(consultation))
}

// List lista todas as consultas ativas, mais comentadas primeiro
func (h *ConsultationHandler) List(c *gin.Context) {
	consultations, err := h.consultationService.ListConsultations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsultationResponses(consultations))
}

// GetByID busca uma consulta ativa por ID
func (h *ConsultationHandler) GetByID(c *gin.Context) {
	consultation, err := h.consultationService.GetConsultationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsultationResponse(consultation))
}

// Update substitui assunto e descrição de uma consulta ativa
func (h *ConsultationHandler) Update(c *gin.Context) {
	var req dto.ConsultationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	consultation, err := h.consultationService.UpdateConsultation(c.Request.Context(), c.Param("id"), services.ConsultationInput{
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsultationResponse(consultation))
}

// Deactivate desativa a consulta (soft delete, sem corpo de resposta)
func (h *ConsultationHandler) Deactivate(c *gin.Context) {
	if err := h.consultationService.DeactivateConsultation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
