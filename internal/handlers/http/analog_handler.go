package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
	"github.com/rafabene/preconsult-backend/internal/services"
)

// AnalogHandler lida com comentários enviados por canais analógicos
// (cartas digitalizadas, formulários presenciais): não há conta de usuário,
// apenas o nome declarado do comentarista
type AnalogHandler struct {
	commentService *services.CommentService
}

// NewAnalogHandler cria um novo AnalogHandler
func NewAnalogHandler(commentService *services.CommentService) *AnalogHandler {
	return &AnalogHandler{
		commentService: commentService,
	}
}

// Create cria um comentário em nome de um usuário analógico recém-provisionado
func (h *AnalogHandler) Create(c *gin.Context) {
	var req dto.CreateAnalogCommentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	comment, err := h.commentService.CreateAnalogComment(c.Request.Context(), c.Param("id"), services.CreateAnalogCommentInput{
		Content:   req.Content,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}
