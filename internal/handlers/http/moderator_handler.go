package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
	"github.com/rafabene/preconsult-backend/internal/services"
)

// ModeratorHandler lida com a fila de moderação.
// A autorização do moderador é garantida pela camada de borda, não aqui.
type ModeratorHandler struct {
	commentService *services.CommentService
}

// NewModeratorHandler cria um novo ModeratorHandler
func NewModeratorHandler(commentService *services.CommentService) *ModeratorHandler {
	return &ModeratorHandler{
		commentService: commentService,
	}
}

// ListBlocked lista todos os comentários bloqueados, mais recentes primeiro
func (h *ModeratorHandler) ListBlocked(c *gin.Context) {
	comments, err := h.commentService.ListBlockedComments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// Unblock desbloqueia o comentário (idempotente)
func (h *ModeratorHandler) Unblock(c *gin.Context) {
	comment, err := h.commentService.UnblockComment(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}
