package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
	"github.com/rafabene/preconsult-backend/internal/services"
)

// CommentHandler lida com requisições HTTP de comentários
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler cria um novo CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create cria um comentário em nome do ator resolvido
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), c.Param("id"), services.CreateCommentInput{
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// ListActive lista os comentários não bloqueados da consulta em ordem
// cronológica de discussão
func (h *CommentHandler) ListActive(c *gin.Context) {
	comments, err := h.commentService.ListActiveComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// Block bloqueia o comentário (idempotente)
func (h *CommentHandler) Block(c *gin.Context) {
	comment, err := h.commentService.BlockComment(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// ToggleApproval alterna o voto de aprovação do ator corrente
func (h *CommentHandler) ToggleApproval(c *gin.Context) {
	comment, err := h.commentService.ToggleApproval(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}
