package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
)

// UserHandler lida com a visão self-service do usuário corrente
type UserHandler struct {
	identity ports.IdentityResolver
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(identity ports.IdentityResolver) *UserHandler {
	return &UserHandler{
		identity: identity,
	}
}

// Me retorna a visão completa do ator resolvido.
// Única rota que expõe e-mail, role e número de identidade.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.identity.ResolveCurrentActor(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserFullResponse(user))
}
