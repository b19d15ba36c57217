package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/domain/ports"
)

// BearerToken extrai o token bruto do header Authorization e o anexa ao
// contexto da requisição. A validação do token é responsabilidade do
// identity resolver, não do transporte.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token != "" {
				ctx := ports.ContextWithBearerToken(c.Request.Context(), token)
				c.Request = c.Request.WithContext(ctx)
			}
		}

		c.Next()
	}
}
