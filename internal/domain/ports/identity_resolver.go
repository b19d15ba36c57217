package ports

import (
	"context"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
)

// IdentityResolver resolve o ator da requisição corrente.
//
// Contrato: a resolução retorna um usuário existente por identificador
// externo estável (e-mail verificado) ou provisiona e persiste um novo
// usuário com role padrão. Chamadas repetidas com o mesmo identificador
// retornam o mesmo usuário (idempotente, nunca re-criado).
type IdentityResolver interface {
	ResolveCurrentActor(ctx context.Context) (*entities.User, error)
}

// bearerTokenKey é um tipo próprio para evitar colisões de chave de contexto
type bearerTokenKey struct{}

// ContextWithBearerToken anexa o token bruto da requisição ao contexto
func ContextWithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey{}, token)
}

// BearerTokenFromContext extrai o token bruto anexado pelo middleware
func BearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenKey{}).(string)
	return token, ok
}
