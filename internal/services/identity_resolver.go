package services

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/errors"
	"github.com/rafabene/preconsult-backend/internal/domain/ports"
)

// StaticIdentityResolver resolve sempre a mesma identidade configurada.
// É o comportamento de referência enquanto não há autenticação real: o
// usuário é provisionado na primeira chamada e reutilizado nas seguintes.
type StaticIdentityResolver struct {
	users     *UserService
	email     string
	firstName string
	lastName  string
}

// NewStaticIdentityResolver cria um resolver de identidade fixa
func NewStaticIdentityResolver(users *UserService, email, firstName, lastName string) ports.IdentityResolver {
	return &StaticIdentityResolver{
		users:     users,
		email:     email,
		firstName: firstName,
		lastName:  lastName,
	}
}

func (r *StaticIdentityResolver) ResolveCurrentActor(ctx context.Context) (*entities.User, error) {
	return r.users.ResolveOrProvision(ctx, r.email, r.firstName, r.lastName, entities.RoleIdentified)
}

// JWTIdentityResolver resolve o ator a partir das claims do bearer token
// (HS256). Substitui o resolver estático em produção sem tocar nos engines
// de comentário e consulta.
type JWTIdentityResolver struct {
	users  *UserService
	secret []byte
}

// NewJWTIdentityResolver cria um resolver baseado em JWT
func NewJWTIdentityResolver(users *UserService, secret string) ports.IdentityResolver {
	return &JWTIdentityResolver{
		users:  users,
		secret: []byte(secret),
	}
}

func (r *JWTIdentityResolver) ResolveCurrentActor(ctx context.Context) (*entities.User, error) {
	raw, ok := ports.BearerTokenFromContext(ctx)
	if !ok || raw == "" {
		return nil, errors.ErrUnauthorized
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, errors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	firstName, _ := claims["firstName"].(string)
	lastName, _ := claims["lastName"].(string)
	if email == "" {
		return nil, errors.ErrUnauthorized
	}

	return r.users.ResolveOrProvision(ctx, email, firstName, lastName, entities.RoleRegistered)
}
