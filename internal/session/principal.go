package session

import "context"

// O front injeta o principal autenticado no contexto da requisição;
// quem faz login/logout de verdade é o serviço remoto, não a gente.

type ctxKey struct{}

func WithPrincipal(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, principalID)
}

// PrincipalFrom retorna o id do principal ou "" se ninguém logado.
func PrincipalFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
