package middleware

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/session"
)

// Principal injeta o id do usuário autenticado no contexto. Quem
// valida credencial é o data service; aqui só carregamos o id ambiente
// que a camada de sessão (fora do core) já resolveu.
func Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal := r.Header.Get("X-Principal-Id"); principal != "" {
			r = r.WithContext(session.WithPrincipal(r.Context(), principal))
		}
		next.ServeHTTP(w, r)
	})
}
