package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
)

// IdentityContextKey guarda a identidade autenticada no contexto do Gin
const IdentityContextKey = "identity"

// RequireAuth exige "Authorization: Bearer <token>" válido.
// Sem token ou com token inválido chama onFail com errors.ErrUnauthorized e interrompe a cadeia.
func RequireAuth(tokens ports.TokenIssuer, onFail func(*gin.Context, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			onFail(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		identity, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			onFail(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// IdentityFrom retorna a identidade gravada por RequireAuth
func IdentityFrom(c *gin.Context) (*entities.Identity, bool) {
	identity, ok := c.Value(IdentityContextKey).(*entities.Identity)
	return identity, ok && identity != nil
}
