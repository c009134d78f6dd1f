package ports

import (
	"context"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
)

// PasswordHasher gera e compara hashes de senha
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer emite e valida tokens de sessão
type TokenIssuer interface {
	Issue(identity *entities.Identity) (string, error)
	Parse(token string) (*entities.Identity, error)
}

// Mailer entrega emails transacionais
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// OAuthProfile é o perfil mínimo devolvido por um provedor externo
type OAuthProfile struct {
	Provider  entities.OAuthProvider
	AccountID string
	Email     string
	Name      string
}

// OAuthProvider encapsula o fluxo authorization code de um provedor
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*OAuthProfile, error)
}

// ResetTokens gera tokens de reset de senha e calcula o hash persistido
type ResetTokens interface {
	New() (raw string, hash string, err error)
	Hash(raw string) string
}
