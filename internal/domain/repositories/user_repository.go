package repositories

import (
	"context"
	"time"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*entities.User, error)
	UpdateProfile(ctx context.Context, id string, patch UserProfilePatch) error
	UpdateRole(ctx context.Context, id string, role entities.Role) error
	SetResetToken(ctx context.Context, id string, tokenHash string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// UserProfilePatch contém os campos editáveis do perfil; nil significa "não alterar"
type UserProfilePatch struct {
	Name      *string
	Surname   *string
	Cellphone *string
}

// OperatorRepository define a persistência do perfil de operador
type OperatorRepository interface {
	Create(ctx context.Context, operator *entities.Operator) error
	FindByUserID(ctx context.Context, userID string) (*entities.Operator, error)
	UpdateTelephone(ctx context.Context, userID string, telephone string) error
}

// AccountRepository define a persistência das identidades externas
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	FindByProvider(ctx context.Context, provider, providerAccountID string) (*entities.Account, error)
}
