package services

import (
	"context"
	"strings"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
)

// CredentialVerifier confere email e senha contra o hash armazenado
type CredentialVerifier struct {
	userRepo repositories.UserRepository
	hasher   ports.PasswordHasher
}

// NewCredentialVerifier cria um novo CredentialVerifier
func NewCredentialVerifier(userRepo repositories.UserRepository, hasher ports.PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Verify retorna a identidade ou (nil, nil) quando não há correspondência.
// Email desconhecido, conta sem senha e senha errada são indistinguíveis.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*entities.Identity, error) {
	user, err := v.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, wrap(err)
	}
	if user == nil || !user.HasPassword() {
		return nil, nil
	}
	if !v.hasher.Compare(*user.PasswordHash, password) {
		return nil, nil
	}
	return user.Identity(), nil
}
