package entities

import (
	"time"

	"github.com/smartwaste/smartwaste-backend/internal/domain/valueobjects"
)

// ProfileState é o estado de completude do perfil de um usuário
type ProfileState string

const (
	ProfileNew       ProfileState = "NEW"
	ProfileOAuthStub ProfileState = "OAUTH_STUB"
	ProfileComplete  ProfileState = "COMPLETE"
)

// User representa um usuário do sistema
type User struct {
	ID               string
	Email            valueobjects.Email
	PasswordHash     *string
	Name             string
	Surname          *string
	Cellphone        *string
	Role             Role
	OAuthProvider    OAuthProvider
	OAuthID          *string
	ResetTokenHash   *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPassword indica se a conta aceita login por credenciais
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsOperator verifica se o usuário é operador
func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}

// ProfileState calcula o estado do perfil; hasOperator indica se existe a linha Operator
func (u *User) ProfileState(hasOperator bool) ProfileState {
	if u == nil {
		return ProfileNew
	}
	if hasOperator {
		return ProfileComplete
	}
	if u.Role == RoleUser && u.Name != "" && u.Surname != nil && *u.Surname != "" {
		return ProfileComplete
	}
	return ProfileOAuthStub
}

// ResetTokenValid verifica se o token de reset ainda não expirou
func (u *User) ResetTokenValid(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiry != nil && now.Before(*u.ResetTokenExpiry)
}

// Operator é a extensão 1:1 de um User com role OPERATOR
type Operator struct {
	UserID           string
	OrganizationName string
	Telephone        string
	Website          *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Account é a identidade externa (OAuth) ligada a um usuário
type Account struct {
	ID                string
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
}

// Identity é o registro mínimo de identidade autenticada
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// Identity retorna a identidade mínima do usuário
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email.String(), Role: u.Role}
}
