package services

import (
	"context"
	"strings"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/domain/valueobjects"
)

// AccountProvisioner cria usuários, contas externas e perfis de operador
type AccountProvisioner struct {
	userRepo     repositories.UserRepository
	operatorRepo repositories.OperatorRepository
	accountRepo  repositories.AccountRepository
	hasher       ports.PasswordHasher
	uow          ports.UnitOfWork
	logger       ports.Logger
}

// NewAccountProvisioner cria um novo AccountProvisioner
func NewAccountProvisioner(
	userRepo repositories.UserRepository,
	operatorRepo repositories.OperatorRepository,
	accountRepo repositories.AccountRepository,
	hasher ports.PasswordHasher,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *AccountProvisioner {
	return &AccountProvisioner{
		userRepo:     userRepo,
		operatorRepo: operatorRepo,
		accountRepo:  accountRepo,
		hasher:       hasher,
		uow:          uow,
		logger:       logger,
	}
}

// OAuthUserInput representa o primeiro login de uma identidade externa
type OAuthUserInput struct {
	Email             string
	Provider          entities.OAuthProvider
	ProviderAccountID string
	Role              entities.Role // vazio = USER
}

// CreateOAuthUser cria o usuário sem senha e nome vazio, e a conta externa ligada
func (p *AccountProvisioner) CreateOAuthUser(ctx context.Context, input OAuthUserInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, invalidEmail()
	}
	role := input.Role
	if role == "" {
		role = entities.RoleUser
	}
	accountID := input.ProviderAccountID

	user := &entities.User{
		Email:         email,
		Name:          "",
		Role:          role,
		OAuthProvider: input.Provider,
		OAuthID:       &accountID,
	}

	err = p.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := p.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return p.accountRepo.Create(txCtx, &entities.Account{
			UserID:            user.ID,
			Type:              "oauth",
			Provider:          strings.ToLower(string(input.Provider)),
			ProviderAccountID: accountID,
		})
	})
	if err != nil {
		return nil, wrap(err)
	}

	p.logger.Info("oauth user created", "user_id", user.ID, "provider", input.Provider)
	return user, nil
}

// LinkAccount garante a conta externa de um usuário já existente
func (p *AccountProvisioner) LinkAccount(ctx context.Context, userID string, provider entities.OAuthProvider, providerAccountID string) error {
	name := strings.ToLower(string(provider))

	existing, err := p.accountRepo.FindByProvider(ctx, name, providerAccountID)
	if err != nil {
		return wrap(err)
	}
	if existing != nil {
		if existing.UserID != userID {
			return errors.ErrAccountAlreadyLinked
		}
		return nil
	}

	return wrap(p.accountRepo.Create(ctx, &entities.Account{
		UserID:            userID,
		Type:              "oauth",
		Provider:          name,
		ProviderAccountID: providerAccountID,
	}))
}

// CredentialRegistration representa um registro por email e senha já validado
type CredentialRegistration struct {
	Email    string
	Password string
	Name     string
	Surname  string
	Role     entities.Role
}

// CreateCredentialUser cria o usuário com senha e, para OPERATOR, o perfil de operador
// com organizationName = name e telefone vazio, na mesma transação
func (p *AccountProvisioner) CreateCredentialUser(ctx context.Context, input CredentialRegistration) (*entities.User, error) {
	switch input.Role {
	case entities.RoleOperator:
		if input.Name == "" {
			return nil, errors.ErrMissingOperatorData
		}
	default:
		if input.Name == "" || input.Surname == "" {
			return nil, errors.ErrMissingUserData
		}
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, invalidEmail()
	}

	existing, err := p.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, wrap(err)
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := p.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	user := &entities.User{
		Email:         email,
		PasswordHash:  &hash,
		Name:          input.Name,
		Role:          input.Role,
		OAuthProvider: entities.ProviderApp,
	}
	if input.Role != entities.RoleOperator {
		user.Role = entities.RoleUser
		surname := input.Surname
		user.Surname = &surname
	}

	err = p.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		// índice único cobre a corrida entre a checagem acima e o insert
		if err := p.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if user.Role != entities.RoleOperator {
			return nil
		}
		return p.operatorRepo.Create(txCtx, &entities.Operator{
			UserID:           user.ID,
			OrganizationName: input.Name,
			Telephone:        "",
		})
	})
	if err != nil {
		return nil, wrap(err)
	}

	p.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}
