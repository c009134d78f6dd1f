package services

import (
	"context"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/validation"
)

// CompleteProfilePath é para onde o cliente vai enquanto a conta OAuth não tem perfil
const CompleteProfilePath = "/complete-profile"

// Session é o resultado de um login
type Session struct {
	Token           string
	Identity        *entities.Identity
	ProfileComplete bool
	RedirectTo      string
}

// AuthService emite sessões para login por credenciais e por OAuth
type AuthService struct {
	verifier     *CredentialVerifier
	provisioner  *AccountProvisioner
	userRepo     repositories.UserRepository
	operatorRepo repositories.OperatorRepository
	tokens       ports.TokenIssuer
	logger       ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	verifier *CredentialVerifier,
	provisioner *AccountProvisioner,
	userRepo repositories.UserRepository,
	operatorRepo repositories.OperatorRepository,
	tokens ports.TokenIssuer,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		verifier:     verifier,
		provisioner:  provisioner,
		userRepo:     userRepo,
		operatorRepo: operatorRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login valida o schema de login e confere as credenciais
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validation.Check(validation.SignIn{Email: email, Password: password}); err != nil {
		return nil, err
	}

	identity, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		s.logger.Debug("login rejected")
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, wrap(err)
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}
	return s.sessionFor(ctx, user)
}

// OAuthSignIn encontra o usuário pelo email do provedor ou cria a conta OAUTH_STUB
func (s *AuthService) OAuthSignIn(ctx context.Context, profile *ports.OAuthProfile) (*Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, wrap(err)
	}

	if user == nil {
		user, err = s.provisioner.CreateOAuthUser(ctx, OAuthUserInput{
			Email:             profile.Email,
			Provider:          profile.Provider,
			ProviderAccountID: profile.AccountID,
		})
		if errors.Is(err, errors.ErrEmailAlreadyExists) {
			// outro callback criou o usuário em paralelo
			user, err = s.userRepo.FindByEmail(ctx, profile.Email)
		}
		if err != nil {
			return nil, wrap(err)
		}
		if user == nil {
			return nil, errors.ErrUserNotFound
		}
	} else if err := s.provisioner.LinkAccount(ctx, user.ID, profile.Provider, profile.AccountID); err != nil {
		return nil, err
	}

	return s.sessionFor(ctx, user)
}

func (s *AuthService) sessionFor(ctx context.Context, user *entities.User) (*Session, error) {
	operator, err := s.operatorRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, wrap(err)
	}

	identity := user.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, errors.Internal(err)
	}

	complete := user.ProfileState(operator != nil) == entities.ProfileComplete
	redirect := "/"
	if !complete {
		redirect = CompleteProfilePath
	}

	return &Session{
		Token:           token,
		Identity:        identity,
		ProfileComplete: complete,
		RedirectTo:      redirect,
	}, nil
}
