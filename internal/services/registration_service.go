package services

import (
	"context"
	"strings"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/validation"
)

// RegistrationKind discrimina as duas entradas do fluxo de registro
type RegistrationKind int

const (
	// RegistrationCredentialed é o registro novo com email e senha (NEW -> COMPLETE)
	RegistrationCredentialed RegistrationKind = iota + 1
	// RegistrationOAuthCompletion completa o perfil de uma conta OAuth (OAUTH_STUB -> COMPLETE)
	RegistrationOAuthCompletion
)

// RegistrationRequest é a submissão de registro; Password só vale para RegistrationCredentialed
type RegistrationRequest struct {
	Kind     RegistrationKind
	Email    string
	Password string
	Role     string
	Name     string
	Surname  string
}

// RegistrationResult é o resultado de uma transição bem-sucedida
type RegistrationResult struct {
	UserID     string
	Role       entities.Role
	RedirectTo string
}

// RegistrationService orquestra registro e complemento de perfil
type RegistrationService struct {
	userRepo     repositories.UserRepository
	operatorRepo repositories.OperatorRepository
	provisioner  *AccountProvisioner
	uow          ports.UnitOfWork
	logger       ports.Logger
}

// NewRegistrationService cria um novo RegistrationService
func NewRegistrationService(
	userRepo repositories.UserRepository,
	operatorRepo repositories.OperatorRepository,
	provisioner *AccountProvisioner,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo:     userRepo,
		operatorRepo: operatorRepo,
		provisioner:  provisioner,
		uow:          uow,
		logger:       logger,
	}
}

// Submit despacha pelo discriminante
func (s *RegistrationService) Submit(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error) {
	switch req.Kind {
	case RegistrationCredentialed:
		return s.Register(ctx, req)
	case RegistrationOAuthCompletion:
		return s.CompleteRegistration(ctx, req)
	default:
		return nil, errors.ErrMissingData
	}
}

// Register cria uma conta nova por credenciais.
// Ordem: campos obrigatórios, campos do papel, schema, duplicidade.
func (s *RegistrationService) Register(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error) {
	req = normalize(req)

	if req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, errors.ErrMissingData
	}

	role := entities.ParseRole(req.Role)
	switch role {
	case entities.RoleOperator:
		if req.Name == "" {
			return nil, errors.ErrMissingOperatorData
		}
		if err := validation.Check(validation.OperatorRegister{Email: req.Email, Password: req.Password, Name: req.Name}); err != nil {
			return nil, err
		}
	default:
		if req.Name == "" || req.Surname == "" {
			return nil, errors.ErrMissingUserData
		}
		if err := validation.Check(validation.UserRegister{Email: req.Email, Password: req.Password, Name: req.Name, Surname: req.Surname}); err != nil {
			return nil, err
		}
	}

	user, err := s.provisioner.CreateCredentialUser(ctx, CredentialRegistration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	return &RegistrationResult{UserID: user.ID, Role: user.Role, RedirectTo: "/"}, nil
}

// CompleteRegistration leva uma conta OAUTH_STUB a COMPLETE.
// Toda validação acontece antes da primeira escrita; as escritas rodam numa única transação.
func (s *RegistrationService) CompleteRegistration(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error) {
	req = normalize(req)

	if req.Email == "" {
		return nil, errors.ErrEmailRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, wrap(err)
	}
	if user == nil {
		return nil, errors.ErrRegistrationUserMissing
	}

	operator, err := s.operatorRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, wrap(err)
	}
	if user.ProfileState(operator != nil) == entities.ProfileComplete {
		return nil, errors.ErrProfileAlreadyCompleted
	}

	role := entities.ParseRole(req.Role)
	switch role {
	case entities.RoleOperator:
		if req.Name == "" {
			return nil, errors.ErrMissingOperatorFields
		}
		if err := validation.Check(validation.OperatorRegisterOAuth{Email: req.Email, Name: req.Name}); err != nil {
			return nil, err
		}
	default:
		if req.Name == "" || req.Surname == "" {
			return nil, errors.ErrMissingUserFields
		}
		if err := validation.Check(validation.UserRegisterOAuth{Email: req.Email, Name: req.Name, Surname: req.Surname}); err != nil {
			return nil, err
		}
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if role == entities.RoleOperator {
			if err := s.operatorRepo.Create(txCtx, &entities.Operator{
				UserID:           user.ID,
				OrganizationName: req.Name,
				Telephone:        "",
			}); err != nil {
				return err
			}
		} else {
			name, surname := req.Name, req.Surname
			if err := s.userRepo.UpdateProfile(txCtx, user.ID, repositories.UserProfilePatch{
				Name:    &name,
				Surname: &surname,
			}); err != nil {
				return err
			}
		}
		// escrita final do papel, na mesma transação das escritas do ramo
		return s.userRepo.UpdateRole(txCtx, user.ID, role)
	})
	if err != nil {
		return nil, wrap(err)
	}

	s.logger.Info("profile completed", "user_id", user.ID, "role", role)
	return &RegistrationResult{UserID: user.ID, Role: role, RedirectTo: "/"}, nil
}

func normalize(req RegistrationRequest) RegistrationRequest {
	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	return req
}
