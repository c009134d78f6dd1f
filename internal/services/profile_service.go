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

// Profile é o perfil do usuário autenticado; Operator é nil para USER
type Profile struct {
	User     *entities.User
	Operator *entities.Operator
}

// ProfileUpdate contém os campos editáveis; nil significa "não alterar"
type ProfileUpdate struct {
	Name      *string
	Surname   *string
	Cellphone *string
	Telephone *string
}

// ProfileService contém a lógica do perfil do próprio usuário
type ProfileService struct {
	userRepo     repositories.UserRepository
	operatorRepo repositories.OperatorRepository
	uow          ports.UnitOfWork
	logger       ports.Logger
}

// NewProfileService cria um novo ProfileService
func NewProfileService(
	userRepo repositories.UserRepository,
	operatorRepo repositories.OperatorRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		operatorRepo: operatorRepo,
		uow:          uow,
		logger:       logger,
	}
}

// Get busca o perfil por id
func (s *ProfileService) Get(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	var operator *entities.Operator
	if user.IsOperator() {
		operator, err = s.operatorRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, wrap(err)
		}
	}

	return &Profile{User: user, Operator: operator}, nil
}

// Update aplica as alterações e devolve o perfil recarregado
func (s *ProfileService) Update(ctx context.Context, userID string, input ProfileUpdate) (*Profile, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := repositories.UserProfilePatch{
		Name:      trimmed(input.Name),
		Surname:   trimmed(input.Surname),
		Cellphone: trimmed(input.Cellphone),
	}
	if err := checkProfileNames(patch); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.UpdateProfile(txCtx, userID, patch); err != nil {
			return err
		}
		if input.Telephone != nil && current.Operator != nil {
			return s.operatorRepo.UpdateTelephone(txCtx, userID, strings.TrimSpace(*input.Telephone))
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}

	return s.Get(ctx, userID)
}

// Delete remove a conta; operador, contas, avaliações e pontos caem em cascata
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return wrap(err)
	}
	if user == nil {
		return errors.ErrUserNotFound
	}

	if err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.userRepo.Delete(txCtx, userID)
	}); err != nil {
		return wrap(err)
	}

	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

// checkProfileNames aplica as regras de nome e sobrenome aos campos presentes
func checkProfileNames(patch repositories.UserProfilePatch) error {
	var violations []errors.Violation
	if patch.Name != nil {
		if err := validation.Check(validation.NameOnly{Name: *patch.Name}); err != nil {
			de, _ := errors.As(err)
			violations = append(violations, de.Violations...)
		}
	}
	if patch.Surname != nil {
		if err := validation.Check(validation.SurnameOnly{Surname: *patch.Surname}); err != nil {
			de, _ := errors.As(err)
			violations = append(violations, de.Violations...)
		}
	}
	if len(violations) > 0 {
		return errors.NewValidationError(violations)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
