package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/validation"
)

// ResetTokenTTL é a validade do link de reset
const ResetTokenTTL = time.Hour

// PasswordResetService implementa o esqueci-minha-senha e a troca por token
type PasswordResetService struct {
	userRepo   repositories.UserRepository
	hasher     ports.PasswordHasher
	tokens     ports.ResetTokens
	mailer     ports.Mailer
	appBaseURL string
	now        func() time.Time
	logger     ports.Logger
}

// NewPasswordResetService cria um novo PasswordResetService
func NewPasswordResetService(
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.ResetTokens,
	mailer ports.Mailer,
	appBaseURL string,
	logger ports.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:   userRepo,
		hasher:     hasher,
		tokens:     tokens,
		mailer:     mailer,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// WithClock substitui o relógio; usado em testes
func (s *PasswordResetService) WithClock(now func() time.Time) *PasswordResetService {
	s.now = now
	return s
}

// Forgot emite um token quando a conta existe e tem senha.
// O resultado observável é o mesmo em todos os casos; falhas de envio só vão para o log.
func (s *PasswordResetService) Forgot(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return wrap(err)
	}
	if user == nil || !user.HasPassword() {
		s.logger.Debug("password reset requested for unknown or passwordless account")
		return nil
	}

	raw, hash, err := s.tokens.New()
	if err != nil {
		return errors.Internal(err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, s.now().Add(ResetTokenTTL)); err != nil {
		return wrap(err)
	}

	resetURL := s.appBaseURL + "/reset-password?token=" + url.QueryEscape(raw)
	if err := s.mailer.SendPasswordReset(ctx, user.Email.String(), resetURL); err != nil {
		s.logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)
	}
	return nil
}

// Reset troca a senha de quem apresenta um token válido e o invalida
func (s *PasswordResetService) Reset(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByResetTokenHash(ctx, s.tokens.Hash(token))
	if err != nil {
		return wrap(err)
	}
	if user == nil || !user.ResetTokenValid(s.now()) {
		return errors.ErrInvalidResetToken
	}

	if err := validation.Check(validation.PasswordOnly{Password: password}); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return errors.Internal(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return wrap(err)
	}

	s.logger.Info("password reset completed", "user_id", user.ID)
	return nil
}
