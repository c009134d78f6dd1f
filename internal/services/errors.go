package services

import (
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
)

// wrap preserva erros de domínio e embrulha o resto como INTERNAL
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.Internal(err)
}

func invalidEmail() error {
	return errors.NewValidationError([]errors.Violation{
		{Field: "email", Tag: "email_address", Message: "Invalid email"},
	})
}
