package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email é um value object que garante que emails sejam sempre válidos
type Email struct {
	value string
}

// NewEmail cria um novo Email validado
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(email)

	if !IsValidEmail(email) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// MustEmail cria um Email sem validação, para valores vindos do banco
func MustEmail(email string) Email {
	return Email{value: email}
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// IsZero indica se o email está vazio
func (e Email) IsZero() bool {
	return e.value == ""
}

// IsValidEmail valida o formato do email
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailPattern.MatchString(email)
}
