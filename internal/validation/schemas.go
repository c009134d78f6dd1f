// Package validation contém os schemas declarativos compartilhados entre login,
// registro de usuário e registro de operador (com e sem OAuth).
package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/valueobjects"
)

// Mensagens exibidas ao usuário, indexadas por campo e tag
var messages = map[string]map[string]string{
	"email": {
		"email_address": "Invalid email",
	},
	"password": {
		"min": "Password must be more than 8 characters",
		"max": "Password must be less than 32 characters",
	},
	"name": {
		"required": "Name is required",
		"min":      "Name is too short",
		"max":      "Name is too long",
	},
	"surname": {
		"min": "Surname is too short",
		"max": "Surname is too long",
	},
	"description": {
		"required": "Description is required",
		"min":      "Description is required",
	},
	"street": {
		"required": "Street is required",
		"max":      "Street is too long",
	},
	"city": {
		"required": "City is required",
		"max":      "City is too long",
	},
	"zip": {
		"required": "Zip is required",
		"max":      "Zip is too long",
	},
	"latitude": {
		"min": "Invalid latitude",
		"max": "Invalid latitude",
	},
	"longitude": {
		"min": "Invalid longitude",
		"max": "Invalid longitude",
	},
	"openingTime": {
		"datetime": "Invalid opening time",
	},
	"closingTime": {
		"datetime": "Invalid closing time",
	},
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator retorna a instância compartilhada, com a regra email_address registrada
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
		_ = validate.RegisterValidation("email_address", func(fl validator.FieldLevel) bool {
			return valueobjects.IsValidEmail(fl.Field().String())
		})
	})
	return validate
}

// SignIn é o schema de login por credenciais
type SignIn struct {
	Email    string `json:"email" validate:"email_address"`
	Password string `json:"password" validate:"min=8,max=32"`
}

// UserRegister é o registro de usuário por credenciais
type UserRegister struct {
	Email    string `json:"email" validate:"email_address"`
	Password string `json:"password" validate:"min=8,max=32"`
	Name     string `json:"name" validate:"min=2,max=50"`
	Surname  string `json:"surname" validate:"min=2,max=50"`
}

// OperatorRegister é o registro de operador por credenciais
type OperatorRegister struct {
	Email    string `json:"email" validate:"email_address"`
	Password string `json:"password" validate:"min=8,max=32"`
	Name     string `json:"name" validate:"min=2,max=50"`
}

// UserRegisterOAuth: email e senha opcionais, a identidade já vem do provedor
type UserRegisterOAuth struct {
	Email    string `json:"email" validate:"omitempty,email_address"`
	Password string `json:"password" validate:"omitempty,min=8,max=32"`
	Name     string `json:"name" validate:"min=2,max=50"`
	Surname  string `json:"surname" validate:"min=2,max=50"`
}

// OperatorRegisterOAuth: email e senha opcionais
type OperatorRegisterOAuth struct {
	Email    string `json:"email" validate:"omitempty,email_address"`
	Password string `json:"password" validate:"omitempty,min=8,max=32"`
	Name     string `json:"name" validate:"min=2,max=50"`
}

// PasswordOnly valida apenas a regra de senha (reset de senha)
type PasswordOnly struct {
	Password string `json:"password" validate:"min=8,max=32"`
}

// NameOnly valida apenas o nome (edição de perfil)
type NameOnly struct {
	Name string `json:"name" validate:"min=2,max=50"`
}

// SurnameOnly valida apenas o sobrenome (edição de perfil)
type SurnameOnly struct {
	Surname string `json:"surname" validate:"min=2,max=50"`
}

// PointCreate valida os campos obrigatórios na criação de um ponto de coleta
type PointCreate struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// PointUpdate valida apenas os campos presentes na atualização
type PointUpdate struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,min=1"`
}

// AddressFields valida um endereço completo (criado ou substituído por inteiro)
type AddressFields struct {
	Street    string  `json:"street" validate:"required,max=255"`
	City      string  `json:"city" validate:"required,max=100"`
	Zip       string  `json:"zip" validate:"required,max=20"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// ScheduleTimes valida os horários no formato HH:MM
type ScheduleTimes struct {
	OpeningTime *string `json:"openingTime" validate:"omitnil,datetime=15:04"`
	ClosingTime *string `json:"closingTime" validate:"omitnil,datetime=15:04"`
}

// Check valida um schema; retorna nil ou um *errors.DomainError VALIDATION com as violações
// na ordem dos campos. A mensagem do erro é a da primeira violação.
func Check(schema any) error {
	err := Validator().Struct(schema)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Internal(err)
	}

	violations := make([]errors.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, errors.Violation{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return errors.NewValidationError(violations)
}

func messageFor(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return field + " is invalid"
}

// jsonFieldName usa a tag json como nome do campo nas violações
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
