package errors

import "errors"

// Kind é o discriminante de um erro de domínio, usado na borda HTTP para escolher o status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "FORBIDDEN"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	default:
		return "INTERNAL"
	}
}

// Business errors
// Nota: Message contém o message ID para i18n (internal/infrastructure/i18n/locales/*.json).
// Chaves sem tradução são devolvidas literalmente.
var (
	ErrMissingData             = newError(KindValidation, "error.missing_data")
	ErrMissingUserData         = newError(KindValidation, "error.missing_user_data")
	ErrMissingOperatorData     = newError(KindValidation, "error.missing_operator_data")
	ErrEmailRequired           = newError(KindValidation, "error.email_required")
	ErrMissingUserFields       = newError(KindValidation, "error.missing_user_fields")
	ErrMissingOperatorFields   = newError(KindValidation, "error.missing_operator_fields")
	ErrProfileAlreadyCompleted = newError(KindValidation, "error.profile_already_completed")
	ErrRegistrationUserMissing = newError(KindValidation, "error.user_not_found")
	ErrUnknownWasteType        = newError(KindValidation, "error.unknown_waste_type")
	ErrInvalidResetToken       = newError(KindValidation, "error.invalid_reset_token")
	ErrInvalidID               = newError(KindValidation, "error.invalid_id")
	ErrInvalidBody             = newError(KindValidation, "error.invalid_body")
	ErrInvalidOAuthState       = newError(KindValidation, "error.oauth_state")

	ErrEmailAlreadyExists   = newError(KindConflict, "error.email_already_exists")
	ErrAccountAlreadyLinked = newError(KindConflict, "error.account_already_linked")

	ErrUserNotFound            = newError(KindNotFound, "error.user_not_found")
	ErrCollectionPointNotFound = newError(KindNotFound, "error.collection_point_not_found")
	ErrUnknownOAuthProvider    = newError(KindNotFound, "error.oauth_provider_unknown")

	ErrNotAuthorizedToUpdate = newError(KindForbidden, "error.not_authorized_update")
	ErrNotAuthorizedToDelete = newError(KindForbidden, "error.not_authorized_delete")
	ErrForbidden             = newError(KindForbidden, "error.forbidden")

	ErrInvalidCredentials = newError(KindUnauthenticated, "error.invalid_credentials")
	ErrUnauthorized       = newError(KindUnauthenticated, "error.unauthorized")
	ErrOAuthSignInFailed  = newError(KindUnauthenticated, "error.oauth_exchange")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// Violation é uma falha de validação de um campo
type Violation struct {
	Field   string
	Tag     string
	Message string
}

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Err        error
}

func newError(kind Kind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError cria um erro VALIDATION cuja mensagem é a da primeira violação
func NewValidationError(violations []Violation) *DomainError {
	message := "error.validation.detail"
	if len(violations) > 0 {
		message = violations[0].Message
	}
	return &DomainError{Kind: KindValidation, Message: message, Violations: violations}
}

// Internal embrulha uma falha inesperada (store, IO) como INTERNAL
func Internal(err error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: "error.internal.detail", Err: err}
}

// KindOf retorna o discriminante de err; erros desconhecidos são INTERNAL
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// As é um atalho para errors.As com *DomainError
func As(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}

// Is é um atalho para errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}
