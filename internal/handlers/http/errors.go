package http

import (
	"net/http"
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/dto"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
)

// responder traduz erros de domínio em respostas RFC 7807
type responder struct {
	logger ports.Logger
}

type problemKind struct {
	status      int
	problemType string
	titleKey    string
}

var problemsByKind = map[errors.Kind]problemKind{
	errors.KindValidation:      {http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"},
	errors.KindConflict:        {http.StatusConflict, errors.ProblemTypeConflict, "error.conflict.title"},
	errors.KindNotFound:        {http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"},
	errors.KindForbidden:       {http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden.title"},
	errors.KindUnauthenticated: {http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"},
	errors.KindInternal:        {http.StatusInternalServerError, errors.ProblemTypeInternal, "error.internal.title"},
}

// fail escolhe o status pelo Kind; INTERNAL vai para o log e para o Sentry com mensagem genérica
func (r responder) fail(c *gin.Context, err error) {
	de, ok := errors.As(err)
	if !ok {
		de = errors.Internal(err)
	}
	pk := problemsByKind[de.Kind]

	if de.Kind == errors.KindInternal {
		r.logger.Error("request failed",
			"request_id", c.GetString(middleware.RequestIDContextKey),
			"path", c.FullPath(),
			"error", err,
		)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		dto.AbortWithProblem(c, dto.NewErrorResponse(c, pk.problemType, pk.titleKey, pk.status, dto.T(c, "error.internal.detail")))
		return
	}

	response := dto.NewErrorResponse(c, pk.problemType, pk.titleKey, pk.status, dto.T(c, de.Message))
	for _, v := range de.Violations {
		response.Errors = append(response.Errors, dto.ValidationError{
			Field:   v.Field,
			Message: dto.T(c, v.Message),
			Tag:     v.Tag,
		})
	}
	dto.AbortWithProblem(c, response)
}

// bind decodifica o corpo JSON; corpo ilegível vira 400 bad-request com "error.invalid_body"
func (r responder) bind(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		r.logger.Debug("invalid request body", "path", c.FullPath(), "error", err)
		dto.AbortWithProblem(c, dto.NewErrorResponse(c, errors.ProblemTypeBadRequest, "error.bad_request.title",
			http.StatusBadRequest, dto.T(c, errors.ErrInvalidBody.Message)))
		return false
	}
	return true
}

// pointID lê :id como inteiro positivo
func (r responder) pointID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		r.fail(c, errors.ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}
