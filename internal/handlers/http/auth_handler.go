package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/dto"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/auth"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

const stateCookiePath = "/api/auth"

// AuthHandler lida com registro, login, OAuth e reset de senha
type AuthHandler struct {
	responder
	registration  *services.RegistrationService
	auth          *services.AuthService
	reset         *services.PasswordResetService
	providers     map[string]ports.OAuthProvider
	states        *auth.StateCodec
	secureCookies bool
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(
	registration *services.RegistrationService,
	authService *services.AuthService,
	reset *services.PasswordResetService,
	providers map[string]ports.OAuthProvider,
	states *auth.StateCodec,
	secureCookies bool,
	logger ports.Logger,
) *AuthHandler {
	return &AuthHandler{
		responder:     responder{logger: logger},
		registration:  registration,
		auth:          authService,
		reset:         reset,
		providers:     providers,
		states:        states,
		secureCookies: secureCookies,
	}
}

// Register cria uma conta por email e senha
//
//	@Summary	Registro por credenciais
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.RegisterRequest	true	"Dados de registro"
//	@Success	200		{object}	dto.RegisterResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.registration.Submit(c.Request.Context(), req.ToRegistration())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RegisterResponse{
		Message:    dto.T(c, "message.user_created"),
		UserID:     result.UserID,
		Role:       string(result.Role),
		RedirectTo: result.RedirectTo,
	})
}

// CompleteRegistration completa o perfil de uma conta criada via OAuth
//
//	@Summary	Complemento de perfil OAuth
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CompleteRegistrationRequest	true	"Campos do papel"
//	@Success	200		{object}	dto.CompleteRegistrationResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/complete-registration [post]
func (h *AuthHandler) CompleteRegistration(c *gin.Context) {
	var req dto.CompleteRegistrationRequest
	if !h.bind(c, &req) {
		return
	}

	// o token da sessão OAuth só completa o próprio perfil
	identity, _ := middleware.IdentityFrom(c)
	if !strings.EqualFold(strings.TrimSpace(req.Email), identity.Email) {
		h.fail(c, errors.ErrForbidden)
		return
	}
	req.Email = identity.Email

	result, err := h.registration.Submit(c.Request.Context(), req.ToRegistration())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompleteRegistrationResponse(result))
}

// Login troca credenciais por um token
//
//	@Summary	Login por credenciais
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.SessionResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// ForgotPassword responde 200 exista ou não a conta
//
//	@Summary	Solicita link de reset de senha
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body	dto.ForgotPasswordRequest	true	"Email"
//	@Success	200
//	@Router		/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.reset.Forgot(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// ResetPassword troca a senha usando o token do email
//
//	@Summary	Redefine a senha
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.ResetPasswordRequest	true	"Token e nova senha"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.reset.Reset(c.Request.Context(), req.Token, req.Password); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.password_reset")})
}

// OAuthLogin redireciona para a tela de consentimento do provedor
//
//	@Summary	Inicia o login OAuth
//	@Tags		auth
//	@Param		provider	path	string	true	"google ou github"
//	@Success	302
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/auth/{provider}/login [get]
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	name := c.Param("provider")
	provider, ok := h.providers[name]
	if !ok {
		h.fail(c, errors.ErrUnknownOAuthProvider)
		return
	}

	state, cookie, err := h.states.New(name)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.StateCookieName, cookie, int(auth.StateTTL.Seconds()), stateCookiePath, "", h.secureCookies, true)
	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// OAuthCallback valida o state, troca o code e emite a sessão
//
//	@Summary	Callback do provedor OAuth
//	@Tags		auth
//	@Produce	json
//	@Param		provider	path		string	true	"google ou github"
//	@Param		code		query		string	true	"Authorization code"
//	@Param		state		query		string	true	"State"
//	@Success	200			{object}	dto.SessionResponse
//	@Failure	400			{object}	dto.ErrorResponse
//	@Failure	401			{object}	dto.ErrorResponse
//	@Router		/auth/{provider}/callback [get]
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	name := c.Param("provider")
	provider, ok := h.providers[name]
	if !ok {
		h.fail(c, errors.ErrUnknownOAuthProvider)
		return
	}

	cookie, _ := c.Cookie(auth.StateCookieName)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.StateCookieName, "", -1, stateCookiePath, "", h.secureCookies, true)

	if !h.states.Verify(cookie, c.Query("state"), name) {
		h.fail(c, errors.ErrInvalidOAuthState)
		return
	}
	if reason := c.Query("error"); reason != "" || c.Query("code") == "" {
		h.logger.Warn("oauth callback without code", "provider", name, "reason", reason)
		h.fail(c, errors.ErrOAuthSignInFailed)
		return
	}

	profile, err := provider.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Warn("oauth exchange failed", "provider", name, "error", err)
		h.fail(c, errors.ErrOAuthSignInFailed)
		return
	}

	session, err := h.auth.OAuthSignIn(c.Request.Context(), profile)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
