package dto

import (
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

// RegisterRequest é o corpo de POST /register.
// Campos ausentes são tratados pelo serviço, que devolve as mensagens esperadas pelos clientes.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// ToRegistration converte para o pedido de registro por credenciais
func (r RegisterRequest) ToRegistration() services.RegistrationRequest {
	return services.RegistrationRequest{
		Kind:     services.RegistrationCredentialed,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Name:     r.Name,
		Surname:  r.Surname,
	}
}

// CompleteRegistrationRequest é o corpo de POST /complete-registration
type CompleteRegistrationRequest struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ToRegistration converte para o pedido de complemento de perfil OAuth
func (r CompleteRegistrationRequest) ToRegistration() services.RegistrationRequest {
	return services.RegistrationRequest{
		Kind:    services.RegistrationOAuthCompletion,
		Email:   r.Email,
		Role:    r.Role,
		Name:    r.Name,
		Surname: r.Surname,
	}
}

// RegisterResponse é a resposta de POST /register
type RegisterResponse struct {
	Message    string `json:"message"`
	UserID     string `json:"userId"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirectTo"`
}

// CompleteRegistrationResponse é a resposta de POST /complete-registration
type CompleteRegistrationResponse struct {
	Success    bool   `json:"success"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirectTo"`
}

// ToCompleteRegistrationResponse converte o resultado da transição
func ToCompleteRegistrationResponse(result *services.RegistrationResult) CompleteRegistrationResponse {
	return CompleteRegistrationResponse{
		Success:    true,
		Role:       string(result.Role),
		RedirectTo: result.RedirectTo,
	}
}

// LoginRequest é o corpo de POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest é o corpo de POST /forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest é o corpo de POST /reset-password
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// IdentityResponse é a identidade mínima do usuário autenticado
type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResponse é a resposta de login por credenciais e do callback OAuth
type SessionResponse struct {
	Token           string           `json:"token"`
	TokenType       string           `json:"tokenType"`
	User            IdentityResponse `json:"user"`
	ProfileComplete bool             `json:"profileComplete"`
	RedirectTo      string           `json:"redirectTo"`
}

// ToSessionResponse converte uma sessão emitida
func ToSessionResponse(session *services.Session) SessionResponse {
	return SessionResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		User: IdentityResponse{
			ID:    session.Identity.ID,
			Email: session.Identity.Email,
			Role:  string(session.Identity.Role),
		},
		ProfileComplete: session.ProfileComplete,
		RedirectTo:      session.RedirectTo,
	}
}
