package dto

import (
	"time"

	"github.com/smartwaste/smartwaste-backend/internal/services"
)

// OperatorResponse é o perfil de operador
type OperatorResponse struct {
	OrganizationName string  `json:"organizationName"`
	Telephone        string  `json:"telephone"`
	Website          *string `json:"website"`
}

// ProfileResponse representa o perfil do usuário autenticado (nunca a senha)
type ProfileResponse struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	Name          string            `json:"name"`
	Surname       *string           `json:"surname"`
	Cellphone     *string           `json:"cellphone"`
	Role          string            `json:"role"`
	OAuthProvider string            `json:"oauthProvider"`
	Operator      *OperatorResponse `json:"operator"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// UpdateProfileRequest é o corpo de PUT /profile; campos ausentes não são alterados
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	Cellphone *string `json:"cellphone"`
	Telephone *string `json:"telephone"`
}

// ToProfileUpdate converte para a entrada do serviço
func (r UpdateProfileRequest) ToProfileUpdate() services.ProfileUpdate {
	return services.ProfileUpdate{
		Name:      r.Name,
		Surname:   r.Surname,
		Cellphone: r.Cellphone,
		Telephone: r.Telephone,
	}
}

// ToProfileResponse converte o perfil carregado
func ToProfileResponse(profile *services.Profile) ProfileResponse {
	user := profile.User
	response := ProfileResponse{
		ID:            user.ID,
		Email:         user.Email.String(),
		Name:          user.Name,
		Surname:       user.Surname,
		Cellphone:     user.Cellphone,
		Role:          string(user.Role),
		OAuthProvider: string(user.OAuthProvider),
		CreatedAt:     user.CreatedAt,
	}
	if op := profile.Operator; op != nil {
		response.Operator = &OperatorResponse{
			OrganizationName: op.OrganizationName,
			Telephone:        op.Telephone,
			Website:          op.Website,
		}
	}
	return response
}
