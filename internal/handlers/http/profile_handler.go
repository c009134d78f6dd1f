package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/dto"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

// ProfileHandler lida com o perfil do usuário autenticado
type ProfileHandler struct {
	responder
	profiles *services.ProfileService
}

// NewProfileHandler cria um novo ProfileHandler
func NewProfileHandler(profiles *services.ProfileService, logger ports.Logger) *ProfileHandler {
	return &ProfileHandler{
		responder: responder{logger: logger},
		profiles:  profiles,
	}
}

// Get retorna o próprio perfil
//
//	@Summary	Perfil do usuário autenticado
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ProfileResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	profile, err := h.profiles.Get(c.Request.Context(), identity.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// Update altera nome, sobrenome e telefones
//
//	@Summary	Atualiza o perfil
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.UpdateProfileRequest	true	"Campos alterados"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.UpdateProfileRequest
	if !h.bind(c, &req) {
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), identity.ID, req.ToProfileUpdate())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// Delete remove a conta e tudo que pertence a ela
//
//	@Summary	Remove a conta
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.SuccessResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/profile [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.profiles.Delete(c.Request.Context(), identity.ID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
