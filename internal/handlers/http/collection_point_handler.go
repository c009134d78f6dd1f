package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/dto"
	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

// CollectionPointHandler expõe os pontos de coleta, o mapa e o catálogo de resíduos
type CollectionPointHandler struct {
	responder
	points *services.CollectionPointService
}

// NewCollectionPointHandler cria um novo CollectionPointHandler
func NewCollectionPointHandler(points *services.CollectionPointService, logger ports.Logger) *CollectionPointHandler {
	return &CollectionPointHandler{
		responder: responder{logger: logger},
		points:    points,
	}
}

// List lista os pontos ativos
//
//	@Summary	Lista pontos de coleta
//	@Tags		collection-points
//	@Produce	json
//	@Param		search		query		string	false	"Trecho do nome ou da cidade"
//	@Param		wasteType	query		string	false	"Trecho do nome do tipo de resíduo"
//	@Success	200			{array}		dto.CollectionPointResponse
//	@Router		/collection-points [get]
func (h *CollectionPointHandler) List(c *gin.Context) {
	points, err := h.points.List(c.Request.Context(), repositories.CollectionPointFilters{
		Search:    c.Query("search"),
		WasteType: c.Query("wasteType"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollectionPointResponses(points))
}

// Get retorna um ponto com avaliações
//
//	@Summary	Detalhe do ponto de coleta
//	@Tags		collection-points
//	@Produce	json
//	@Param		id	path		int	true	"ID do ponto"
//	@Success	200	{object}	dto.CollectionPointDetailResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/collection-points/{id} [get]
func (h *CollectionPointHandler) Get(c *gin.Context) {
	id, ok := h.pointID(c)
	if !ok {
		return
	}

	point, err := h.points.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollectionPointDetailResponse(point))
}

// Create cria um ponto do operador autenticado
//
//	@Summary	Cria ponto de coleta
//	@Tags		collection-points
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CreateCollectionPointRequest	true	"Ponto"
//	@Success	201		{object}	dto.CollectionPointResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/collection-points [post]
func (h *CollectionPointHandler) Create(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.CreateCollectionPointRequest
	if !h.bind(c, &req) {
		return
	}

	point, err := h.points.Create(c.Request.Context(), identity, req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCollectionPointResponse(point))
}

// Update aplica uma atualização parcial, só para o dono
//
//	@Summary	Atualiza ponto de coleta
//	@Tags		collection-points
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int									true	"ID do ponto"
//	@Param		body	body		dto.UpdateCollectionPointRequest	true	"Campos alterados"
//	@Success	200		{object}	dto.CollectionPointResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/collection-points/{id} [put]
func (h *CollectionPointHandler) Update(c *gin.Context) {
	id, ok := h.pointID(c)
	if !ok {
		return
	}
	identity, _ := middleware.IdentityFrom(c)

	// dono é conferido antes de ler o corpo
	if err := h.points.Authorize(c.Request.Context(), id, identity.ID, services.ActionUpdate); err != nil {
		h.fail(c, err)
		return
	}

	var req dto.UpdateCollectionPointRequest
	if !h.bind(c, &req) {
		return
	}

	point, err := h.points.Update(c.Request.Context(), id, identity.ID, req.ToPatch())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollectionPointResponse(point))
}

// Delete remove um ponto, só para o dono
//
//	@Summary	Remove ponto de coleta
//	@Tags		collection-points
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"ID do ponto"
//	@Success	200	{object}	dto.SuccessResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/collection-points/{id} [delete]
func (h *CollectionPointHandler) Delete(c *gin.Context) {
	id, ok := h.pointID(c)
	if !ok {
		return
	}
	identity, _ := middleware.IdentityFrom(c)

	if err := h.points.Delete(c.Request.Context(), id, identity.ID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Map retorna as coordenadas de todos os pontos
//
//	@Summary	Coordenadas para o mapa
//	@Tags		collection-points
//	@Produce	json
//	@Success	200	{array}	dto.CoordinatesResponse
//	@Router		/map [get]
func (h *CollectionPointHandler) Map(c *gin.Context) {
	coords, err := h.points.Coordinates(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCoordinatesResponses(coords))
}

// Services retorna o catálogo de tipos de resíduo
//
//	@Summary	Catálogo de resíduos
//	@Tags		collection-points
//	@Produce	json
//	@Success	200	{array}	dto.WasteTypeResponse
//	@Router		/services [get]
func (h *CollectionPointHandler) Services(c *gin.Context) {
	types, err := h.points.WasteTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWasteTypeResponses(types))
}
