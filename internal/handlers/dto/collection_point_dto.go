package dto

import (
	"time"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

// AddressRequest é o endereço enviado na criação e na substituição
type AddressRequest struct {
	Street    string  `json:"street"`
	Number    *string `json:"number"`
	City      string  `json:"city"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ScheduleRequest é o horário; flags ausentes ficam inalteradas (update) ou false (criação)
type ScheduleRequest struct {
	Monday       *bool   `json:"monday"`
	Tuesday      *bool   `json:"tuesday"`
	Wednesday    *bool   `json:"wednesday"`
	Thursday     *bool   `json:"thursday"`
	Friday       *bool   `json:"friday"`
	Saturday     *bool   `json:"saturday"`
	Sunday       *bool   `json:"sunday"`
	OpeningTime  *string `json:"openingTime"`
	ClosingTime  *string `json:"closingTime"`
	Notes        *string `json:"notes"`
	IsAlwaysOpen *bool   `json:"isAlwaysOpen"`
}

// CreateCollectionPointRequest é o corpo de POST /collection-points
type CreateCollectionPointRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Accessibility *string          `json:"accessibility"`
	Capacity      *string          `json:"capacity"`
	Images        []string         `json:"images"`
	IsActive      *bool            `json:"isActive"`
	Address       *AddressRequest  `json:"address"`
	WasteTypeIDs  []uint           `json:"wasteTypeIds"`
	Schedule      *ScheduleRequest `json:"schedule"`
}

// UpdateCollectionPointRequest é o corpo de PUT /collection-points/:id; campos ausentes não mudam
type UpdateCollectionPointRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Accessibility *string          `json:"accessibility"`
	Capacity      *string          `json:"capacity"`
	Images        *[]string        `json:"images"`
	IsActive      *bool            `json:"isActive"`
	Address       *AddressRequest  `json:"address"`
	WasteTypeIDs  *[]uint          `json:"wasteTypeIds"`
	Schedule      *ScheduleRequest `json:"schedule"`
}

// ToInput converte para a entrada de criação
func (r CreateCollectionPointRequest) ToInput() services.CollectionPointInput {
	return services.CollectionPointInput{
		Name:          r.Name,
		Description:   r.Description,
		Accessibility: r.Accessibility,
		Capacity:      r.Capacity,
		Images:        r.Images,
		IsActive:      r.IsActive,
		Address:       r.Address.toEntity(),
		WasteTypeIDs:  r.WasteTypeIDs,
		Schedule:      r.Schedule.toPatch(),
	}
}

// ToPatch converte para a atualização parcial
func (r UpdateCollectionPointRequest) ToPatch() repositories.CollectionPointPatch {
	return repositories.CollectionPointPatch{
		Name:          r.Name,
		Description:   r.Description,
		Accessibility: r.Accessibility,
		Capacity:      r.Capacity,
		Images:        r.Images,
		IsActive:      r.IsActive,
		Address:       r.Address.toEntity(),
		WasteTypeIDs:  r.WasteTypeIDs,
		Schedule:      r.Schedule.toPatch(),
	}
}

func (a *AddressRequest) toEntity() *entities.Address {
	if a == nil {
		return nil
	}
	return &entities.Address{
		Street:    a.Street,
		Number:    a.Number,
		City:      a.City,
		Zip:       a.Zip,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func (s *ScheduleRequest) toPatch() *repositories.SchedulePatch {
	if s == nil {
		return nil
	}
	return &repositories.SchedulePatch{
		Monday:       s.Monday,
		Tuesday:      s.Tuesday,
		Wednesday:    s.Wednesday,
		Thursday:     s.Thursday,
		Friday:       s.Friday,
		Saturday:     s.Saturday,
		Sunday:       s.Sunday,
		OpeningTime:  s.OpeningTime,
		ClosingTime:  s.ClosingTime,
		Notes:        s.Notes,
		IsAlwaysOpen: s.IsAlwaysOpen,
	}
}

// AddressResponse representa o endereço de um ponto
type AddressResponse struct {
	Street    string  `json:"street"`
	Number    *string `json:"number"`
	City      string  `json:"city"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ScheduleResponse representa o horário de um ponto
type ScheduleResponse struct {
	Monday       bool    `json:"monday"`
	Tuesday      bool    `json:"tuesday"`
	Wednesday    bool    `json:"wednesday"`
	Thursday     bool    `json:"thursday"`
	Friday       bool    `json:"friday"`
	Saturday     bool    `json:"saturday"`
	Sunday       bool    `json:"sunday"`
	OpeningTime  *string `json:"openingTime"`
	ClosingTime  *string `json:"closingTime"`
	Notes        *string `json:"notes"`
	IsAlwaysOpen bool    `json:"isAlwaysOpen"`
}

// WasteTypeResponse representa um tipo de resíduo do catálogo
type WasteTypeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// UserSummaryResponse é o usuário do operador: apenas id, nome e email
type UserSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OperatorSummaryResponse é o operador dono de um ponto
type OperatorSummaryResponse struct {
	OrganizationName string              `json:"organizationName"`
	Telephone        string              `json:"telephone"`
	Website          *string             `json:"website"`
	User             UserSummaryResponse `json:"user"`
}

// ReviewResponse é uma avaliação com o nome do autor
type ReviewResponse struct {
	ID        uint               `json:"id"`
	Rating    int                `json:"rating"`
	Comment   *string            `json:"comment"`
	User      ReviewUserResponse `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ReviewUserResponse é o autor de uma avaliação
type ReviewUserResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Surname *string `json:"surname"`
}

// CollectionPointResponse representa um ponto na listagem
type CollectionPointResponse struct {
	ID            uint                     `json:"id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Accessibility *string                  `json:"accessibility"`
	Capacity      *string                  `json:"capacity"`
	Images        []string                 `json:"images"`
	IsActive      bool                     `json:"isActive"`
	OperatorID    string                   `json:"operatorId"`
	Operator      *OperatorSummaryResponse `json:"operator"`
	Address       *AddressResponse         `json:"address"`
	Schedule      *ScheduleResponse        `json:"schedule"`
	WasteTypes    []WasteTypeResponse      `json:"wasteTypes"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// CollectionPointDetailResponse acrescenta as avaliações à leitura individual
type CollectionPointDetailResponse struct {
	CollectionPointResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// CoordinatesAddressResponse é o recorte do endereço usado no mapa
type CoordinatesAddressResponse struct {
	Street    string  `json:"street"`
	Number    *string `json:"number"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CoordinatesResponse é um marcador do mapa
type CoordinatesResponse struct {
	ID      uint                        `json:"id"`
	Name    string                      `json:"name"`
	Address *CoordinatesAddressResponse `json:"address"`
}

// ToCollectionPointResponse converte um ponto carregado
func ToCollectionPointResponse(point *entities.CollectionPoint) CollectionPointResponse {
	response := CollectionPointResponse{
		ID:            point.ID,
		Name:          point.Name,
		Description:   point.Description,
		Accessibility: point.Accessibility,
		Capacity:      point.Capacity,
		Images:        point.Images,
		IsActive:      point.IsActive,
		OperatorID:    point.OperatorID,
		WasteTypes:    ToWasteTypeResponses(point.WasteTypes),
		CreatedAt:     point.CreatedAt,
		UpdatedAt:     point.UpdatedAt,
	}
	if response.Images == nil {
		response.Images = []string{}
	}

	if op := point.Operator; op != nil {
		response.Operator = &OperatorSummaryResponse{
			OrganizationName: op.OrganizationName,
			Telephone:        op.Telephone,
			Website:          op.Website,
			User:             UserSummaryResponse{ID: op.UserID, Name: op.UserName, Email: op.UserEmail},
		}
	}
	if a := point.Address; a != nil {
		response.Address = &AddressResponse{
			Street:    a.Street,
			Number:    a.Number,
			City:      a.City,
			Zip:       a.Zip,
			Country:   a.Country,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		}
	}
	if s := point.Schedule; s != nil {
		response.Schedule = &ScheduleResponse{
			Monday:       s.Monday,
			Tuesday:      s.Tuesday,
			Wednesday:    s.Wednesday,
			Thursday:     s.Thursday,
			Friday:       s.Friday,
			Saturday:     s.Saturday,
			Sunday:       s.Sunday,
			OpeningTime:  s.OpeningTime,
			ClosingTime:  s.ClosingTime,
			Notes:        s.Notes,
			IsAlwaysOpen: s.IsAlwaysOpen,
		}
	}
	return response
}

// ToCollectionPointResponses converte a listagem
func ToCollectionPointResponses(points []*entities.CollectionPoint) []CollectionPointResponse {
	responses := make([]CollectionPointResponse, len(points))
	for i, point := range points {
		responses[i] = ToCollectionPointResponse(point)
	}
	return responses
}

// ToCollectionPointDetailResponse converte a leitura individual, com avaliações
func ToCollectionPointDetailResponse(point *entities.CollectionPoint) CollectionPointDetailResponse {
	reviews := make([]ReviewResponse, len(point.Reviews))
	for i, r := range point.Reviews {
		reviews[i] = ReviewResponse{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			User:      ReviewUserResponse{ID: r.UserID, Name: r.UserName, Surname: r.UserSurname},
			CreatedAt: r.CreatedAt,
		}
	}
	return CollectionPointDetailResponse{
		CollectionPointResponse: ToCollectionPointResponse(point),
		Reviews:                 reviews,
	}
}

// ToWasteTypeResponses converte o catálogo
func ToWasteTypeResponses(types []entities.WasteType) []WasteTypeResponse {
	responses := make([]WasteTypeResponse, len(types))
	for i, wt := range types {
		responses[i] = WasteTypeResponse{
			ID:          wt.ID,
			Name:        wt.Name,
			Color:       wt.Color,
			Icon:        wt.Icon,
			Description: wt.Description,
		}
	}
	return responses
}

// ToCoordinatesResponses converte os marcadores do mapa
func ToCoordinatesResponses(coords []entities.Coordinates) []CoordinatesResponse {
	responses := make([]CoordinatesResponse, len(coords))
	for i, c := range coords {
		responses[i] = CoordinatesResponse{ID: c.ID, Name: c.Name}
		if a := c.Address; a != nil {
			responses[i].Address = &CoordinatesAddressResponse{
				Street:    a.Street,
				Number:    a.Number,
				City:      a.City,
				Latitude:  a.Latitude,
				Longitude: a.Longitude,
			}
		}
	}
	return responses
}
