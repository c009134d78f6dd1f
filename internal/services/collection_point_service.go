package services

import (
	"context"
	"strings"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/sanitize"
	"github.com/smartwaste/smartwaste-backend/internal/validation"
)

// DefaultCountry é aplicado quando o endereço não informa o país
const DefaultCountry = "Italy"

// Action é a operação protegida pela checagem de dono
type Action int

const (
	ActionUpdate Action = iota + 1
	ActionDelete
)

// CollectionPointInput é o payload de criação
type CollectionPointInput struct {
	Name          string
	Description   string
	Accessibility *string
	Capacity      *string
	Images        []string
	IsActive      *bool // nil = ativo
	Address       *entities.Address
	WasteTypeIDs  []uint
	Schedule      *repositories.SchedulePatch
}

// CollectionPointService contém a lógica de leitura e escrita dos pontos de coleta
type CollectionPointService struct {
	pointRepo     repositories.CollectionPointRepository
	wasteTypeRepo repositories.WasteTypeRepository
	operatorRepo  repositories.OperatorRepository
	logger        ports.Logger
}

// NewCollectionPointService cria um novo CollectionPointService
func NewCollectionPointService(
	pointRepo repositories.CollectionPointRepository,
	wasteTypeRepo repositories.WasteTypeRepository,
	operatorRepo repositories.OperatorRepository,
	logger ports.Logger,
) *CollectionPointService {
	return &CollectionPointService{
		pointRepo:     pointRepo,
		wasteTypeRepo: wasteTypeRepo,
		operatorRepo:  operatorRepo,
		logger:        logger,
	}
}

// List retorna os pontos ativos que casam com os filtros
func (s *CollectionPointService) List(ctx context.Context, filters repositories.CollectionPointFilters) ([]*entities.CollectionPoint, error) {
	points, err := s.pointRepo.List(ctx, filters)
	if err != nil {
		return nil, wrap(err)
	}
	return points, nil
}

// Get busca um ponto por id, inclusive inativo
func (s *CollectionPointService) Get(ctx context.Context, id uint) (*entities.CollectionPoint, error) {
	point, err := s.pointRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	if point == nil {
		return nil, errors.ErrCollectionPointNotFound
	}
	return point, nil
}

// Authorize confere que callerID é o operador dono do ponto.
// Lê apenas o operatorId, sempre antes da escrita.
func (s *CollectionPointService) Authorize(ctx context.Context, id uint, callerID string, action Action) error {
	ownerID, found, err := s.pointRepo.FindOwner(ctx, id)
	if err != nil {
		return wrap(err)
	}
	if !found {
		return errors.ErrCollectionPointNotFound
	}
	if ownerID != callerID {
		s.logger.Warn("ownership check failed", "collection_point_id", id, "caller_id", callerID)
		if action == ActionDelete {
			return errors.ErrNotAuthorizedToDelete
		}
		return errors.ErrNotAuthorizedToUpdate
	}
	return nil
}

// Create cria um ponto de coleta do operador autenticado
func (s *CollectionPointService) Create(ctx context.Context, caller *entities.Identity, input CollectionPointInput) (*entities.CollectionPoint, error) {
	if caller == nil {
		return nil, errors.ErrUnauthorized
	}
	// o perfil de operador é a fonte da verdade; o papel no token pode estar desatualizado
	operator, err := s.operatorRepo.FindByUserID(ctx, caller.ID)
	if err != nil {
		return nil, wrap(err)
	}
	if operator == nil {
		return nil, errors.ErrForbidden
	}

	input.Name = sanitize.Text(input.Name)
	input.Description = sanitize.RichText(input.Description)
	if err := validation.Check(validation.PointCreate{Name: input.Name, Description: input.Description}); err != nil {
		return nil, err
	}

	address, err := prepareAddress(input.Address)
	if err != nil {
		return nil, err
	}
	schedule, err := prepareSchedule(input.Schedule)
	if err != nil {
		return nil, err
	}
	wasteTypeIDs := dedupe(input.WasteTypeIDs)
	if err := s.checkWasteTypes(ctx, wasteTypeIDs); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	create := &repositories.CollectionPointCreate{
		Name:          input.Name,
		Description:   input.Description,
		OperatorID:    caller.ID,
		Accessibility: sanitize.TextPtr(input.Accessibility),
		Capacity:      sanitize.TextPtr(input.Capacity),
		Images:        cleanImages(input.Images),
		IsActive:      isActive,
		Address:       address,
		WasteTypeIDs:  wasteTypeIDs,
	}
	if schedule != nil {
		create.Schedule = scheduleDefaults(schedule)
	}

	id, err := s.pointRepo.Create(ctx, create)
	if err != nil {
		return nil, wrap(err)
	}

	s.logger.Info("collection point created", "collection_point_id", id, "operator_id", caller.ID)
	return s.Get(ctx, id)
}

// Update confere o dono e aplica a atualização parcial; devolve o registro recarregado
func (s *CollectionPointService) Update(ctx context.Context, id uint, callerID string, patch repositories.CollectionPointPatch) (*entities.CollectionPoint, error) {
	if err := s.Authorize(ctx, id, callerID, ActionUpdate); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := sanitize.Text(*patch.Name)
		patch.Name = &name
	}
	if patch.Description != nil {
		description := sanitize.RichText(*patch.Description)
		patch.Description = &description
	}
	if err := validation.Check(validation.PointUpdate{Name: patch.Name, Description: patch.Description}); err != nil {
		return nil, err
	}
	patch.Accessibility = sanitize.TextPtr(patch.Accessibility)
	patch.Capacity = sanitize.TextPtr(patch.Capacity)

	address, err := prepareAddress(patch.Address)
	if err != nil {
		return nil, err
	}
	patch.Address = address

	schedule, err := prepareSchedule(patch.Schedule)
	if err != nil {
		return nil, err
	}
	patch.Schedule = schedule

	if patch.Images != nil {
		images := cleanImages(*patch.Images)
		patch.Images = &images
	}
	if patch.WasteTypeIDs != nil {
		ids := dedupe(*patch.WasteTypeIDs)
		if err := s.checkWasteTypes(ctx, ids); err != nil {
			return nil, err
		}
		patch.WasteTypeIDs = &ids
	}

	if err := s.pointRepo.Update(ctx, id, &patch); err != nil {
		return nil, wrap(err)
	}

	s.logger.Info("collection point updated", "collection_point_id", id)
	return s.Get(ctx, id)
}

// Delete confere o dono e remove o ponto
func (s *CollectionPointService) Delete(ctx context.Context, id uint, callerID string) error {
	if err := s.Authorize(ctx, id, callerID, ActionDelete); err != nil {
		return err
	}
	if err := s.pointRepo.Delete(ctx, id); err != nil {
		return wrap(err)
	}

	s.logger.Info("collection point deleted", "collection_point_id", id)
	return nil
}

// Coordinates retorna a projeção de todos os pontos para o mapa
func (s *CollectionPointService) Coordinates(ctx context.Context) ([]entities.Coordinates, error) {
	coords, err := s.pointRepo.ListCoordinates(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	return coords, nil
}

// WasteTypes retorna o catálogo completo
func (s *CollectionPointService) WasteTypes(ctx context.Context) ([]entities.WasteType, error) {
	types, err := s.wasteTypeRepo.List(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	return types, nil
}

func (s *CollectionPointService) checkWasteTypes(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.wasteTypeRepo.CountByIDs(ctx, ids)
	if err != nil {
		return wrap(err)
	}
	if count != int64(len(ids)) {
		return errors.ErrUnknownWasteType
	}
	return nil
}

func prepareAddress(address *entities.Address) (*entities.Address, error) {
	if address == nil {
		return nil, nil
	}

	a := *address
	a.Street = sanitize.Text(a.Street)
	a.City = sanitize.Text(a.City)
	a.Zip = sanitize.Text(a.Zip)
	a.Country = sanitize.Text(a.Country)
	a.Number = sanitize.TextPtr(a.Number)
	if a.Country == "" {
		a.Country = DefaultCountry
	}

	if err := validation.Check(validation.AddressFields{
		Street:    a.Street,
		City:      a.City,
		Zip:       a.Zip,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}); err != nil {
		return nil, err
	}
	return &a, nil
}

func prepareSchedule(schedule *repositories.SchedulePatch) (*repositories.SchedulePatch, error) {
	if schedule == nil {
		return nil, nil
	}

	sc := *schedule
	// "" presente limpa o horário; nil mantém
	sc.OpeningTime = trimmedPtr(sc.OpeningTime)
	sc.ClosingTime = trimmedPtr(sc.ClosingTime)
	sc.Notes = sanitize.TextPtr(sc.Notes)

	if err := validation.Check(validation.ScheduleTimes{
		OpeningTime: emptyToNil(sc.OpeningTime),
		ClosingTime: emptyToNil(sc.ClosingTime),
	}); err != nil {
		return nil, err
	}
	return &sc, nil
}

// scheduleDefaults materializa o horário de criação com flags ausentes em false
func scheduleDefaults(sc *repositories.SchedulePatch) *entities.Schedule {
	flag := func(b *bool) bool { return b != nil && *b }
	return &entities.Schedule{
		Monday:       flag(sc.Monday),
		Tuesday:      flag(sc.Tuesday),
		Wednesday:    flag(sc.Wednesday),
		Thursday:     flag(sc.Thursday),
		Friday:       flag(sc.Friday),
		Saturday:     flag(sc.Saturday),
		Sunday:       flag(sc.Sunday),
		OpeningTime:  emptyToNil(sc.OpeningTime),
		ClosingTime:  emptyToNil(sc.ClosingTime),
		Notes:        sc.Notes,
		IsAlwaysOpen: flag(sc.IsAlwaysOpen),
	}
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
