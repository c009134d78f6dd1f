package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
)

// collectionPointWasteType é a linha da tabela de junção
type collectionPointWasteType struct {
	CollectionPointID uint
	WasteTypeID       uint
}

func (collectionPointWasteType) TableName() string {
	return "collection_point_waste_types"
}

// CollectionPointRepository implementa repositories.CollectionPointRepository
type CollectionPointRepository struct {
	db *gorm.DB
}

// NewCollectionPointRepository cria um novo CollectionPointRepository
func NewCollectionPointRepository(db *gorm.DB) repositories.CollectionPointRepository {
	return &CollectionPointRepository{db: db}
}

func (r *CollectionPointRepository) List(ctx context.Context, filters repositories.CollectionPointFilters) ([]*entities.CollectionPoint, error) {
	db := dbFrom(ctx, r.db)

	query := r.withDetails(db.Model(&CollectionPointModel{})).
		Where("collection_points.is_active = ?", true)

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := likePattern(search)
		cities := db.Model(&AddressModel{}).
			Select("collection_point_id").
			Where("city LIKE ? ESCAPE '\\'", pattern)
		query = query.Where("collection_points.name LIKE ? ESCAPE '\\' OR collection_points.id IN (?)", pattern, cities)
	}

	if wasteType := strings.TrimSpace(filters.WasteType); wasteType != "" {
		matching := db.Table("collection_point_waste_types AS cpwt").
			Select("cpwt.collection_point_id").
			Joins("JOIN waste_types wt ON wt.id = cpwt.waste_type_id").
			Where("wt.name LIKE ? ESCAPE '\\'", likePattern(wasteType))
		query = query.Where("collection_points.id IN (?)", matching)
	}

	var models []CollectionPointModel
	if err := query.Order("collection_points.created_at DESC, collection_points.id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	points := make([]*entities.CollectionPoint, 0, len(models))
	for i := range models {
		points = append(points, r.toEntity(&models[i]))
	}
	return points, nil
}

func (r *CollectionPointRepository) FindByID(ctx context.Context, id uint) (*entities.CollectionPoint, error) {
	var model CollectionPointModel

	err := r.withDetails(dbFrom(ctx, r.db)).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "surname")
		}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	point := r.toEntity(&model)
	if point.Reviews == nil {
		point.Reviews = []entities.Review{}
	}
	return point, nil
}

func (r *CollectionPointRepository) FindOwner(ctx context.Context, id uint) (string, bool, error) {
	var row struct {
		OperatorID string
	}

	err := dbFrom(ctx, r.db).Model(&CollectionPointModel{}).
		Select("operator_id").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return row.OperatorID, true, nil
}

// Create grava ponto, endereço, horário e vínculos de tipos numa única transação
func (r *CollectionPointRepository) Create(ctx context.Context, in *repositories.CollectionPointCreate) (uint, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}

	model := &CollectionPointModel{
		Name:          in.Name,
		Description:   in.Description,
		Accessibility: in.Accessibility,
		Capacity:      in.Capacity,
		Images:        datatypes.NewJSONSlice(images),
		IsActive:      in.IsActive,
		OperatorID:    in.OperatorID,
	}
	if in.Address != nil {
		model.Address = addressToModel(in.Address)
	}
	if in.Schedule != nil {
		model.Schedule = scheduleToModel(in.Schedule)
	}

	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return linkWasteTypes(tx, model.ID, in.WasteTypeIDs)
	})
	if err != nil {
		return 0, err
	}

	return model.ID, nil
}

// Update aplica o patch; endereço é substituído ou criado, tipos são trocados como conjunto
// e o horário recebe upsert
func (r *CollectionPointRepository) Update(ctx context.Context, id uint, patch *repositories.CollectionPointPatch) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if updates := scalarUpdates(patch); len(updates) > 0 {
			if err := tx.Model(&CollectionPointModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Address != nil {
			if err := upsertAddress(tx, id, patch.Address); err != nil {
				return err
			}
		}

		if patch.WasteTypeIDs != nil {
			if err := tx.Where("collection_point_id = ?", id).Delete(&collectionPointWasteType{}).Error; err != nil {
				return err
			}
			if err := linkWasteTypes(tx, id, *patch.WasteTypeIDs); err != nil {
				return err
			}
		}

		if patch.Schedule != nil {
			if err := upsertSchedule(tx, id, patch.Schedule); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete remove o ponto e tudo que depende dele
func (r *CollectionPointRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		dependents := []any{
			&collectionPointWasteType{},
			&AddressModel{},
			&ScheduleModel{},
			&ReviewModel{},
		}
		for _, model := range dependents {
			if err := tx.Where("collection_point_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&CollectionPointModel{}).Error
	})
}

func (r *CollectionPointRepository) ListCoordinates(ctx context.Context) ([]entities.Coordinates, error) {
	var models []CollectionPointModel

	err := dbFrom(ctx, r.db).
		Select("id", "name").
		Preload("Address").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	coords := make([]entities.Coordinates, 0, len(models))
	for _, m := range models {
		c := entities.Coordinates{ID: m.ID, Name: m.Name}
		if m.Address != nil {
			c.Address = addressToEntity(m.Address)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// withDetails carrega as relações de leitura; do usuário do operador só id, nome e email
func (r *CollectionPointRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Address").
		Preload("Schedule").
		Preload("WasteTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Operator").
		Preload("Operator.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
}

func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}

func linkWasteTypes(tx *gorm.DB, pointID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(ids))
	rows := make([]collectionPointWasteType, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, collectionPointWasteType{CollectionPointID: pointID, WasteTypeID: id})
	}
	return tx.Create(&rows).Error
}

func scalarUpdates(patch *repositories.CollectionPointPatch) map[string]any {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Accessibility != nil {
		updates["accessibility"] = *patch.Accessibility
	}
	if patch.Capacity != nil {
		updates["capacity"] = *patch.Capacity
	}
	if patch.Images != nil {
		images := *patch.Images
		if images == nil {
			images = []string{}
		}
		updates["images"] = datatypes.NewJSONSlice(images)
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	return updates
}

func upsertAddress(tx *gorm.DB, pointID uint, address *entities.Address) error {
	var existing AddressModel
	err := tx.Where("collection_point_id = ?", pointID).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model := addressToModel(address)
		model.CollectionPointID = pointID
		return tx.Create(model).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&AddressModel{}).Where("id = ?", existing.ID).Updates(map[string]any{
		"street":    address.Street,
		"number":    address.Number,
		"city":      address.City,
		"zip":       address.Zip,
		"country":   address.Country,
		"latitude":  address.Latitude,
		"longitude": address.Longitude,
	}).Error
}

func upsertSchedule(tx *gorm.DB, pointID uint, patch *repositories.SchedulePatch) error {
	var existing ScheduleModel
	err := tx.Where("collection_point_id = ?", pointID).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model := &ScheduleModel{
			CollectionPointID: pointID,
			Monday:            boolOrFalse(patch.Monday),
			Tuesday:           boolOrFalse(patch.Tuesday),
			Wednesday:         boolOrFalse(patch.Wednesday),
			Thursday:          boolOrFalse(patch.Thursday),
			Friday:            boolOrFalse(patch.Friday),
			Saturday:          boolOrFalse(patch.Saturday),
			Sunday:            boolOrFalse(patch.Sunday),
			OpeningTime:       nilIfEmpty(patch.OpeningTime),
			ClosingTime:       nilIfEmpty(patch.ClosingTime),
			Notes:             patch.Notes,
			IsAlwaysOpen:      boolOrFalse(patch.IsAlwaysOpen),
		}
		return tx.Create(model).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]any{}
	flags := map[string]*bool{
		"monday":         patch.Monday,
		"tuesday":        patch.Tuesday,
		"wednesday":      patch.Wednesday,
		"thursday":       patch.Thursday,
		"friday":         patch.Friday,
		"saturday":       patch.Saturday,
		"sunday":         patch.Sunday,
		"is_always_open": patch.IsAlwaysOpen,
	}
	for column, value := range flags {
		if value != nil {
			updates[column] = *value
		}
	}
	// horário presente e vazio grava NULL
	for column, value := range map[string]*string{
		"opening_time": patch.OpeningTime,
		"closing_time": patch.ClosingTime,
	} {
		switch {
		case value == nil:
		case *value == "":
			updates[column] = nil
		default:
			updates[column] = *value
		}
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if len(updates) == 0 {
		return nil
	}

	return tx.Model(&ScheduleModel{}).Where("id = ?", existing.ID).Updates(updates).Error
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func boolOrFalse(b *bool) bool {
	return b != nil && *b
}

// Conversores
func addressToModel(a *entities.Address) *AddressModel {
	return &AddressModel{
		Street:    a.Street,
		Number:    a.Number,
		City:      a.City,
		Zip:       a.Zip,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func addressToEntity(m *AddressModel) *entities.Address {
	return &entities.Address{
		Street:    m.Street,
		Number:    m.Number,
		City:      m.City,
		Zip:       m.Zip,
		Country:   m.Country,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

func scheduleToModel(s *entities.Schedule) *ScheduleModel {
	return &ScheduleModel{
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

func scheduleToEntity(m *ScheduleModel) *entities.Schedule {
	return &entities.Schedule{
		Monday:       m.Monday,
		Tuesday:      m.Tuesday,
		Wednesday:    m.Wednesday,
		Thursday:     m.Thursday,
		Friday:       m.Friday,
		Saturday:     m.Saturday,
		Sunday:       m.Sunday,
		OpeningTime:  m.OpeningTime,
		ClosingTime:  m.ClosingTime,
		Notes:        m.Notes,
		IsAlwaysOpen: m.IsAlwaysOpen,
	}
}

func wasteTypeToEntity(m *WasteTypeModel) entities.WasteType {
	return entities.WasteType{
		ID:          m.ID,
		Name:        m.Name,
		Color:       m.Color,
		Icon:        m.Icon,
		Description: m.Description,
	}
}

func (r *CollectionPointRepository) toEntity(m *CollectionPointModel) *entities.CollectionPoint {
	images := []string(m.Images)
	if images == nil {
		images = []string{}
	}

	point := &entities.CollectionPoint{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Accessibility: m.Accessibility,
		Capacity:      m.Capacity,
		Images:        images,
		IsActive:      m.IsActive,
		OperatorID:    m.OperatorID,
		WasteTypes:    make([]entities.WasteType, 0, len(m.WasteTypes)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Operator != nil {
		summary := &entities.OperatorSummary{
			UserID:           m.Operator.UserID,
			OrganizationName: m.Operator.OrganizationName,
			Telephone:        m.Operator.Telephone,
			Website:          m.Operator.Website,
		}
		if m.Operator.User != nil {
			summary.UserName = m.Operator.User.Name
			summary.UserEmail = m.Operator.User.Email
		}
		point.Operator = summary
	}
	if m.Address != nil {
		point.Address = addressToEntity(m.Address)
	}
	if m.Schedule != nil {
		point.Schedule = scheduleToEntity(m.Schedule)
	}
	for i := range m.WasteTypes {
		point.WasteTypes = append(point.WasteTypes, wasteTypeToEntity(&m.WasteTypes[i]))
	}
	if m.Reviews != nil {
		point.Reviews = make([]entities.Review, 0, len(m.Reviews))
		for _, rv := range m.Reviews {
			review := entities.Review{
				ID:        rv.ID,
				Rating:    rv.Rating,
				Comment:   rv.Comment,
				UserID:    rv.UserID,
				CreatedAt: rv.CreatedAt,
			}
			if rv.User != nil {
				review.UserName = rv.User.Name
				review.UserSurname = rv.User.Surname
			}
			point.Reviews = append(point.Reviews, review)
		}
	}

	return point
}
