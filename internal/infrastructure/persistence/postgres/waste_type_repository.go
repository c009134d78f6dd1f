package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
)

// WasteTypeRepository implementa repositories.WasteTypeRepository
type WasteTypeRepository struct {
	db *gorm.DB
}

// NewWasteTypeRepository cria um novo WasteTypeRepository
func NewWasteTypeRepository(db *gorm.DB) repositories.WasteTypeRepository {
	return &WasteTypeRepository{db: db}
}

func (r *WasteTypeRepository) List(ctx context.Context) ([]entities.WasteType, error) {
	var models []WasteTypeModel
	if err := dbFrom(ctx, r.db).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	types := make([]entities.WasteType, 0, len(models))
	for i := range models {
		types = append(types, wasteTypeToEntity(&models[i]))
	}
	return types, nil
}

// CountByIDs conta quantos dos ids informados existem no catálogo
func (r *WasteTypeRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	err := dbFrom(ctx, r.db).Model(&WasteTypeModel{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
