package repositories

import (
	"context"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
)

// CollectionPointRepository define a persistência dos pontos de coleta
type CollectionPointRepository interface {
	// List retorna apenas pontos ativos, do mais recente ao mais antigo
	List(ctx context.Context, filters CollectionPointFilters) ([]*entities.CollectionPoint, error)
	// FindByID inclui pontos inativos e as avaliações
	FindByID(ctx context.Context, id uint) (*entities.CollectionPoint, error)
	// FindOwner carrega apenas o operatorId; found=false quando o ponto não existe
	FindOwner(ctx context.Context, id uint) (operatorID string, found bool, err error)
	Create(ctx context.Context, point *CollectionPointCreate) (uint, error)
	Update(ctx context.Context, id uint, patch *CollectionPointPatch) error
	Delete(ctx context.Context, id uint) error
	ListCoordinates(ctx context.Context) ([]entities.Coordinates, error)
}

// CollectionPointFilters contém filtros para listagem
type CollectionPointFilters struct {
	Search    string // contido no nome OU na cidade
	WasteType string // contido no nome de algum tipo de resíduo
}

// CollectionPointCreate é a criação composta de um ponto de coleta
type CollectionPointCreate struct {
	Name          string
	Description   string
	OperatorID    string
	Accessibility *string
	Capacity      *string
	Images        []string
	IsActive      bool
	Address       *entities.Address
	WasteTypeIDs  []uint
	Schedule      *entities.Schedule
}

// CollectionPointPatch é uma atualização parcial; campos nil não são alterados
type CollectionPointPatch struct {
	Name          *string
	Description   *string
	Accessibility *string
	Capacity      *string
	Images        *[]string
	IsActive      *bool
	Address       *entities.Address
	WasteTypeIDs  *[]uint
	Schedule      *SchedulePatch
}

// SchedulePatch é o upsert do horário; flags nil ficam inalteradas na atualização e false na criação.
// OpeningTime/ClosingTime apontando para "" limpam o valor gravado.
type SchedulePatch struct {
	Monday       *bool
	Tuesday      *bool
	Wednesday    *bool
	Thursday     *bool
	Friday       *bool
	Saturday     *bool
	Sunday       *bool
	OpeningTime  *string
	ClosingTime  *string
	Notes        *string
	IsAlwaysOpen *bool
}

// WasteTypeRepository define a persistência do catálogo de tipos de resíduo
type WasteTypeRepository interface {
	List(ctx context.Context) ([]entities.WasteType, error)
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}
