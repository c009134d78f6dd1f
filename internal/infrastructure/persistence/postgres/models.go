package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID               string     `gorm:"type:uuid;primaryKey"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password         *string    `gorm:"type:varchar(255)"`
	Name             string     `gorm:"type:varchar(100);not null"`
	Surname          *string    `gorm:"type:varchar(100)"`
	Cellphone        *string    `gorm:"type:varchar(50)"`
	Role             string     `gorm:"type:varchar(20);not null;index"`
	OAuthProvider    string     `gorm:"column:oauth_provider;type:varchar(20);not null"`
	OAuthID          *string    `gorm:"column:oauth_id;type:varchar(255)"`
	ResetToken       *string    `gorm:"type:varchar(64);uniqueIndex"`
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// OperatorModel é o perfil 1:1 de operador, com chave igual ao id do usuário
type OperatorModel struct {
	UserID           string     `gorm:"type:uuid;primaryKey"`
	User             *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	OrganizationName string     `gorm:"type:varchar(255);not null"`
	Telephone        string     `gorm:"type:varchar(50);not null"`
	Website          *string    `gorm:"type:varchar(255)"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

func (OperatorModel) TableName() string {
	return "operators"
}

// AccountModel é a identidade externa criada no primeiro login OAuth
type AccountModel struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	UserID            string     `gorm:"type:uuid;not null;index"`
	User              *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Type              string     `gorm:"type:varchar(20);not null"`
	Provider          string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_provider_account"`
	ProviderAccountID string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_provider_account"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

// WasteTypeModel é o catálogo de tipos de resíduo
type WasteTypeModel struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	Color       *string `gorm:"type:varchar(20)"`
	Icon        *string `gorm:"type:varchar(100)"`
	Description *string `gorm:"type:text"`
}

func (WasteTypeModel) TableName() string {
	return "waste_types"
}

// CollectionPointModel é o model GORM para pontos de coleta
// Endereço, horário e avaliações são removidos em cascata; a tabela de junção é limpa na exclusão.
type CollectionPointModel struct {
	ID            uint                        `gorm:"primaryKey"`
	Name          string                      `gorm:"type:varchar(255);not null"`
	Description   string                      `gorm:"type:text;not null"`
	Accessibility *string                     `gorm:"type:varchar(100)"`
	Capacity      *string                     `gorm:"type:varchar(100)"`
	Images        datatypes.JSONSlice[string] `gorm:"not null"`
	IsActive      bool                        `gorm:"not null;index"`
	OperatorID    string                      `gorm:"type:uuid;not null;index"`
	Operator      *OperatorModel              `gorm:"foreignKey:OperatorID;references:UserID;constraint:OnDelete:CASCADE"`
	Address       *AddressModel               `gorm:"foreignKey:CollectionPointID;constraint:OnDelete:CASCADE"`
	Schedule      *ScheduleModel              `gorm:"foreignKey:CollectionPointID;constraint:OnDelete:CASCADE"`
	WasteTypes    []WasteTypeModel            `gorm:"many2many:collection_point_waste_types;joinForeignKey:CollectionPointID;joinReferences:WasteTypeID"`
	Reviews       []ReviewModel               `gorm:"foreignKey:CollectionPointID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
}

func (CollectionPointModel) TableName() string {
	return "collection_points"
}

// AddressModel é o endereço 1:1 de um ponto de coleta
type AddressModel struct {
	ID                uint    `gorm:"primaryKey"`
	CollectionPointID uint    `gorm:"not null;uniqueIndex"`
	Street            string  `gorm:"type:varchar(255);not null"`
	Number            *string `gorm:"type:varchar(20)"`
	City              string  `gorm:"type:varchar(100);not null;index"`
	Zip               string  `gorm:"type:varchar(20);not null"`
	Country           string  `gorm:"type:varchar(100);not null"`
	Latitude          float64 `gorm:"not null"`
	Longitude         float64 `gorm:"not null"`
}

func (AddressModel) TableName() string {
	return "addresses"
}

// ScheduleModel é o horário 0:1 de um ponto de coleta
type ScheduleModel struct {
	ID                uint    `gorm:"primaryKey"`
	CollectionPointID uint    `gorm:"not null;uniqueIndex"`
	Monday            bool    `gorm:"not null"`
	Tuesday           bool    `gorm:"not null"`
	Wednesday         bool    `gorm:"not null"`
	Thursday          bool    `gorm:"not null"`
	Friday            bool    `gorm:"not null"`
	Saturday          bool    `gorm:"not null"`
	Sunday            bool    `gorm:"not null"`
	OpeningTime       *string `gorm:"type:varchar(10)"`
	ClosingTime       *string `gorm:"type:varchar(10)"`
	Notes             *string `gorm:"type:text"`
	IsAlwaysOpen      bool    `gorm:"not null"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}

// ReviewModel é uma avaliação; somente leitura nesta API
type ReviewModel struct {
	ID                uint       `gorm:"primaryKey"`
	CollectionPointID uint       `gorm:"not null;index"`
	UserID            string     `gorm:"type:uuid;not null;index"`
	User              *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Rating            int        `gorm:"not null"`
	Comment           *string    `gorm:"type:text"`
	CreatedAt         time.Time  `gorm:"autoCreateTime;index"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// AllModels lista os models na ordem de migração
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&OperatorModel{},
		&AccountModel{},
		&WasteTypeModel{},
		&CollectionPointModel{},
		&AddressModel{},
		&ScheduleModel{},
		&ReviewModel{},
	}
}
