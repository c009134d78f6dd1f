package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	domainerrors "github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
)

// OperatorRepository implementa repositories.OperatorRepository
type OperatorRepository struct {
	db *gorm.DB
}

// NewOperatorRepository cria um novo OperatorRepository
func NewOperatorRepository(db *gorm.DB) repositories.OperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) Create(ctx context.Context, operator *entities.Operator) error {
	model := &OperatorModel{
		UserID:           operator.UserID,
		OrganizationName: operator.OrganizationName,
		Telephone:        operator.Telephone,
		Website:          operator.Website,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	operator.CreatedAt = model.CreatedAt
	operator.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *OperatorRepository) FindByUserID(ctx context.Context, userID string) (*entities.Operator, error) {
	var model OperatorModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Operator{
		UserID:           model.UserID,
		OrganizationName: model.OrganizationName,
		Telephone:        model.Telephone,
		Website:          model.Website,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}, nil
}

func (r *OperatorRepository) UpdateTelephone(ctx context.Context, userID string, telephone string) error {
	return dbFrom(ctx, r.db).Model(&OperatorModel{}).Where("user_id = ?", userID).Update("telephone", telephone).Error
}

// AccountRepository implementa repositories.AccountRepository
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository cria um novo AccountRepository
func NewAccountRepository(db *gorm.DB) repositories.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	if account.ID == "" {
		account.ID = newID()
	}
	err := dbFrom(ctx, r.db).Create(&AccountModel{
		ID:                account.ID,
		UserID:            account.UserID,
		Type:              account.Type,
		Provider:          account.Provider,
		ProviderAccountID: account.ProviderAccountID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrAccountAlreadyLinked
	}
	return err
}

func (r *AccountRepository) FindByProvider(ctx context.Context, provider, providerAccountID string) (*entities.Account, error) {
	var model AccountModel
	err := dbFrom(ctx, r.db).
		Where("provider = ? AND provider_account_id = ?", provider, providerAccountID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Account{
		ID:                model.ID,
		UserID:            model.UserID,
		Type:              model.Type,
		Provider:          model.Provider,
		ProviderAccountID: model.ProviderAccountID,
	}, nil
}
