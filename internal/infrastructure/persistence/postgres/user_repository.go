package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	domainerrors "github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.Email.IsZero() {
		return domainerrors.ErrEmailRequired
	}
	if user.ID == "" {
		user.ID = newID()
	}
	model := r.toModel(user)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*entities.User, error) {
	return r.findOne(ctx, "reset_token = ?", tokenHash)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*entities.User, error) {
	var model UserModel

	if err := dbFrom(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, patch repositories.UserProfilePatch) error {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Surname != nil {
		updates["surname"] = *patch.Surname
	}
	if patch.Cellphone != nil {
		updates["cellphone"] = *patch.Cellphone
	}
	if len(updates) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entities.Role) error {
	return dbFrom(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Update("role", string(role)).Error
}

func (r *UserRepository) SetResetToken(ctx context.Context, id string, tokenHash string, expiry time.Time) error {
	return dbFrom(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"reset_token":        tokenHash,
		"reset_token_expiry": expiry,
	}).Error
}

// UpdatePassword grava o novo hash e invalida o token de reset
func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return dbFrom(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"password":           passwordHash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
}

// Delete remove o usuário; operador, contas, avaliações e pontos de coleta caem em cascata.
// As linhas da tabela de junção dos pontos do operador são removidas antes. Deve rodar numa transação.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	db := dbFrom(ctx, r.db)

	err := db.Exec(
		"DELETE FROM collection_point_waste_types WHERE collection_point_id IN (SELECT id FROM collection_points WHERE operator_id = ?)",
		id,
	).Error
	if err != nil {
		return err
	}

	return db.Where("id = ?", id).Delete(&UserModel{}).Error
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:               user.ID,
		Email:            user.Email.String(),
		Password:         user.PasswordHash,
		Name:             user.Name,
		Surname:          user.Surname,
		Cellphone:        user.Cellphone,
		Role:             string(user.Role),
		OAuthProvider:    string(user.OAuthProvider),
		OAuthID:          user.OAuthID,
		ResetToken:       user.ResetTokenHash,
		ResetTokenExpiry: user.ResetTokenExpiry,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	return &entities.User{
		ID:               model.ID,
		Email:            valueobjects.MustEmail(model.Email),
		PasswordHash:     model.Password,
		Name:             model.Name,
		Surname:          model.Surname,
		Cellphone:        model.Cellphone,
		Role:             entities.Role(model.Role),
		OAuthProvider:    entities.OAuthProvider(model.OAuthProvider),
		OAuthID:          model.OAuthID,
		ResetTokenHash:   model.ResetToken,
		ResetTokenExpiry: model.ResetTokenExpiry,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
