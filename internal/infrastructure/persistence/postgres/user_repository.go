package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/repositories"
	"github.com/rafabene/preconsult-backend/internal/domain/valueobjects"
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
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := toUserModel(user)

	db := r.getDB(ctx)
	return db.WithContext(ctx).Create(model).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores

func toUserModel(user *entities.User) *UserModel {
	var email *string
	if !user.Email.IsZero() {
		value := user.Email.String()
		email = &value
	}

	return &UserModel{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          email,
		IdentityNumber: user.IdentityNumber,
		Role:           string(user.Role),
		Enabled:        user.Enabled,
		CreatedAt:      user.CreatedAt.UnixNano(),
	}
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	var email valueobjects.Email
	if model.Email != nil && *model.Email != "" {
		parsed, err := valueobjects.NewEmail(*model.Email)
		if err != nil {
			return nil, err
		}
		email = parsed
	}

	return &entities.User{
		ID:             model.ID,
		FirstName:      model.FirstName,
		LastName:       model.LastName,
		Email:          email,
		IdentityNumber: model.IdentityNumber,
		Role:           entities.Role(model.Role),
		Enabled:        model.Enabled,
		CreatedAt:      time.Unix(0, model.CreatedAt),
	}, nil
}
