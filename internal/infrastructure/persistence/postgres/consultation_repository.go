package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/repositories"
)

// ConsultationRepository implementa repositories.ConsultationRepository
type ConsultationRepository struct {
	db *gorm.DB
}

// NewConsultationRepository cria um novo ConsultationRepository
func NewConsultationRepository(db *gorm.DB) repositories.ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(ctx context.Context, consultation *entities.PreConsultation) error {
	if consultation.ID == "" {
		consultation.ID = uuid.NewString()
	}
	model := toConsultationModel(consultation)

	db := r.getDB(ctx)
	return db.WithContext(ctx).Create(model).Error
}

func (r *ConsultationRepository) FindActiveByID(ctx context.Context, id string) (*entities.PreConsultation, error) {
	var model ConsultationModel

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Approvals").
		Where("id = ? AND active = ?", id, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toConsultationEntity(&model)
}

func (r *ConsultationRepository) ListActive(ctx context.Context) ([]*entities.PreConsultation, error) {
	var models []*ConsultationModel

	db := r.getDB(ctx)
	// Ordenação explícita por número de comentários associados, descendente;
	// empates por data de criação ascendente para manter o resultado estável
	err := db.WithContext(ctx).
		Model(&ConsultationModel{}).
		Select("preconsultations.*").
		Joins("LEFT JOIN comments ON comments.consultation_id = preconsultations.id").
		Where("preconsultations.active = ?", true).
		Group("preconsultations.id").
		Order("COUNT(comments.id) DESC, preconsultations.created_at ASC").
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Approvals").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	result := make([]*entities.PreConsultation, 0, len(models))
	for _, model := range models {
		entity, err := toConsultationEntity(model)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}

	return result, nil
}

func (r *ConsultationRepository) Update(ctx context.Context, consultation *entities.PreConsultation) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).
		Model(&ConsultationModel{}).
		Where("id = ?", consultation.ID).
		Updates(map[string]interface{}{
			"subject":     consultation.Subject,
			"description": consultation.Description,
			"active":      consultation.Active,
		}).Error
}

func (r *ConsultationRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).Where("id = ?", id).Delete(&ConsultationModel{}).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *ConsultationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores

func toConsultationModel(consultation *entities.PreConsultation) *ConsultationModel {
	return &ConsultationModel{
		ID:          consultation.ID,
		Subject:     consultation.Subject,
		Description: consultation.Description,
		Active:      consultation.Active,
		AuthorID:    consultation.AuthorID,
		CreatedAt:   consultation.CreatedAt.UnixNano(),
	}
}

func toConsultationEntity(model *ConsultationModel) (*entities.PreConsultation, error) {
	var author *entities.User
	if model.Author != nil {
		entity, err := toUserEntity(model.Author)
		if err != nil {
			return nil, err
		}
		author = entity
	}

	comments := make([]*entities.Comment, 0, len(model.Comments))
	for i := range model.Comments {
		comment, err := toCommentEntity(&model.Comments[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return &entities.PreConsultation{
		ID:          model.ID,
		Subject:     model.Subject,
		Description: model.Description,
		Active:      model.Active,
		AuthorID:    model.AuthorID,
		Author:      author,
		CreatedAt:   time.Unix(0, model.CreatedAt),
		Comments:    comments,
	}, nil
}
