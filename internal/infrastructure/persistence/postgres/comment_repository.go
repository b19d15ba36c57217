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

// CommentRepository implementa repositories.CommentRepository
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository cria um novo CommentRepository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	model := toCommentModel(comment)

	db := r.getDB(ctx)
	return db.WithContext(ctx).Create(model).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	var model CommentModel

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Preload("Author").
		Preload("Approvals").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toCommentEntity(&model)
}

func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).
		Model(&CommentModel{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"content": comment.Content,
			"blocked": comment.Blocked,
		}).Error
}

func (r *CommentRepository) ListActiveByConsultation(ctx context.Context, consultationID string) ([]*entities.Comment, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.
			Where("consultation_id = ? AND blocked = ?", consultationID, false).
			Order("created_at ASC")
	})
}

func (r *CommentRepository) ListBlocked(ctx context.Context) ([]*entities.Comment, error) {
	// Fila de moderação: mais recentes primeiro
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.
			Where("blocked = ?", true).
			Order("created_at DESC")
	})
}

func (r *CommentRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*entities.Comment, error) {
	var models []*CommentModel

	db := r.getDB(ctx)
	err := scope(db.WithContext(ctx).
		Preload("Author").
		Preload("Approvals")).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Comment, 0, len(models))
	for _, model := range models {
		entity, err := toCommentEntity(model)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}

	return result, nil
}

// ToggleApproval alterna o voto dentro de uma transação. A chave primária
// composta de comment_approvals garante que dois toggles concorrentes do
// mesmo usuário nunca dupliquem o voto: o segundo insert falha em vez de
// corromper o conjunto.
func (r *CommentRepository) ToggleApproval(ctx context.Context, commentID, userID string) (bool, error) {
	db := r.getDB(ctx)

	added := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&ApprovalModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		added = true
		return tx.Create(&ApprovalModel{
			CommentID: commentID,
			UserID:    userID,
			CreatedAt: time.Now().UnixNano(),
		}).Error
	})

	return added, err
}

func (r *CommentRepository) DeleteByConsultation(ctx context.Context, consultationID string) error {
	db := r.getDB(ctx)

	commentIDs := db.WithContext(ctx).
		Model(&CommentModel{}).
		Select("id").
		Where("consultation_id = ?", consultationID)

	if err := db.WithContext(ctx).
		Where("comment_id IN (?)", commentIDs).
		Delete(&ApprovalModel{}).Error; err != nil {
		return err
	}

	return db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		Delete(&CommentModel{}).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *CommentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores

func toCommentModel(comment *entities.Comment) *CommentModel {
	return &CommentModel{
		ID:             comment.ID,
		Content:        comment.Content,
		AuthorID:       comment.AuthorID,
		ConsultationID: comment.ConsultationID,
		Blocked:        comment.Blocked,
		CreatedAt:      comment.CreatedAt.UnixNano(),
	}
}

func toCommentEntity(model *CommentModel) (*entities.Comment, error) {
	var author *entities.User
	if model.Author != nil {
		entity, err := toUserEntity(model.Author)
		if err != nil {
			return nil, err
		}
		author = entity
	}

	approves := make([]string, 0, len(model.Approvals))
	for _, approval := range model.Approvals {
		approves = append(approves, approval.UserID)
	}

	return &entities.Comment{
		ID:             model.ID,
		Content:        model.Content,
		AuthorID:       model.AuthorID,
		Author:         author,
		ConsultationID: model.ConsultationID,
		Blocked:        model.Blocked,
		CreatedAt:      time.Unix(0, model.CreatedAt),
		Approves:       approves,
	}, nil
}
