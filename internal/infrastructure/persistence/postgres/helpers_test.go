package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/valueobjects"
)

// setupTestDB abre um banco sqlite em memória isolado por teste.
// cache=shared mantém o mesmo banco visível para todas as conexões do pool.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("erro ao migrar banco de teste: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()

	address, err := valueobjects.NewEmail(email)
	if err != nil {
		t.Fatalf("e-mail de teste inválido: %v", err)
	}

	user := &entities.User{
		FirstName: "Jan",
		LastName:  "Testowy",
		Email:     address,
		Role:      entities.RoleIdentified,
		Enabled:   true,
		CreatedAt: time.Now(),
	}

	repo := NewUserRepository(db)
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("erro ao criar usuário de teste: %v", err)
	}

	return user
}

func seedConsultation(t *testing.T, db *gorm.DB, authorID string, active bool, createdAt time.Time) *entities.PreConsultation {
	t.Helper()

	consultation := &entities.PreConsultation{
		Subject:     "Consulta de teste",
		Description: "Descrição de teste",
		Active:      active,
		AuthorID:    authorID,
		CreatedAt:   createdAt,
	}

	repo := NewConsultationRepository(db)
	if err := repo.Create(context.Background(), consultation); err != nil {
		t.Fatalf("erro ao criar consulta de teste: %v", err)
	}

	return consultation
}

func seedComment(t *testing.T, db *gorm.DB, consultationID, authorID, content string, blocked bool, createdAt time.Time) *entities.Comment {
	t.Helper()

	comment := &entities.Comment{
		Content:        content,
		AuthorID:       authorID,
		ConsultationID: consultationID,
		Blocked:        blocked,
		CreatedAt:      createdAt,
	}

	repo := NewCommentRepository(db)
	if err := repo.Create(context.Background(), comment); err != nil {
		t.Fatalf("erro ao criar comentário de teste: %v", err)
	}

	return comment
}
