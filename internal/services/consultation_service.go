package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/errors"
	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/domain/repositories"
	"github.com/rafabene/preconsult-backend/internal/events"
)

// ConsultationService contém a lógica de negócio para pré-consultas
type ConsultationService struct {
	consultationRepo repositories.ConsultationRepository
	commentRepo      repositories.CommentRepository
	identity         ports.IdentityResolver
	uow              ports.UnitOfWork
	dispatcher       events.Dispatcher
	logger           ports.Logger
}

// NewConsultationService cria um novo ConsultationService
func NewConsultationService(
	consultationRepo repositories.ConsultationRepository,
	commentRepo repositories.CommentRepository,
	identity ports.IdentityResolver,
	uow ports.UnitOfWork,
	dispatcher events.Dispatcher,
	logger ports.Logger,
) *ConsultationService {
	return &ConsultationService{
		consultationRepo: consultationRepo,
		commentRepo:      commentRepo,
		identity:         identity,
		uow:              uow,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

// ConsultationInput representa os dados para criar ou editar uma pré-consulta
type ConsultationInput struct {
	Subject     string
	Description string
}

// CreateConsultation cria uma nova pré-consulta ativa em nome do ator resolvido.
// Autoria analógica não é suportada para consultas, apenas para comentários.
func (s *ConsultationService) CreateConsultation(ctx context.Context, input ConsultationInput) (*entities.PreConsultation, error) {
	author, err := s.identity.ResolveCurrentActor(ctx)
	if err != nil {
		return nil, err
	}

	consultation := &entities.PreConsultation{
		Subject:     input.Subject,
		Description: input.Description,
		Active:      true,
		AuthorID:    author.ID,
		Author:      author,
		CreatedAt:   time.Now(),
	}

	if err := consultation.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.consultationRepo.Create(ctx, consultation); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           events.EventConsultationCreated,
		ConsultationID: consultation.ID,
		ActorID:        author.ID,
		Timestamp:      time.Now(),
		Payload: events.ConsultationCreatedPayload{
			Subject: consultation.Subject,
		},
	})

	return consultation, nil
}

// GetConsultationByID busca uma consulta ativa. Consultas desativadas são
// invisíveis: a busca retorna NotFound (tombstone).
func (s *ConsultationService) GetConsultationByID(ctx context.Context, id string) (*entities.PreConsultation, error) {
	consultation, err := s.consultationRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, errors.ErrConsultationNotFound
	}
	return consultation, nil
}

// ListConsultations retorna todas as consultas ativas, mais comentadas primeiro
func (s *ConsultationService) ListConsultations(ctx context.Context) ([]*entities.PreConsultation, error) {
	return s.consultationRepo.ListActive(ctx)
}

// UpdateConsultation substitui assunto e descrição de uma consulta ativa.
// Flag de atividade, autor, data e comentários não são tocados.
func (s *ConsultationService) UpdateConsultation(ctx context.Context, id string, input ConsultationInput) (*entities.PreConsultation, error) {
	consultation, err := s.consultationRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, errors.ErrConsultationNotFound
	}

	consultation.Subject = input.Subject
	consultation.Description = input.Description

	if err := consultation.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.consultationRepo.Update(ctx, consultation); err != nil {
		return nil, err
	}

	return consultation, nil
}

// DeactivateConsultation desativa a consulta (soft delete, sem reativação).
// A transição não toca nos comentários persistidos.
func (s *ConsultationService) DeactivateConsultation(ctx context.Context, id string) error {
	consultation, err := s.consultationRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if consultation == nil {
		return errors.ErrConsultationNotFound
	}

	consultation.Deactivate()
	if err := s.consultationRepo.Update(ctx, consultation); err != nil {
		return err
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           events.EventConsultationDeactivated,
		ConsultationID: consultation.ID,
		Timestamp:      time.Now(),
	})

	return nil
}

// PurgeConsultation remove fisicamente a consulta e todos os seus comentários
// em uma única transação. Rotina de manutenção: o cascade do armazenamento é
// explícito na aplicação, não delegado ao banco.
func (s *ConsultationService) PurgeConsultation(ctx context.Context, id string) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.commentRepo.DeleteByConsultation(txCtx, id); err != nil {
			return err
		}
		if err := s.consultationRepo.Delete(txCtx, id); err != nil {
			return err
		}
		s.logger.Info("consultation purged", "consultation_id", id)
		return nil
	})
}
