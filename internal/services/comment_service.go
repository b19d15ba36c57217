package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/errors"
	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/domain/repositories"
	"github.com/rafabene/preconsult-backend/internal/events"
)

// CommentService contém a lógica de criação, moderação e aprovação de comentários
type CommentService struct {
	commentRepo      repositories.CommentRepository
	consultationRepo repositories.ConsultationRepository
	users            *UserService
	identity         ports.IdentityResolver
	gate             ports.ContentGate // nil quando a validação de conteúdo está desligada
	gateFailOpen     bool
	dispatcher       events.Dispatcher
	logger           ports.Logger
}

// NewCommentService cria um novo CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	consultationRepo repositories.ConsultationRepository,
	users *UserService,
	identity ports.IdentityResolver,
	gate ports.ContentGate,
	gateFailOpen bool,
	dispatcher events.Dispatcher,
	logger ports.Logger,
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		consultationRepo: consultationRepo,
		users:            users,
		identity:         identity,
		gate:             gate,
		gateFailOpen:     gateFailOpen,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

// CreateCommentInput representa os dados para criar um comentário autenticado
type CreateCommentInput struct {
	Content string
}

// CreateAnalogCommentInput representa os dados de um comentário analógico
// (carta digitalizada ou formulário presencial, sem conta de usuário)
type CreateAnalogCommentInput struct {
	Content   string
	FirstName string
	LastName  string
}

// CreateComment cria um comentário em nome do ator resolvido
func (s *CommentService) CreateComment(ctx context.Context, consultationID string, input CreateCommentInput) (*entities.Comment, error) {
	author, err := s.identity.ResolveCurrentActor(ctx)
	if err != nil {
		return nil, err
	}

	return s.createComment(ctx, consultationID, author, input.Content)
}

// CreateAnalogComment cria um comentário em nome de um usuário analógico
// recém-provisionado. Nunca reutiliza usuários analógicos existentes.
func (s *CommentService) CreateAnalogComment(ctx context.Context, consultationID string, input CreateAnalogCommentInput) (*entities.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.ErrBlankContent
	}

	author, err := s.users.ProvisionAnalogUser(ctx, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}

	return s.createComment(ctx, consultationID, author, input.Content)
}

// createComment é o caminho comum de criação: os dois pontos de entrada
// diferem apenas na resolução do autor.
func (s *CommentService) createComment(ctx context.Context, consultationID string, author *entities.User, content string) (*entities.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.ErrBlankContent
	}

	consultation, err := s.consultationRepo.FindActiveByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, errors.ErrConsultationNotFound
	}

	comment := &entities.Comment{
		Content:        content,
		AuthorID:       author.ID,
		Author:         author,
		ConsultationID: consultation.ID,
		Blocked:        s.gatedBlock(ctx, content),
		CreatedAt:      time.Now(),
	}

	if err := comment.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           events.EventCommentCreated,
		ConsultationID: consultation.ID,
		CommentID:      comment.ID,
		ActorID:        author.ID,
		Timestamp:      time.Now(),
		Payload: events.CommentCreatedPayload{
			Blocked:     comment.Blocked,
			BodyPreview: preview(comment.Content),
		},
	})

	return comment, nil
}

// gatedBlock consulta o Content Gate e decide o estado inicial de bloqueio.
// Rejeição nunca descarta o comentário: ele nasce bloqueado e visível apenas
// para moderadores. Falha do serviço externo segue a política configurada
// (fail-open cria desbloqueado, fail-closed cria bloqueado).
func (s *CommentService) gatedBlock(ctx context.Context, content string) bool {
	if s.gate == nil {
		return false
	}

	result, err := s.gate.Validate(ctx, content)
	if err != nil {
		s.logger.Warn("content gate unavailable, applying failure policy",
			"fail_open", s.gateFailOpen,
			"error", err,
		)
		return !s.gateFailOpen
	}

	return result == ports.GateRejected
}

// ListActiveComments retorna os comentários não bloqueados da consulta,
// em ordem cronológica de discussão (data de criação ascendente)
func (s *CommentService) ListActiveComments(ctx context.Context, consultationID string) ([]*entities.Comment, error) {
	consultation, err := s.consultationRepo.FindActiveByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, errors.ErrConsultationNotFound
	}

	return s.commentRepo.ListActiveByConsultation(ctx, consultationID)
}

// ListBlockedComments retorna a fila de moderação: todos os comentários
// bloqueados, mais recentes primeiro
func (s *CommentService) ListBlockedComments(ctx context.Context) ([]*entities.Comment, error) {
	return s.commentRepo.ListBlocked(ctx)
}

// BlockComment marca o comentário como bloqueado (idempotente)
func (s *CommentService) BlockComment(ctx context.Context, commentID string) (*entities.Comment, error) {
	return s.setBlocked(ctx, commentID, true, events.EventCommentBlocked)
}

// UnblockComment remove o bloqueio do comentário (idempotente)
func (s *CommentService) UnblockComment(ctx context.Context, commentID string) (*entities.Comment, error) {
	return s.setBlocked(ctx, commentID, false, events.EventCommentUnblocked)
}

func (s *CommentService) setBlocked(ctx context.Context, commentID string, blocked bool, eventType events.EventType) (*entities.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errors.ErrCommentNotFound
	}

	if comment.Blocked == blocked {
		// Chamada repetida é no-op sobre o estado
		return comment, nil
	}

	comment.Blocked = blocked
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		ConsultationID: comment.ConsultationID,
		CommentID:      comment.ID,
		Timestamp:      time.Now(),
	})

	return comment, nil
}

// ToggleApproval alterna o voto de aprovação do ator corrente no comentário.
// A leitura-modificação-escrita do conjunto é serializada por entidade na
// camada de armazenamento.
func (s *CommentService) ToggleApproval(ctx context.Context, commentID string) (*entities.Comment, error) {
	actor, err := s.identity.ResolveCurrentActor(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errors.ErrCommentNotFound
	}

	added, err := s.commentRepo.ToggleApproval(ctx, commentID, actor.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("approval toggled",
		"comment_id", commentID,
		"user_id", actor.ID,
		"added", added,
	)

	return s.commentRepo.FindByID(ctx, commentID)
}

// preview limita o conteúdo publicado em eventos
func preview(content string) string {
	const max = 120
	if len(content) <= max {
		return content
	}
	return content[:max]
}
