package services_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/preconsult-backend/internal/domain/errors"
	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/events"
	"github.com/rafabene/preconsult-backend/internal/services"
)

var _ = Describe("CommentService", func() {
	var (
		ctx              context.Context
		userRepo         *fakeUserRepo
		consultationRepo *fakeConsultationRepo
		commentRepo      *fakeCommentRepo
		dispatcher       *recordingDispatcher
		users            *services.UserService
		identity         ports.IdentityResolver
		consultation     *entities.PreConsultation
	)

	newService := func(gate ports.ContentGate, failOpen bool) *services.CommentService {
		return services.NewCommentService(
			commentRepo, consultationRepo, users, identity,
			gate, failOpen, dispatcher, noopLogger{},
		)
	}

	BeforeEach(func() {
		ctx = context.Background()
		userRepo = newFakeUserRepo()
		consultationRepo = newFakeConsultationRepo()
		commentRepo = newFakeCommentRepo()
		dispatcher = &recordingDispatcher{}
		users = services.NewUserService(userRepo, noopLogger{})
		identity = services.NewStaticIdentityResolver(users, "testowy@test.pl", "Jan", "Testowy")

		consultation = &entities.PreConsultation{
			Subject:     "Orçamento 2027",
			Description: "Prioridades de investimento do próximo ciclo",
			Active:      true,
			AuthorID:    "author-1",
			CreatedAt:   time.Now(),
		}
		Expect(consultationRepo.Create(ctx, consultation)).To(Succeed())
	})

	Describe("CreateComment", func() {
		It("cria comentário desbloqueado com zero aprovações", func() {
			svc := newService(nil, true)

			comment, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{
				Content: "Faltam ciclovias na zona norte",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(comment.ID).NotTo(BeEmpty())
			Expect(comment.Blocked).To(BeFalse())
			Expect(comment.ApprovesNumber()).To(BeZero())
			Expect(comment.ConsultationID).To(Equal(consultation.ID))
			Expect(comment.Author).NotTo(BeNil())
			Expect(comment.Author.Email.String()).To(Equal("testowy@test.pl"))
		})

		It("publica evento de criação com preview do conteúdo", func() {
			svc := newService(nil, true)

			_, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{
				Content: "Transporte público precisa de mais linhas noturnas",
			})
			Expect(err).NotTo(HaveOccurred())

			published := dispatcher.byType(events.EventCommentCreated)
			Expect(published).To(HaveLen(1))
			payload, ok := published[0].Payload.(events.CommentCreatedPayload)
			Expect(ok).To(BeTrue())
			Expect(payload.Blocked).To(BeFalse())
			Expect(payload.BodyPreview).To(ContainSubstring("linhas noturnas"))
		})

		It("rejeita conteúdo em branco sem persistir nada", func() {
			svc := newService(nil, true)

			_, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{
				Content: "   \t\n  ",
			})

			Expect(err).To(MatchError(domainerrors.ErrBlankContent))
			Expect(commentRepo.comments).To(BeEmpty())
			Expect(dispatcher.byType(events.EventCommentCreated)).To(BeEmpty())
		})

		It("retorna NotFound para consulta inexistente", func() {
			svc := newService(nil, true)

			_, err := svc.CreateComment(ctx, "nao-existe", services.CreateCommentInput{
				Content: "Comentário órfão",
			})

			Expect(err).To(MatchError(domainerrors.ErrConsultationNotFound))
		})

		It("retorna NotFound para consulta desativada", func() {
			consultation.Deactivate()
			svc := newService(nil, true)

			_, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{
				Content: "Chegou tarde",
			})

			Expect(err).To(MatchError(domainerrors.ErrConsultationNotFound))
		})

		It("reutiliza o mesmo autor em envios repetidos", func() {
			svc := newService(nil, true)

			first, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Primeiro"})
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Segundo"})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.AuthorID).To(Equal(first.AuthorID))
		})
	})

	Describe("CreateAnalogComment", func() {
		It("provisiona um novo usuário analógico a cada envio", func() {
			svc := newService(nil, true)

			first, err := svc.CreateAnalogComment(ctx, consultation.ID, services.CreateAnalogCommentInput{
				Content: "Carta recebida pelo protocolo", FirstName: "Maria", LastName: "Kowalska",
			})
			Expect(err).NotTo(HaveOccurred())

			second, err := svc.CreateAnalogComment(ctx, consultation.ID, services.CreateAnalogCommentInput{
				Content: "Segunda carta da mesma pessoa", FirstName: "Maria", LastName: "Kowalska",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.AuthorID).NotTo(Equal(first.AuthorID))
			Expect(first.Author.IsAnalog()).To(BeTrue())
			Expect(first.Author.Email.IsZero()).To(BeTrue())
		})

		It("não provisiona usuário quando o conteúdo é em branco", func() {
			svc := newService(nil, true)

			_, err := svc.CreateAnalogComment(ctx, consultation.ID, services.CreateAnalogCommentInput{
				Content: "  ", FirstName: "Maria", LastName: "Kowalska",
			})

			Expect(err).To(MatchError(domainerrors.ErrBlankContent))
			Expect(userRepo.users).To(BeEmpty())
		})
	})

	Describe("validação de conteúdo externa", func() {
		It("cria desbloqueado quando o gate aceita", func() {
			gate := &fakeGate{result: ports.GateAccepted}
			svc := newService(gate, true)

			comment, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Tudo certo"})

			Expect(err).NotTo(HaveOccurred())
			Expect(comment.Blocked).To(BeFalse())
			Expect(gate.calls).To(Equal(1))
		})

		It("cria bloqueado quando o gate rejeita, sem descartar o comentário", func() {
			gate := &fakeGate{result: ports.GateRejected}
			svc := newService(gate, true)

			comment, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Conteúdo impróprio"})

			Expect(err).NotTo(HaveOccurred())
			Expect(comment.Blocked).To(BeTrue())
			Expect(commentRepo.comments).To(HaveKey(comment.ID))

			published := dispatcher.byType(events.EventCommentCreated)
			Expect(published).To(HaveLen(1))
			payload := published[0].Payload.(events.CommentCreatedPayload)
			Expect(payload.Blocked).To(BeTrue())
		})

		It("com fail-open, falha do gate cria desbloqueado", func() {
			gate := &fakeGate{err: errors.New("connection refused")}
			svc := newService(gate, true)

			comment, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Serviço fora"})

			Expect(err).NotTo(HaveOccurred())
			Expect(comment.Blocked).To(BeFalse())
		})

		It("com fail-closed, falha do gate cria bloqueado", func() {
			gate := &fakeGate{err: errors.New("connection refused")}
			svc := newService(gate, false)

			comment, err := svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Serviço fora"})

			Expect(err).NotTo(HaveOccurred())
			Expect(comment.Blocked).To(BeTrue())
		})
	})

	Describe("BlockComment e UnblockComment", func() {
		var comment *entities.Comment

		BeforeEach(func() {
			svc := newService(nil, true)
			var err error
			comment, err = svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Alvo da moderação"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("bloqueia e desbloqueia preservando as aprovações", func() {
			svc := newService(nil, true)

			_, err := commentRepo.ToggleApproval(ctx, comment.ID, "voter-1")
			Expect(err).NotTo(HaveOccurred())

			blocked, err := svc.BlockComment(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(blocked.Blocked).To(BeTrue())
			Expect(blocked.ApprovesNumber()).To(Equal(1))

			unblocked, err := svc.UnblockComment(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(unblocked.Blocked).To(BeFalse())
			Expect(unblocked.ApprovesNumber()).To(Equal(1))
		})

		It("bloqueio repetido é no-op e não publica segundo evento", func() {
			svc := newService(nil, true)

			_, err := svc.BlockComment(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.BlockComment(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(dispatcher.byType(events.EventCommentBlocked)).To(HaveLen(1))
		})

		It("retorna NotFound para comentário inexistente", func() {
			svc := newService(nil, true)

			_, err := svc.BlockComment(ctx, "nao-existe")
			Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))

			_, err = svc.UnblockComment(ctx, "nao-existe")
			Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))
		})
	})

	Describe("ToggleApproval", func() {
		var comment *entities.Comment

		BeforeEach(func() {
			svc := newService(nil, true)
			var err error
			comment, err = svc.CreateComment(ctx, consultation.ID, services.CreateCommentInput{Content: "Vale um voto"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("duas alternâncias do mesmo ator voltam ao estado inicial", func() {
			svc := newService(nil, true)

			after, err := svc.ToggleApproval(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.ApprovesNumber()).To(Equal(1))

			after, err = svc.ToggleApproval(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.ApprovesNumber()).To(BeZero())
		})

		It("atores distintos somam aprovações distintas", func() {
			svc := newService(nil, true)

			_, err := svc.ToggleApproval(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = commentRepo.ToggleApproval(ctx, comment.ID, "voter-2")
			Expect(err).NotTo(HaveOccurred())

			after, err := commentRepo.FindByID(ctx, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.ApprovesNumber()).To(Equal(2))
		})

		It("retorna NotFound para comentário inexistente", func() {
			svc := newService(nil, true)

			_, err := svc.ToggleApproval(ctx, "nao-existe")
			Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))
		})
	})

	Describe("listagens", func() {
		It("lista apenas comentários não bloqueados, mais antigos primeiro", func() {
			svc := newService(nil, true)
			base := time.Now()

			for i := 0; i < 3; i++ {
				comment := &entities.Comment{
					Content:        fmt.Sprintf("Comentário %d", i),
					AuthorID:       "author-1",
					ConsultationID: consultation.ID,
					CreatedAt:      base.Add(time.Duration(2-i) * time.Minute),
				}
				Expect(commentRepo.Create(ctx, comment)).To(Succeed())
			}
			blocked := &entities.Comment{
				Content:        "Bloqueado",
				AuthorID:       "author-1",
				ConsultationID: consultation.ID,
				Blocked:        true,
				CreatedAt:      base,
			}
			Expect(commentRepo.Create(ctx, blocked)).To(Succeed())

			listed, err := svc.ListActiveComments(ctx, consultation.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(3))
			Expect(listed[0].Content).To(Equal("Comentário 2"))
			Expect(listed[2].Content).To(Equal("Comentário 0"))
		})

		It("lista bloqueados de todas as consultas, mais recentes primeiro", func() {
			svc := newService(nil, true)
			other := &entities.PreConsultation{
				Subject: "Outra consulta", Description: "d", Active: true,
				AuthorID: "author-1", CreatedAt: time.Now(),
			}
			Expect(consultationRepo.Create(ctx, other)).To(Succeed())

			base := time.Now()
			older := &entities.Comment{
				Content: "Mais antigo", AuthorID: "author-1",
				ConsultationID: consultation.ID, Blocked: true, CreatedAt: base,
			}
			newer := &entities.Comment{
				Content: "Mais recente", AuthorID: "author-1",
				ConsultationID: other.ID, Blocked: true, CreatedAt: base.Add(time.Minute),
			}
			Expect(commentRepo.Create(ctx, older)).To(Succeed())
			Expect(commentRepo.Create(ctx, newer)).To(Succeed())

			listed, err := svc.ListBlockedComments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(2))
			Expect(listed[0].Content).To(Equal("Mais recente"))
		})

		It("retorna NotFound ao listar comentários de consulta desativada", func() {
			svc := newService(nil, true)
			consultation.Deactivate()

			_, err := svc.ListActiveComments(ctx, consultation.ID)
			Expect(err).To(MatchError(domainerrors.ErrConsultationNotFound))
		})
	})
})
