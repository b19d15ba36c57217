package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rafabene/preconsult-backend/internal/domain/entities"
	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/events"
)

// noopLogger implementa ports.Logger sem saída
type noopLogger struct{}

func (noopLogger) Info(string, ...any)        {}
func (noopLogger) Error(string, ...any)       {}
func (noopLogger) Debug(string, ...any)       {}
func (noopLogger) Warn(string, ...any)        {}
func (l noopLogger) With(...any) ports.Logger { return l }

// fakeUserRepo guarda usuários em memória
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email.String() == email {
			return user, nil
		}
	}
	return nil, nil
}

// fakeConsultationRepo guarda consultas em memória, preservando ordem de inserção
type fakeConsultationRepo struct {
	seq           int
	consultations map[string]*entities.PreConsultation
	order         []string
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{consultations: make(map[string]*entities.PreConsultation)}
}

func (r *fakeConsultationRepo) Create(_ context.Context, consultation *entities.PreConsultation) error {
	r.seq++
	if consultation.ID == "" {
		consultation.ID = fmt.Sprintf("consultation-%d", r.seq)
	}
	r.consultations[consultation.ID] = consultation
	r.order = append(r.order, consultation.ID)
	return nil
}

func (r *fakeConsultationRepo) FindActiveByID(_ context.Context, id string) (*entities.PreConsultation, error) {
	consultation, ok := r.consultations[id]
	if !ok || !consultation.Active {
		return nil, nil
	}
	return consultation, nil
}

func (r *fakeConsultationRepo) ListActive(_ context.Context) ([]*entities.PreConsultation, error) {
	result := make([]*entities.PreConsultation, 0)
	for _, id := range r.order {
		if consultation, ok := r.consultations[id]; ok && consultation.Active {
			result = append(result, consultation)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CommentsCount() > result[j].CommentsCount()
	})
	return result, nil
}

func (r *fakeConsultationRepo) Update(_ context.Context, consultation *entities.PreConsultation) error {
	r.consultations[consultation.ID] = consultation
	return nil
}

func (r *fakeConsultationRepo) Delete(_ context.Context, id string) error {
	delete(r.consultations, id)
	return nil
}

// fakeCommentRepo guarda comentários em memória
type fakeCommentRepo struct {
	seq      int
	comments map[string]*entities.Comment
	order    []string
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*entities.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entities.Comment) error {
	r.seq++
	if comment.ID == "" {
		comment.ID = fmt.Sprintf("comment-%d", r.seq)
	}
	r.comments[comment.ID] = comment
	r.order = append(r.order, comment.ID)
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id string) (*entities.Comment, error) {
	return r.comments[id], nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entities.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return fmt.Errorf("comment %s not persisted", comment.ID)
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) ListActiveByConsultation(_ context.Context, consultationID string) ([]*entities.Comment, error) {
	result := make([]*entities.Comment, 0)
	for _, id := range r.order {
		comment := r.comments[id]
		if comment != nil && comment.ConsultationID == consultationID && !comment.Blocked {
			result = append(result, comment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeCommentRepo) ListBlocked(_ context.Context) ([]*entities.Comment, error) {
	result := make([]*entities.Comment, 0)
	for _, id := range r.order {
		comment := r.comments[id]
		if comment != nil && comment.Blocked {
			result = append(result, comment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeCommentRepo) ToggleApproval(_ context.Context, commentID, userID string) (bool, error) {
	comment, ok := r.comments[commentID]
	if !ok {
		return false, fmt.Errorf("comment %s not persisted", commentID)
	}
	return comment.ToggleApproval(userID), nil
}

func (r *fakeCommentRepo) DeleteByConsultation(_ context.Context, consultationID string) error {
	for id, comment := range r.comments {
		if comment.ConsultationID == consultationID {
			delete(r.comments, id)
		}
	}
	return nil
}

// fakeGate devolve sempre o mesmo resultado configurado
type fakeGate struct {
	result ports.GateResult
	err    error
	calls  int
}

func (g *fakeGate) Validate(context.Context, string) (ports.GateResult, error) {
	g.calls++
	return g.result, g.err
}

// fakeUnitOfWork executa a função diretamente, sem transação real
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (fakeUnitOfWork) Commit(context.Context) error                       { return nil }
func (fakeUnitOfWork) Rollback(context.Context) error                     { return nil }
func (fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// recordingDispatcher acumula os eventos publicados
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]events.Event, 0)
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
