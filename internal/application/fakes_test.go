package application

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/acara-auth/internal/domain/entity"
	repo "github.com/oksasatya/acara-auth/internal/domain/repository"
	"github.com/oksasatya/acara-auth/pkg/mailer"
)

type memRepo struct {
	mu        sync.Mutex
	users     []entity.User
	createErr error
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, x := range r.users {
		if x.Username == u.Username || strings.EqualFold(x.Email, u.Email) {
			return repo.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users = append(r.users, *u)
	return nil
}

func (r *memRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if strings.EqualFold(x.Email, identifier) || x.Username == identifier {
			u := x
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.ID == id {
			u := x
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type recordingNotifier struct {
	mu    sync.Mutex
	users []entity.User
}

func (n *recordingNotifier) NotifyRegistration(_ context.Context, u entity.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, u)
}

func (n *recordingNotifier) calls() []entity.User {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.User(nil), n.users...)
}

// blockingNotifier holds every call until release is closed.
type blockingNotifier struct {
	started chan struct{}
	release chan struct{}
	done    atomic.Bool
	once    sync.Once
}

func (n *blockingNotifier) NotifyRegistration(context.Context, entity.User) {
	n.once.Do(func() { close(n.started) })
	<-n.release
	n.done.Store(true)
}

func (n *blockingNotifier) finished() bool { return n.done.Load() }

type panickingNotifier struct{}

func (panickingNotifier) NotifyRegistration(context.Context, entity.User) { panic("boom") }

type fakeSender struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}
