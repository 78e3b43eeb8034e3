package memstore

import (
	"context"
	"sync"

	"rental-pos/internal/domain/user"
	"rental-pos/internal/infra"
	"rental-pos/internal/pkg/clock"
	"rental-pos/internal/usecase/queries"

	"github.com/google/uuid"
)

// UserStore holds staff accounts. Accounts are seeded at boot; there is no
// self-service signup in a POS.
type UserStore struct {
	mu      sync.RWMutex
	clk     clock.Clock
	users   map[uuid.UUID]*user.User
	byEmail map[string]uuid.UUID
}

func NewUserStore(clk clock.Clock) *UserStore {
	return &UserStore{
		clk:     clk,
		users:   make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *UserStore) Create(_ context.Context, email user.Email, passwordHash string, role user.Role) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email.Value()]; exists {
		return uuid.Nil, infra.NewStoreErr(infra.KindDuplicateKey, "email already registered: "+email.Value())
	}
	u := user.NewUser(email, passwordHash, role, s.clk.Now())
	s.users[u.ID()] = u
	s.byEmail[email.Value()] = u.ID()
	return u.ID(), nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, "", infra.NewStoreErr(infra.KindNotFound, "user not found")
	}
	u := s.users[id]
	return viewOf(u), u.PasswordHash(), nil
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, infra.NewStoreErr(infra.KindNotFound, "user not found: "+id.String())
	}
	return viewOf(u), nil
}

func (s *UserStore) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return infra.NewStoreErr(infra.KindNotFound, "user not found: "+id.String())
	}
	u.RecordLogin(s.clk.Now())
	return nil
}

func viewOf(u *user.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		LastLogin: u.LastLogin(),
	}
}
