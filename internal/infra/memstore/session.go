package memstore

import (
	"context"
	"sync"
	"time"

	"rental-pos/internal/domain/session"
	"rental-pos/internal/infra"

	"github.com/google/uuid"
)

// SessionStore is the session registry: index by id plus an active-by-room
// index that enforces one active session per room. Every mutation runs under
// the write lock, so a rate override can never interleave with a finalize on
// the same session. Readers get deep snapshots, never live aggregates.
type SessionStore struct {
	mu           sync.RWMutex
	sessions     map[uuid.UUID]*session.Session
	order        []uuid.UUID // insertion order, for stable listings
	activeByRoom map[string]uuid.UUID
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:     make(map[uuid.UUID]*session.Session),
		activeByRoom: make(map[string]uuid.UUID),
	}
}

func (s *SessionStore) Insert(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.IsActive() {
		if _, occupied := s.activeByRoom[sess.Room()]; occupied {
			return infra.NewStoreErr(infra.KindConflict, "room occupied: "+sess.Room())
		}
	}
	s.sessions[sess.ID()] = sess
	s.order = append(s.order, sess.ID())
	if sess.IsActive() {
		s.activeByRoom[sess.Room()] = sess.ID()
	}
	return nil
}

// Mutate applies fn to one session under the write lock. A failed fn must not
// have mutated the aggregate (aggregate methods validate before touching
// state), so a rejected command leaves the registry unchanged.
func (s *SessionStore) Mutate(_ context.Context, id uuid.UUID, fn func(*session.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return infra.NewStoreErr(infra.KindNotFound, "session not found: "+id.String())
	}

	wasActive := sess.IsActive()
	prevRoom := sess.Room()

	if err := fn(sess); err != nil {
		return err
	}

	// keep the occupancy index in step with status and room transitions
	if wasActive && !sess.IsActive() {
		delete(s.activeByRoom, prevRoom)
	} else if sess.IsActive() && sess.Room() != prevRoom {
		delete(s.activeByRoom, prevRoom)
		s.activeByRoom[sess.Room()] = sess.ID()
	}
	return nil
}

// MoveRoom relocates an active session, re-checking occupancy atomically.
func (s *SessionStore) MoveRoom(_ context.Context, id uuid.UUID, fn func(*session.Session) error, newRoom string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return infra.NewStoreErr(infra.KindNotFound, "session not found: "+id.String())
	}
	// the occupancy index is keyed on normalized room names, so the check
	// must run on the same form the aggregate will store
	normRoom, err := session.NormalizeRoom(newRoom)
	if err != nil {
		return err
	}
	if sess.IsActive() && !s.roomFreeLocked(normRoom, id) {
		return infra.NewStoreErr(infra.KindConflict, "room occupied: "+normRoom)
	}

	prevRoom := sess.Room()
	if err := fn(sess); err != nil {
		return err
	}
	if sess.IsActive() && sess.Room() != prevRoom {
		delete(s.activeByRoom, prevRoom)
		s.activeByRoom[sess.Room()] = sess.ID()
	}
	return nil
}

func (s *SessionStore) Get(_ context.Context, id uuid.UUID) (session.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return session.Snapshot{}, infra.NewStoreErr(infra.KindNotFound, "session not found: "+id.String())
	}
	return sess.Snapshot(), nil
}

func (s *SessionStore) ListActive(_ context.Context) ([]session.Snapshot, error) {
	return s.list(func(sess *session.Session) bool {
		return sess.IsActive()
	}), nil
}

func (s *SessionStore) ListByRoom(_ context.Context, room string) ([]session.Snapshot, error) {
	return s.list(func(sess *session.Session) bool {
		return sess.Room() == room
	}), nil
}

// ListClosed filters on end time; nil bounds are open.
func (s *SessionStore) ListClosed(_ context.Context, from, to *time.Time) ([]session.Snapshot, error) {
	return s.list(func(sess *session.Session) bool {
		if sess.IsActive() {
			return false
		}
		end := sess.EndTime()
		if end == nil {
			return false
		}
		if from != nil && end.Before(*from) {
			return false
		}
		if to != nil && end.After(*to) {
			return false
		}
		return true
	}), nil
}

func (s *SessionStore) ExportAll() []session.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]session.Snapshot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Snapshot())
	}
	return out
}

// ImportState replaces the whole registry, used when restoring a snapshot.
func (s *SessionStore) ImportState(snaps []session.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make(map[uuid.UUID]*session.Session, len(snaps))
	order := make([]uuid.UUID, 0, len(snaps))
	activeByRoom := make(map[string]uuid.UUID)

	for _, snap := range snaps {
		sess, err := session.FromSnapshot(snap)
		if err != nil {
			return err
		}
		if sess.IsActive() {
			if _, occupied := activeByRoom[sess.Room()]; occupied {
				return infra.NewStoreErr(infra.KindConflict, "room occupied twice in snapshot: "+sess.Room())
			}
			activeByRoom[sess.Room()] = sess.ID()
		}
		sessions[sess.ID()] = sess
		order = append(order, sess.ID())
	}

	s.sessions = sessions
	s.order = order
	s.activeByRoom = activeByRoom
	return nil
}

func (s *SessionStore) list(keep func(*session.Session) bool) []session.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []session.Snapshot
	for _, id := range s.order {
		if sess := s.sessions[id]; keep(sess) {
			out = append(out, sess.Snapshot())
		}
	}
	return out
}

func (s *SessionStore) roomFreeLocked(room string, except uuid.UUID) bool {
	id, occupied := s.activeByRoom[room]
	return !occupied || id == except
}
