// Package memory is an in-process repository backend. Every transaction holds a single
// store-wide write lock, so transactions are serializable and readers never observe a
// half-applied assignment.
package memory

import (
	"assetflow/models"
	"assetflow/repository"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type state struct {
	mu            sync.RWMutex
	assets        map[string]models.Asset
	users         map[uuid.UUID]models.User
	requests      map[uuid.UUID]models.AssetRequest
	issues        map[uuid.UUID]models.IssueReport
	notifications []models.Notification
}

type snapshot struct {
	assets        map[string]models.Asset
	users         map[uuid.UUID]models.User
	requests      map[uuid.UUID]models.AssetRequest
	issues        map[uuid.UUID]models.IssueReport
	notifications []models.Notification
}

func (st *state) snapshot() snapshot {
	snap := snapshot{
		assets:        make(map[string]models.Asset, len(st.assets)),
		users:         make(map[uuid.UUID]models.User, len(st.users)),
		requests:      make(map[uuid.UUID]models.AssetRequest, len(st.requests)),
		issues:        make(map[uuid.UUID]models.IssueReport, len(st.issues)),
		notifications: append([]models.Notification(nil), st.notifications...),
	}
	for k, v := range st.assets {
		snap.assets[k] = v
	}
	for k, v := range st.users {
		snap.users[k] = v
	}
	for k, v := range st.requests {
		snap.requests[k] = v
	}
	for k, v := range st.issues {
		snap.issues[k] = v
	}
	return snap
}

func (st *state) restore(snap snapshot) {
	st.assets = snap.assets
	st.users = snap.users
	st.requests = snap.requests
	st.issues = snap.issues
	st.notifications = snap.notifications
}

type Store struct {
	st    *state
	inTx  bool
	hooks *[]func()
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		st: &state{
			assets:   make(map[string]models.Asset),
			users:    make(map[uuid.UUID]models.User),
			requests: make(map[uuid.UUID]models.AssetRequest),
			issues:   make(map[uuid.UUID]models.IssueReport),
		},
		now: time.Now,
	}
}

func (s *Store) Assets() repository.AssetRepository               { return &assetRepo{s} }
func (s *Store) Users() repository.UserRepository                 { return &userRepo{s} }
func (s *Store) Requests() repository.RequestRepository           { return &requestRepo{s} }
func (s *Store) Issues() repository.IssueRepository               { return &issueRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository { return &notificationRepo{s} }

// InTx runs fn under the store-wide write lock and rolls every map back if fn fails.
// Nested calls join the enclosing transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) (err error) {
	if s.inTx {
		return fn(ctx, s)
	}
	if err := ctx.Err(); err != nil {
		return models.NewInternalError(err, "transaction aborted")
	}

	s.st.mu.Lock()
	snap := s.st.snapshot()
	hooks := make([]func(), 0)
	tx := &Store{st: s.st, inTx: true, hooks: &hooks, now: s.now}

	defer func() {
		if p := recover(); p != nil {
			s.st.restore(snap)
			s.st.mu.Unlock()
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		s.st.restore(snap)
		s.st.mu.Unlock()
		return err
	}
	s.st.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (s *Store) OnCommit(fn func()) {
	if !s.inTx {
		fn()
		return
	}
	*s.hooks = append(*s.hooks, fn)
}

func (s *Store) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.st.mu.RLock()
	return s.st.mu.RUnlock
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.st.mu.Lock()
	return s.st.mu.Unlock
}
