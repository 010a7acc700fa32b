// Package memory holds map-backed repositories used for local runs
// (DB_DRIVER=memory) and as the storage double in tests.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

// Store is the shared state behind all memory repositories.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	users    map[string]*entity.User
	places   map[string]*entity.Place
	profiles map[string]*entity.Profile
	posts    map[string]*entity.Post

	// FailOn makes the named operation (e.g. "users.AddPlace") return the
	// given error. Tests use it to exercise rollbacks.
	FailOn map[string]error
}

func NewStore() *Store {
	return &Store{
		users:    map[string]*entity.User{},
		places:   map[string]*entity.Place{},
		profiles: map[string]*entity.Profile{},
		posts:    map[string]*entity.Post{},
		FailOn:   map[string]error{},
	}
}

func (s *Store) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn[op]
}

// clone deep-copies v through JSON; all entities round-trip losslessly
// except the password hash, which is copied separately.
func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		panic(err)
	}
	return out
}

func cloneUser(u *entity.User) *entity.User {
	cp := clone(u)
	cp.Password = u.Password
	return cp
}

type snapshot struct {
	users    map[string]*entity.User
	places   map[string]*entity.Place
	profiles map[string]*entity.Profile
	posts    map[string]*entity.Post
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		users:    make(map[string]*entity.User, len(s.users)),
		places:   make(map[string]*entity.Place, len(s.places)),
		profiles: make(map[string]*entity.Profile, len(s.profiles)),
		posts:    make(map[string]*entity.Post, len(s.posts)),
	}
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	for k, v := range s.places {
		snap.places[k] = clone(v)
	}
	for k, v := range s.profiles {
		snap.profiles[k] = clone(v)
	}
	for k, v := range s.posts {
		snap.posts[k] = clone(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.places = snap.places
	s.profiles = snap.profiles
	s.posts = snap.posts
}

type txKey struct{}

// write holds txMu for a write made outside a transaction, so it waits for
// a running transaction and cannot be undone by its rollback.
func (s *Store) write(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// Transactor serializes transactions and restores a snapshot when fn fails.
type Transactor struct {
	store *Store
}

func NewTransactor(s *Store) *Transactor { return &Transactor{store: s} }

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			t.store.restore(snap)
			panic(p)
		}
		if err != nil {
			t.store.restore(snap)
		}
	}()
	err = fn(context.WithValue(ctx, txKey{}, true))
	return err
}

var _ repository.Transactor = (*Transactor)(nil)
