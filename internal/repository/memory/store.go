// Package memory is an in-process implementation of the repository contracts.
// Transactions are serialised and applied atomically by swapping in a copy of
// the data, so it honours the same isolation guarantees the services rely on
// from PostgreSQL.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/repository"
)

// state holds every table. Stored values are never mutated in place, so a
// shallow copy of the maps is a consistent snapshot.
type state struct {
	nextID    int64
	users     map[int64]model.User
	words     map[int64]model.WordOfDay
	hintTypes map[int64]model.HintType
	wordHints map[int64]model.WordHint
	sessions  map[int64]model.GameSession
	guesses   map[int64]model.Guess
	hints     map[int64]model.Hint
}

func newState() *state {
	return &state{
		users:     make(map[int64]model.User),
		words:     make(map[int64]model.WordOfDay),
		hintTypes: make(map[int64]model.HintType),
		wordHints: make(map[int64]model.WordHint),
		sessions:  make(map[int64]model.GameSession),
		guesses:   make(map[int64]model.Guess),
		hints:     make(map[int64]model.Hint),
	}
}

func (st *state) clone() *state {
	return &state{
		nextID:    st.nextID,
		users:     maps.Clone(st.users),
		words:     maps.Clone(st.words),
		hintTypes: maps.Clone(st.hintTypes),
		wordHints: maps.Clone(st.wordHints),
		sessions:  maps.Clone(st.sessions),
		guesses:   maps.Clone(st.guesses),
		hints:     maps.Clone(st.hints),
	}
}

func (st *state) id() int64 {
	st.nextID++
	return st.nextID
}

// Store implements repository.Store in memory.
//
// Code running inside InTx must only use the Repositories it is handed;
// calling the Store itself from there deadlocks.
type Store struct {
	mu    sync.RWMutex
	st    *state
	clock clock.Clock
}

var _ repository.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for audit timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{st: newState(), clock: clock.New(time.UTC)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InTx runs fn against a private copy of the data and publishes the copy if
// fn succeeds. Transactions are fully serialised.
func (s *Store) InTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(&view{store: s, tx: tx}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

func (s *Store) now() time.Time {
	return s.clock.Now()
}

func (s *Store) root() *view { return &view{store: s} }

// Users returns the user store.
func (s *Store) Users() repository.UserStore { return s.root().Users() }

// Words returns the word of the day store.
func (s *Store) Words() repository.WordOfDayStore { return s.root().Words() }

// HintTypes returns the hint catalog store.
func (s *Store) HintTypes() repository.HintTypeStore { return s.root().HintTypes() }

// WordHints returns the hint text store.
func (s *Store) WordHints() repository.WordHintStore { return s.root().WordHints() }

// Sessions returns the session store.
func (s *Store) Sessions() repository.SessionStore { return s.root().Sessions() }

// Guesses returns the guess store.
func (s *Store) Guesses() repository.GuessStore { return s.root().Guesses() }

// Hints returns the hint usage store.
func (s *Store) Hints() repository.HintStore { return s.root().Hints() }

// view is a set of stores bound either to the committed data (tx == nil) or
// to the copy owned by a running transaction.
type view struct {
	store *Store
	tx    *state
}

func (v *view) read(fn func(*state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.st)
}

func (v *view) write(fn func(*state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (v *view) Users() repository.UserStore { return users{v} }
func (v *view) Words() repository.WordOfDayStore { return words{v} }
func (v *view) HintTypes() repository.HintTypeStore { return hintTypes{v} }
func (v *view) WordHints() repository.WordHintStore { return wordHints{v} }
func (v *view) Sessions() repository.SessionStore { return sessions{v} }
func (v *view) Guesses() repository.GuessStore { return guesses{v} }
func (v *view) Hints() repository.HintStore { return hints{v} }
