// Package repository provides data access layer contracts and their PostgreSQL
// implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"daily-word-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrNotFound     = errors.New("record not found")
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicate is returned when an insert or update hits a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// UserStore persists registered players.
type UserStore interface {
	// Create returns ErrDuplicate if the user already exists.
	Create(ctx context.Context, telegramID int64, username string) (*model.User, error)
	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, telegramID int64) (*model.User, error)
	UpdateUsername(ctx context.Context, telegramID int64, username string) error
	Exists(ctx context.Context, telegramID int64) (bool, error)
}

// WordOfDayStore persists the secret word of each date. Dates are midnight UTC.
type WordOfDayStore interface {
	// Create returns ErrDuplicate if a word already exists for date.
	Create(ctx context.Context, solution string, date time.Time) (*model.WordOfDay, error)
	GetByDate(ctx context.Context, date time.Time) (*model.WordOfDay, error)
	GetByID(ctx context.Context, id int64) (*model.WordOfDay, error)
}

// HintTypeStore persists the hint catalog.
type HintTypeStore interface {
	// Create returns ErrDuplicate if the code collides case-insensitively with
	// any existing type, deleted or not.
	Create(ctx context.Context, code, displayName string) (*model.HintType, error)
	// GetByCode matches case-insensitively and includes deleted types.
	GetByCode(ctx context.Context, code string) (*model.HintType, error)
	GetByID(ctx context.Context, id int64) (*model.HintType, error)
	// List returns types ordered by code.
	List(ctx context.Context, includeDeleted bool) ([]*model.HintType, error)
	// Update writes code, display name and state of ht.
	Update(ctx context.Context, ht *model.HintType) (*model.HintType, error)
}

// WordHintStore persists generated hint texts per (word, hint type).
type WordHintStore interface {
	// Create returns ErrDuplicate if the pair already has a text.
	Create(ctx context.Context, wordOfDayID, hintTypeID int64, text string) (*model.WordHint, error)
	Get(ctx context.Context, wordOfDayID, hintTypeID int64) (*model.WordHint, error)
	Exists(ctx context.Context, wordOfDayID, hintTypeID int64) (bool, error)
}

// SessionStore persists game sessions.
type SessionStore interface {
	// Create returns ErrDuplicate if the user already has a session for the date.
	Create(ctx context.Context, s *model.GameSession) (*model.GameSession, error)
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*model.GameSession, error)
	// GetByUserAndDateForUpdate also locks the session until the surrounding
	// transaction ends.
	GetByUserAndDateForUpdate(ctx context.Context, userID int64, date time.Time) (*model.GameSession, error)
	// Update writes remaining lives and status.
	Update(ctx context.Context, s *model.GameSession) error
	// Ranking lists won sessions of date by fewest guesses, then fewest hints,
	// then earliest finish.
	Ranking(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error)
}

// GuessStore persists guesses. Guesses are listed in insertion order.
type GuessStore interface {
	Create(ctx context.Context, g *model.Guess) (*model.Guess, error)
	ListBySession(ctx context.Context, sessionID int64) ([]*model.Guess, error)
	CountBySession(ctx context.Context, sessionID int64) (int, error)
}

// HintStore persists hint usage records.
type HintStore interface {
	// Create returns ErrDuplicate if the hint type was already used in the session.
	Create(ctx context.Context, h *model.Hint) (*model.Hint, error)
	ExistsForSessionAndType(ctx context.Context, sessionID, hintTypeID int64) (bool, error)
	CountByUserAndDate(ctx context.Context, userID int64, date time.Time) (int, error)
	ListUsedBySession(ctx context.Context, sessionID int64) ([]model.UsedHint, error)
}

// Repositories groups the stores bound to one connection or transaction.
type Repositories interface {
	Users() UserStore
	Words() WordOfDayStore
	HintTypes() HintTypeStore
	WordHints() WordHintStore
	Sessions() SessionStore
	Guesses() GuessStore
	Hints() HintStore
}

// Store is the entry point of the persistence layer.
type Store interface {
	Repositories
	// InTx runs fn in a transaction. Everything fn does through the given
	// Repositories commits atomically when fn returns nil and is discarded
	// otherwise.
	InTx(ctx context.Context, fn func(Repositories) error) error
}
