package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/db"
)

// WordHintRepository handles generated hint text persistence.
type WordHintRepository struct {
	q db.Querier
}

// NewWordHintRepository creates a new WordHintRepository instance.
func NewWordHintRepository(q db.Querier) *WordHintRepository {
	return &WordHintRepository{q: q}
}

// Create stores the hint text of a (word, hint type) pair.
func (r *WordHintRepository) Create(ctx context.Context, wordOfDayID, hintTypeID int64, text string) (*model.WordHint, error) {
	const query = `
		INSERT INTO word_hints (word_of_day_id, hint_type_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, word_of_day_id, hint_type_id, text, created_at, updated_at
	`

	var wh model.WordHint
	err := r.q.QueryRow(ctx, query, wordOfDayID, hintTypeID, text).Scan(
		&wh.ID,
		&wh.WordOfDayID,
		&wh.HintTypeID,
		&wh.Text,
		&wh.CreatedAt,
		&wh.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create word hint: %w", err)
	}

	return &wh, nil
}

// Get retrieves the hint text of a (word, hint type) pair.
func (r *WordHintRepository) Get(ctx context.Context, wordOfDayID, hintTypeID int64) (*model.WordHint, error) {
	const query = `
		SELECT id, word_of_day_id, hint_type_id, text, created_at, updated_at
		FROM word_hints
		WHERE word_of_day_id = $1 AND hint_type_id = $2
	`

	var wh model.WordHint
	err := r.q.QueryRow(ctx, query, wordOfDayID, hintTypeID).Scan(
		&wh.ID,
		&wh.WordOfDayID,
		&wh.HintTypeID,
		&wh.Text,
		&wh.CreatedAt,
		&wh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get word hint: %w", err)
	}

	return &wh, nil
}

// Exists checks whether a (word, hint type) pair already has a text.
func (r *WordHintRepository) Exists(ctx context.Context, wordOfDayID, hintTypeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM word_hints WHERE word_of_day_id = $1 AND hint_type_id = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, wordOfDayID, hintTypeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check word hint existence: %w", err)
	}

	return exists, nil
}
