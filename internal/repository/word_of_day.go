package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/db"
)

// WordOfDayRepository handles word of the day persistence.
type WordOfDayRepository struct {
	q db.Querier
}

// NewWordOfDayRepository creates a new WordOfDayRepository instance.
func NewWordOfDayRepository(q db.Querier) *WordOfDayRepository {
	return &WordOfDayRepository{q: q}
}

const wordColumns = `id, solution_word, generated_date, created_at, updated_at`

func scanWord(row scanner) (*model.WordOfDay, error) {
	var w model.WordOfDay
	err := row.Scan(
		&w.ID,
		&w.SolutionWord,
		&w.GeneratedDate,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return &w, err
}

// Create stores the word for date. The unique constraint on generated_date
// makes concurrent creators race; the losers get ErrDuplicate.
func (r *WordOfDayRepository) Create(ctx context.Context, solution string, date time.Time) (*model.WordOfDay, error) {
	const query = `
		INSERT INTO word_of_day (solution_word, generated_date, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + wordColumns

	w, err := scanWord(r.q.QueryRow(ctx, query, solution, date))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create word of day: %w", err)
	}

	return w, nil
}

// GetByDate retrieves the word of a date. Returns ErrNotFound if none exists.
func (r *WordOfDayRepository) GetByDate(ctx context.Context, date time.Time) (*model.WordOfDay, error) {
	const query = `SELECT ` + wordColumns + ` FROM word_of_day WHERE generated_date = $1`

	w, err := scanWord(r.q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get word of day: %w", err)
	}

	return w, nil
}

// GetByID retrieves a word by id. Returns ErrNotFound if none exists.
func (r *WordOfDayRepository) GetByID(ctx context.Context, id int64) (*model.WordOfDay, error) {
	const query = `SELECT ` + wordColumns + ` FROM word_of_day WHERE id = $1`

	w, err := scanWord(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get word of day: %w", err)
	}

	return w, nil
}
