package repository

import (
	"context"
	"fmt"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/db"
)

// GuessRepository handles guess persistence.
type GuessRepository struct {
	q db.Querier
}

// NewGuessRepository creates a new GuessRepository instance.
func NewGuessRepository(q db.Querier) *GuessRepository {
	return &GuessRepository{q: q}
}

func scanGuess(row scanner) (*model.Guess, error) {
	var (
		g                model.Guess
		correct, missing []int32
	)
	err := row.Scan(
		&g.ID,
		&g.GameSessionID,
		&g.GuessedWord,
		&correct,
		&missing,
		&g.CreatedAt,
	)
	g.CorrectPositions = fromInt32(correct)
	g.MissedPositions = fromInt32(missing)
	return &g, err
}

// Create appends a guess to its session.
func (r *GuessRepository) Create(ctx context.Context, g *model.Guess) (*model.Guess, error) {
	const query = `
		INSERT INTO guesses (game_session_id, guessed_word, correct_positions, missed_positions, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, game_session_id, guessed_word, correct_positions, missed_positions, created_at
	`

	created, err := scanGuess(r.q.QueryRow(ctx, query,
		g.GameSessionID, g.GuessedWord, toInt32(g.CorrectPositions), toInt32(g.MissedPositions)))
	if err != nil {
		return nil, fmt.Errorf("failed to create guess: %w", err)
	}

	return created, nil
}

// ListBySession returns the guesses of a session in insertion order.
func (r *GuessRepository) ListBySession(ctx context.Context, sessionID int64) ([]*model.Guess, error) {
	const query = `
		SELECT id, game_session_id, guessed_word, correct_positions, missed_positions, created_at
		FROM guesses
		WHERE game_session_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}
	defer rows.Close()

	var guesses []*model.Guess
	for rows.Next() {
		g, err := scanGuess(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guess: %w", err)
		}
		guesses = append(guesses, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guesses: %w", err)
	}

	return guesses, nil
}

// CountBySession returns the number of guesses made in a session.
func (r *GuessRepository) CountBySession(ctx context.Context, sessionID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM guesses WHERE game_session_id = $1`

	var count int
	if err := r.q.QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count guesses: %w", err)
	}

	return count, nil
}

// toInt32 never returns nil so that empty position lists are stored as '{}'.
func toInt32(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func fromInt32(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
