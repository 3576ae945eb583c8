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

// SessionRepository handles game session persistence.
type SessionRepository struct {
	q db.Querier
}

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(q db.Querier) *SessionRepository {
	return &SessionRepository{q: q}
}

const sessionColumns = `id, user_id, game_date, remaining_lives, status, word_of_day_id, created_at, updated_at`

func scanSession(row scanner) (*model.GameSession, error) {
	var s model.GameSession
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.GameDate,
		&s.RemainingLives,
		&s.Status,
		&s.WordOfDayID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return &s, err
}

// Create inserts a new session.
func (r *SessionRepository) Create(ctx context.Context, s *model.GameSession) (*model.GameSession, error) {
	const query = `
		INSERT INTO game_sessions (user_id, game_date, remaining_lives, status, word_of_day_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + sessionColumns

	created, err := scanSession(r.q.QueryRow(ctx, query,
		s.UserID, s.GameDate, s.RemainingLives, s.Status, s.WordOfDayID))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	return created, nil
}

// GetByUserAndDate retrieves the session of a user for a date.
func (r *SessionRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*model.GameSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE user_id = $1 AND game_date = $2`
	return r.get(ctx, query, userID, date)
}

// GetByUserAndDateForUpdate retrieves and row-locks the session of a user for
// a date. It must run inside a transaction to be meaningful.
func (r *SessionRepository) GetByUserAndDateForUpdate(ctx context.Context, userID int64, date time.Time) (*model.GameSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE user_id = $1 AND game_date = $2 FOR UPDATE`
	return r.get(ctx, query, userID, date)
}

func (r *SessionRepository) get(ctx context.Context, query string, args ...any) (*model.GameSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}
	return s, nil
}

// Update writes the remaining lives and status of s.
func (r *SessionRepository) Update(ctx context.Context, s *model.GameSession) error {
	const query = `
		UPDATE game_sessions
		SET remaining_lives = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, s.ID, s.RemainingLives, s.Status)
	if err != nil {
		return fmt.Errorf("failed to update game session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Ranking lists the won sessions of a date for the daily leaderboard.
func (r *SessionRepository) Ranking(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	const query = `
		SELECT
			s.user_id,
			u.username,
			(SELECT COUNT(*) FROM guesses g WHERE g.game_session_id = s.id) AS guesses,
			(SELECT COUNT(*) FROM hints h WHERE h.game_session_id = s.id) AS hints_used,
			s.remaining_lives,
			s.updated_at AS finished_at
		FROM game_sessions s
		JOIN users u ON u.telegram_id = s.user_id
		WHERE s.game_date = $1 AND s.status = $2
		ORDER BY guesses ASC, hints_used ASC, finished_at ASC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, date, model.StatusWon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily ranking: %w", err)
	}
	defer rows.Close()

	var ranks []*model.DailyRank
	for rows.Next() {
		var rank model.DailyRank
		if err := rows.Scan(
			&rank.UserID,
			&rank.Username,
			&rank.Guesses,
			&rank.HintsUsed,
			&rank.RemainingLives,
			&rank.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rank: %w", err)
		}
		ranks = append(ranks, &rank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranks: %w", err)
	}

	return ranks, nil
}
