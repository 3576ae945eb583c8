package repository

import (
	"context"
	"fmt"
	"time"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/db"
)

// HintRepository handles hint usage persistence.
type HintRepository struct {
	q db.Querier
}

// NewHintRepository creates a new HintRepository instance.
func NewHintRepository(q db.Querier) *HintRepository {
	return &HintRepository{q: q}
}

// Create records the use of a hint type in a session.
func (r *HintRepository) Create(ctx context.Context, h *model.Hint) (*model.Hint, error) {
	const query = `
		INSERT INTO hints (game_session_id, word_hint_id, hint_type_id, used_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, game_session_id, word_hint_id, hint_type_id, used_at
	`

	var created model.Hint
	err := r.q.QueryRow(ctx, query, h.GameSessionID, h.WordHintID, h.HintTypeID).Scan(
		&created.ID,
		&created.GameSessionID,
		&created.WordHintID,
		&created.HintTypeID,
		&created.UsedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create hint: %w", err)
	}

	return &created, nil
}

// ExistsForSessionAndType checks whether a hint type was used in a session.
func (r *HintRepository) ExistsForSessionAndType(ctx context.Context, sessionID, hintTypeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM hints WHERE game_session_id = $1 AND hint_type_id = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, sessionID, hintTypeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check hint existence: %w", err)
	}

	return exists, nil
}

// CountByUserAndDate returns how many hints a user used on a date.
func (r *HintRepository) CountByUserAndDate(ctx context.Context, userID int64, date time.Time) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM hints h
		JOIN game_sessions s ON s.id = h.game_session_id
		WHERE s.user_id = $1 AND s.game_date = $2
	`

	var count int
	if err := r.q.QueryRow(ctx, query, userID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count hints: %w", err)
	}

	return count, nil
}

// ListUsedBySession returns the revealed hints of a session in usage order.
func (r *HintRepository) ListUsedBySession(ctx context.Context, sessionID int64) ([]model.UsedHint, error) {
	const query = `
		SELECT t.code, t.display_name, w.text, h.used_at
		FROM hints h
		JOIN hint_types t ON t.id = h.hint_type_id
		JOIN word_hints w ON w.id = h.word_hint_id
		WHERE h.game_session_id = $1
		ORDER BY h.used_at, h.id
	`

	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list used hints: %w", err)
	}
	defer rows.Close()

	var used []model.UsedHint
	for rows.Next() {
		var u model.UsedHint
		if err := rows.Scan(&u.TypeCode, &u.DisplayName, &u.Text, &u.UsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan used hint: %w", err)
		}
		used = append(used, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating used hints: %w", err)
	}

	return used, nil
}
