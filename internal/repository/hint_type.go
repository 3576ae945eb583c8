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

// HintTypeRepository handles hint catalog persistence.
type HintTypeRepository struct {
	q db.Querier
}

// NewHintTypeRepository creates a new HintTypeRepository instance.
func NewHintTypeRepository(q db.Querier) *HintTypeRepository {
	return &HintTypeRepository{q: q}
}

const hintTypeColumns = `id, code, display_name, deleted_at, created_at, updated_at`

func scanHintType(row scanner) (*model.HintType, error) {
	var (
		ht        model.HintType
		deletedAt *time.Time
	)
	err := row.Scan(
		&ht.ID,
		&ht.Code,
		&ht.DisplayName,
		&deletedAt,
		&ht.CreatedAt,
		&ht.UpdatedAt,
	)
	ht.State = model.StateFromDeletedAt(deletedAt)
	return &ht, err
}

// Create inserts an active hint type.
func (r *HintTypeRepository) Create(ctx context.Context, code, displayName string) (*model.HintType, error) {
	const query = `
		INSERT INTO hint_types (code, display_name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + hintTypeColumns

	ht, err := scanHintType(r.q.QueryRow(ctx, query, code, displayName))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create hint type: %w", err)
	}

	return ht, nil
}

// GetByCode retrieves a hint type by code, ignoring case.
func (r *HintTypeRepository) GetByCode(ctx context.Context, code string) (*model.HintType, error) {
	const query = `SELECT ` + hintTypeColumns + ` FROM hint_types WHERE UPPER(code) = UPPER($1)`

	ht, err := scanHintType(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hint type: %w", err)
	}

	return ht, nil
}

// GetByID retrieves a hint type by id.
func (r *HintTypeRepository) GetByID(ctx context.Context, id int64) (*model.HintType, error) {
	const query = `SELECT ` + hintTypeColumns + ` FROM hint_types WHERE id = $1`

	ht, err := scanHintType(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hint type: %w", err)
	}

	return ht, nil
}

// List returns hint types ordered by code.
func (r *HintTypeRepository) List(ctx context.Context, includeDeleted bool) ([]*model.HintType, error) {
	const query = `
		SELECT ` + hintTypeColumns + `
		FROM hint_types
		WHERE $1::boolean OR deleted_at IS NULL
		ORDER BY code
	`

	rows, err := r.q.Query(ctx, query, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list hint types: %w", err)
	}
	defer rows.Close()

	var types []*model.HintType
	for rows.Next() {
		ht, err := scanHintType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hint type: %w", err)
		}
		types = append(types, ht)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hint types: %w", err)
	}

	return types, nil
}

// Update writes the code, display name and lifecycle state of ht.
func (r *HintTypeRepository) Update(ctx context.Context, ht *model.HintType) (*model.HintType, error) {
	const query = `
		UPDATE hint_types
		SET code = $2, display_name = $3, deleted_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + hintTypeColumns

	updated, err := scanHintType(r.q.QueryRow(ctx, query, ht.ID, ht.Code, ht.DisplayName, ht.DeletedAt()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update hint type: %w", err)
	}

	return updated, nil
}
