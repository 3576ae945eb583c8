package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/repository"
)

// HintCatalogService manages the hint types players can request.
type HintCatalogService struct {
	store repository.Store
	clock clock.Clock
}

// NewHintCatalogService creates a new HintCatalogService instance.
func NewHintCatalogService(store repository.Store, clk clock.Clock) *HintCatalogService {
	return &HintCatalogService{store: store, clock: clk}
}

// NormalizeHintTypeCode uppercases code and rejects blank codes and codes
// containing whitespace.
func NormalizeHintTypeCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return "", game.Errorf(game.KindInvalidHintTypeCode, "hint type code must not be empty")
	}
	if strings.IndexFunc(c, unicode.IsSpace) >= 0 {
		return "", game.Errorf(game.KindInvalidHintTypeCode, "hint type code %q must not contain spaces", code)
	}
	return c, nil
}

// DisplayNameFromCode turns FUN_FACT into "Fun Fact".
func DisplayNameFromCode(code string) string {
	words := strings.ToLower(strings.ReplaceAll(code, "_", " "))
	return cases.Title(language.English).String(words)
}

// Create adds a hint type. A code already used by a deleted type must be
// reactivated instead.
func (s *HintCatalogService) Create(ctx context.Context, code, displayName string) (*model.HintType, error) {
	c, err := NormalizeHintTypeCode(code)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = DisplayNameFromCode(c)
	}

	var out *model.HintType
	err = s.store.InTx(ctx, func(r repository.Repositories) error {
		existing, err := r.HintTypes().GetByCode(ctx, c)
		if err == nil {
			return collision(existing)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to get hint type: %w", err)
		}

		out, err = r.HintTypes().Create(ctx, c, name)
		if errors.Is(err, repository.ErrDuplicate) {
			return game.Errorf(game.KindHintTypeAlreadyExists, "hint type %s already exists", c)
		}
		if err != nil {
			return fmt.Errorf("failed to create hint type: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func collision(existing *model.HintType) error {
	if !existing.IsActive() {
		return game.Errorf(game.KindHintTypeAlreadyDeleted, "hint type %s exists but is deleted, reactivate it instead", existing.Code)
	}
	return game.Errorf(game.KindHintTypeAlreadyExists, "hint type %s already exists", existing.Code)
}

// SoftDelete hides a hint type from new days and from players.
func (s *HintCatalogService) SoftDelete(ctx context.Context, code string) (*model.HintType, error) {
	return s.mutate(ctx, code, func(r repository.Repositories, ht *model.HintType) error {
		if !ht.IsActive() {
			return game.Errorf(game.KindHintTypeAlreadyDeleted, "hint type %s is already deleted", ht.Code)
		}
		ht.State = model.Deleted{At: s.clock.Now()}
		return nil
	})
}

// Reactivate restores a deleted hint type.
func (s *HintCatalogService) Reactivate(ctx context.Context, code string) (*model.HintType, error) {
	return s.mutate(ctx, code, func(r repository.Repositories, ht *model.HintType) error {
		if ht.IsActive() {
			return game.Errorf(game.KindHintTypeAlreadyActive, "hint type %s is already active", ht.Code)
		}
		ht.State = model.Active{}
		return nil
	})
}

// Update renames an active hint type and/or changes its display name.
// Nil arguments leave the field unchanged.
func (s *HintCatalogService) Update(ctx context.Context, code string, newCode, newDisplayName *string) (*model.HintType, error) {
	return s.mutate(ctx, code, func(r repository.Repositories, ht *model.HintType) error {
		if !ht.IsActive() {
			return game.Errorf(game.KindHintTypeAlreadyDeleted, "hint type %s is deleted, reactivate it first", ht.Code)
		}

		if newCode != nil {
			nc, err := NormalizeHintTypeCode(*newCode)
			if err != nil {
				return err
			}
			other, err := r.HintTypes().GetByCode(ctx, nc)
			switch {
			case err == nil && other.ID != ht.ID:
				return game.Errorf(game.KindHintTypeAlreadyExists, "hint type code %s is already taken", other.Code)
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("failed to get hint type: %w", err)
			}
			ht.Code = nc
		}

		if newDisplayName != nil {
			if name := strings.TrimSpace(*newDisplayName); name != "" {
				ht.DisplayName = name
			}
		}
		return nil
	})
}

// mutate loads the hint type by code, lets fn change it and stores it, all
// in one transaction.
func (s *HintCatalogService) mutate(ctx context.Context, code string, fn func(repository.Repositories, *model.HintType) error) (*model.HintType, error) {
	c, err := NormalizeHintTypeCode(code)
	if err != nil {
		return nil, err
	}

	var out *model.HintType
	err = s.store.InTx(ctx, func(r repository.Repositories) error {
		ht, err := r.HintTypes().GetByCode(ctx, c)
		if errors.Is(err, repository.ErrNotFound) {
			return game.Errorf(game.KindHintTypeNotFound, "unknown hint type %q", c)
		}
		if err != nil {
			return fmt.Errorf("failed to get hint type: %w", err)
		}

		if err := fn(r, ht); err != nil {
			return err
		}

		out, err = r.HintTypes().Update(ctx, ht)
		if errors.Is(err, repository.ErrDuplicate) {
			return game.Errorf(game.KindHintTypeAlreadyExists, "hint type code %s is already taken", ht.Code)
		}
		if err != nil {
			return fmt.Errorf("failed to update hint type: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the hint type with code, deleted or not.
func (s *HintCatalogService) Get(ctx context.Context, code string) (*model.HintType, error) {
	c, err := NormalizeHintTypeCode(code)
	if err != nil {
		return nil, err
	}
	ht, err := s.store.HintTypes().GetByCode(ctx, c)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, game.Errorf(game.KindHintTypeNotFound, "unknown hint type %q", c)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hint type: %w", err)
	}
	return ht, nil
}

// List returns the catalog ordered by code.
func (s *HintCatalogService) List(ctx context.Context, includeDeleted bool) ([]*model.HintType, error) {
	types, err := s.store.HintTypes().List(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list hint types: %w", err)
	}
	return types, nil
}

// DefaultHintTypes are created by SeedDefaults on a fresh installation.
var DefaultHintTypes = []string{"FUN_FACT", "DEFINITION", "SYNONYM"}

// SeedDefaults creates DefaultHintTypes when the catalog has never held any
// hint type, deleted ones included, and returns how many were created.
func (s *HintCatalogService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		existing, err := r.HintTypes().List(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to list hint types: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
		for _, code := range DefaultHintTypes {
			if _, err := r.HintTypes().Create(ctx, code, DisplayNameFromCode(code)); err != nil {
				return fmt.Errorf("failed to seed hint type %s: %w", code, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if created > 0 {
		log.Ctx(ctx).Info().Int("count", created).Msg("seeded default hint types")
	}
	return created, nil
}
