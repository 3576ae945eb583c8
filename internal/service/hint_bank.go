package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/repository"
	"daily-word-bot/internal/textgen"
)

// HintCache caches word hints by (word of day, hint type).
type HintCache interface {
	Get(ctx context.Context, wordOfDayID, hintTypeID int64) (*model.WordHint, bool, error)
	Set(ctx context.Context, wh *model.WordHint) error
}

// HintBank holds the generated hint texts of each day's word.
type HintBank struct {
	store repository.Store
	gen   textgen.HintGenerator
	cache HintCache
}

// NewHintBank creates a HintBank. cache may be nil.
func NewHintBank(store repository.Store, gen textgen.HintGenerator, cache HintCache) *HintBank {
	return &HintBank{store: store, gen: gen, cache: cache}
}

// PopulateHints generates the missing hint texts of word, one per active hint
// type, and returns how many were created. Failures of a single hint type are
// logged and skipped; a pair created concurrently is left as is.
func (b *HintBank) PopulateHints(ctx context.Context, word *model.WordOfDay) (int, error) {
	types, err := b.store.HintTypes().List(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list hint types: %w", err)
	}

	logger := log.Ctx(ctx).With().Int64("word_of_day_id", word.ID).Logger()
	created := 0
	for _, ht := range types {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		hl := logger.With().Str("hint_type", ht.Code).Logger()

		exists, err := b.store.WordHints().Exists(ctx, word.ID, ht.ID)
		if err != nil {
			hl.Warn().Err(err).Msg("failed to check word hint")
			continue
		}
		if exists {
			continue
		}

		text, err := b.gen.GenerateHintText(ctx, word.SolutionWord, ht.Code)
		if err != nil {
			hl.Warn().Err(err).Msg("hint generation failed")
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			hl.Warn().Msg("hint generator returned blank text")
			continue
		}

		if _, err := b.store.WordHints().Create(ctx, word.ID, ht.ID, text); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				hl.Debug().Msg("word hint created concurrently")
				continue
			}
			hl.Warn().Err(err).Msg("failed to store word hint")
			continue
		}
		created++
	}

	logger.Info().Int("created", created).Int("hint_types", len(types)).Msg("populated hints")
	return created, nil
}

// Lookup returns the stored hint of (word, hint type) read through hints.
// A missing or blank text is HintTextUnavailable.
func (b *HintBank) Lookup(ctx context.Context, hints repository.WordHintStore, wordOfDayID int64, ht *model.HintType) (*model.WordHint, error) {
	if b.cache != nil {
		wh, ok, err := b.cache.Get(ctx, wordOfDayID, ht.ID)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("hint cache read failed")
		} else if ok && strings.TrimSpace(wh.Text) != "" {
			return wh, nil
		}
	}

	wh, err := hints.Get(ctx, wordOfDayID, ht.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, game.Errorf(game.KindHintTextUnavailable, "no %s hint is available for today's word", ht.DisplayName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word hint: %w", err)
	}
	if strings.TrimSpace(wh.Text) == "" {
		return nil, game.Errorf(game.KindHintTextUnavailable, "no %s hint is available for today's word", ht.DisplayName)
	}

	if b.cache != nil {
		if err := b.cache.Set(ctx, wh); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("hint cache write failed")
		}
	}
	return wh, nil
}
