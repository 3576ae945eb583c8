package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/repository"
	"daily-word-bot/internal/textgen"
)

// WordOfDayService guarantees a single secret word per calendar day.
//
// Concurrent first calls of a day within one process share a single creation
// attempt. Across processes the unique date constraint decides the winner and
// the losers re-read the stored word.
type WordOfDayService struct {
	store    repository.Store
	gen      textgen.WordGenerator
	fallback textgen.FallbackSource
	hints    *HintBank
	clock    clock.Clock
	maxLen   int

	group singleflight.Group
}

// NewWordOfDayService creates a WordOfDayService. fallback and hints may be nil:
// without fallback a generator failure is fatal, without hints no hint texts
// are generated for new words.
func NewWordOfDayService(
	store repository.Store,
	gen textgen.WordGenerator,
	fallback textgen.FallbackSource,
	hints *HintBank,
	clk clock.Clock,
	rules game.Rules,
) *WordOfDayService {
	return &WordOfDayService{
		store:    store,
		gen:      gen,
		fallback: fallback,
		hints:    hints,
		clock:    clk,
		maxLen:   rules.MaxWordLength,
	}
}

// Today returns the current game date.
func (s *WordOfDayService) Today() time.Time {
	return clock.Today(s.clock)
}

// EnsureWordForToday returns today's word, creating it on first access.
func (s *WordOfDayService) EnsureWordForToday(ctx context.Context) (*model.WordOfDay, error) {
	return s.EnsureWord(ctx, s.Today())
}

// EnsureWord returns the word of date, creating it if none exists yet.
func (s *WordOfDayService) EnsureWord(ctx context.Context, date time.Time) (*model.WordOfDay, error) {
	date = clock.Day(date)

	word, err := s.store.Words().GetByDate(ctx, date)
	if err == nil {
		return word, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get word of day: %w", err)
	}

	// Creation is detached from any one caller. A caller whose ctx ends only
	// stops waiting.
	ch := s.group.DoChan(date.Format(time.DateOnly), func() (any, error) {
		return s.create(context.WithoutCancel(ctx), date)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Each caller gets its own copy.
		w := *res.Val.(*model.WordOfDay)
		return &w, nil
	}
}

func (s *WordOfDayService) create(ctx context.Context, date time.Time) (*model.WordOfDay, error) {
	logger := log.Ctx(ctx).With().Str("date", date.Format(time.DateOnly)).Logger()

	solution, err := s.pickWord(ctx)
	if err != nil {
		return nil, err
	}

	var word *model.WordOfDay
	err = s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		word, err = r.Words().Create(ctx, solution, date)
		return err
	})
	if errors.Is(err, repository.ErrDuplicate) {
		logger.Info().Msg("word of day created concurrently, using stored word")
		word, err = s.store.Words().GetByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read word of day: %w", err)
		}
		return word, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create word of day: %w", err)
	}

	logger.Info().Int64("word_of_day_id", word.ID).Msg("created word of day")

	if s.hints != nil {
		if _, err := s.hints.PopulateHints(ctx, word); err != nil {
			logger.Warn().Err(err).Msg("hint population failed")
		}
	}
	return word, nil
}

// pickWord asks the generator for a word and falls back to the static list
// when the generator fails or answers with an invalid word.
func (s *WordOfDayService) pickWord(ctx context.Context) (string, error) {
	var cause error
	if s.gen != nil {
		w, err := s.gen.GenerateWord(ctx)
		if err == nil {
			err = game.ValidateWord(w, s.maxLen)
		}
		if err == nil {
			return game.NormalizeWord(w), nil
		}
		cause = err
	} else {
		cause = errors.New("no word generator configured")
	}

	if s.fallback == nil {
		return "", game.Errorf(game.KindWordGenerationFailed, "could not generate a word: %v", cause)
	}

	log.Ctx(ctx).Warn().Err(cause).Msg("word generation failed, drawing from fallback list")
	w, err := s.fallback.RandomWord(s.maxLen)
	if errors.Is(err, textgen.ErrFallbackExhausted) {
		return "", game.Errorf(game.KindFallbackExhausted, "no usable word in the fallback list")
	}
	if err != nil {
		return "", fmt.Errorf("failed to draw fallback word: %w", err)
	}
	return game.NormalizeWord(w), nil
}
