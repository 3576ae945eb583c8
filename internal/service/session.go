package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/lock"
	"daily-word-bot/internal/repository"
	"daily-word-bot/internal/textgen"
)

// DefaultLockTimeout bounds how long a player's action waits behind another
// action of the same player.
const DefaultLockTimeout = 5 * time.Second

// SessionView is a player's game of the day as shown to them.
type SessionView struct {
	Session    *model.GameSession
	WordLength int
	// Solution is only set once the game is over.
	Solution       string
	Guesses        []*model.Guess
	UsedHints      []model.UsedHint
	HintsUsedToday int
	HintTypes      []*model.HintType
	Created        bool
}

// GuessResult is the outcome of a submitted guess.
type GuessResult struct {
	Guess      *model.Guess
	Session    *model.GameSession
	WordLength int
	GuessCount int
	HintsUsed  int
	// Solution is only set once the game is over.
	Solution string
	Reply    string
}

// HintResult is the outcome of a used hint.
type HintResult struct {
	HintType       *model.HintType
	Text           string
	RemainingLives int
	HintsUsedToday int
}

// SessionService runs the per-player, per-day game sessions.
type SessionService struct {
	store       repository.Store
	words       *WordOfDayService
	hints       *HintBank
	replies     textgen.ReplyGenerator
	rules       game.Rules
	locks       *lock.KeyedLock[int64]
	lockTimeout time.Duration
}

// NewSessionService creates a SessionService. replies may be nil, in which
// case canned replies are used.
func NewSessionService(
	store repository.Store,
	words *WordOfDayService,
	hints *HintBank,
	replies textgen.ReplyGenerator,
	rules game.Rules,
) *SessionService {
	if hints == nil {
		hints = NewHintBank(store, nil, nil)
	}
	return &SessionService{
		store:       store,
		words:       words,
		hints:       hints,
		replies:     replies,
		rules:       rules,
		locks:       lock.New[int64](),
		lockTimeout: DefaultLockTimeout,
	}
}

// Rules returns the rule set the sessions are played with.
func (s *SessionService) Rules() game.Rules {
	return s.rules
}

// GetOrCreateSession returns the player's session of today, opening one with
// full lives on first access.
func (s *SessionService) GetOrCreateSession(ctx context.Context, userID int64) (*SessionView, error) {
	exists, err := s.store.Users().Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, game.Errorf(game.KindUserNotFound, "user %d is not registered", userID)
	}

	today := s.words.Today()
	created := false

	sess, err := s.store.Sessions().GetByUserAndDate(ctx, userID, today)
	if errors.Is(err, repository.ErrNotFound) {
		sess, created, err = s.openSession(ctx, userID, today)
	}
	if err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, sess)
	if err != nil {
		return nil, err
	}
	view.Created = created
	return view, nil
}

func (s *SessionService) openSession(ctx context.Context, userID int64, today time.Time) (*model.GameSession, bool, error) {
	word, err := s.words.EnsureWord(ctx, today)
	if err != nil {
		return nil, false, err
	}

	state := s.rules.NewState()
	sess, err := s.store.Sessions().Create(ctx, &model.GameSession{
		UserID:         userID,
		GameDate:       today,
		RemainingLives: state.RemainingLives,
		Status:         state.Status,
		WordOfDayID:    word.ID,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		sess, err = s.store.Sessions().GetByUserAndDate(ctx, userID, today)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get game session: %w", err)
		}
		return sess, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create game session: %w", err)
	}

	log.Ctx(ctx).Info().Int64("user_id", userID).Int64("session_id", sess.ID).Msg("opened game session")
	return sess, true, nil
}

func (s *SessionService) buildView(ctx context.Context, sess *model.GameSession) (*SessionView, error) {
	word, err := s.store.Words().GetByID(ctx, sess.WordOfDayID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, game.ErrWordMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word of day: %w", err)
	}

	guesses, err := s.store.Guesses().ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}
	used, err := s.store.Hints().ListUsedBySession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list used hints: %w", err)
	}
	hintCount, err := s.store.Hints().CountByUserAndDate(ctx, sess.UserID, sess.GameDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count hints: %w", err)
	}
	types, err := s.store.HintTypes().List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list hint types: %w", err)
	}

	view := &SessionView{
		Session:        sess,
		WordLength:     len(word.SolutionWord),
		Guesses:        guesses,
		UsedHints:      used,
		HintsUsedToday: hintCount,
		HintTypes:      types,
	}
	if sess.Status.IsTerminal() {
		view.Solution = word.SolutionWord
	}
	return view, nil
}

// SubmitGuess scores a guess against today's word and advances the session.
// The guess record and the session update commit together.
func (s *SessionService) SubmitGuess(ctx context.Context, userID int64, guessedWord string) (*GuessResult, error) {
	if err := game.ValidateWord(guessedWord, s.rules.MaxWordLength); err != nil {
		return nil, err
	}
	guess := game.NormalizeWord(guessedWord)

	var (
		result   *GuessResult
		solution string
	)
	err := s.locks.WithLockContext(ctx, userID, s.lockTimeout, func() error {
		// The day is read under the lock; the wait may cross midnight.
		today := s.words.Today()
		return s.store.InTx(ctx, func(r repository.Repositories) error {
			sess, err := r.Sessions().GetByUserAndDateForUpdate(ctx, userID, today)
			if errors.Is(err, repository.ErrNotFound) {
				return game.Errorf(game.KindGameSessionNotFound, "no game started today, use /play first")
			}
			if err != nil {
				return fmt.Errorf("failed to get game session: %w", err)
			}

			state := game.State{RemainingLives: sess.RemainingLives, Status: sess.Status}
			if err := s.rules.CanGuess(state); err != nil {
				return err
			}

			word, err := r.Words().GetByID(ctx, sess.WordOfDayID)
			if errors.Is(err, repository.ErrNotFound) {
				return game.ErrWordMissing
			}
			if err != nil {
				return fmt.Errorf("failed to get word of day: %w", err)
			}
			solution = word.SolutionWord

			score := game.Evaluate(solution, guess)
			g, err := r.Guesses().Create(ctx, &model.Guess{
				GameSessionID:    sess.ID,
				GuessedWord:      guess,
				CorrectPositions: score.Correct,
				MissedPositions:  score.Misplaced,
			})
			if err != nil {
				return fmt.Errorf("failed to save guess: %w", err)
			}

			count, err := r.Guesses().CountBySession(ctx, sess.ID)
			if err != nil {
				return fmt.Errorf("failed to count guesses: %w", err)
			}

			next := s.rules.ApplyGuess(state, solution, guess, score, count)
			sess.RemainingLives = next.RemainingLives
			sess.Status = next.Status
			if err := r.Sessions().Update(ctx, sess); err != nil {
				return fmt.Errorf("failed to update game session: %w", err)
			}

			hintsUsed, err := r.Hints().CountByUserAndDate(ctx, userID, today)
			if err != nil {
				return fmt.Errorf("failed to count hints: %w", err)
			}

			result = &GuessResult{
				Guess:      g,
				Session:    sess,
				WordLength: len(solution),
				GuessCount: count,
				HintsUsed:  hintsUsed,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if result.Session.Status.IsTerminal() {
		result.Solution = solution
		log.Ctx(ctx).Info().
			Int64("user_id", userID).
			Str("status", string(result.Session.Status)).
			Int("guesses", result.GuessCount).
			Msg("game finished")
	}

	result.Reply = s.reply(ctx, textgen.ReplyInput{
		GuessedWord:    guess,
		Solution:       solution,
		Status:         result.Session.Status,
		RemainingLives: result.Session.RemainingLives,
		HintsUsed:      result.HintsUsed,
	})
	return result, nil
}

func (s *SessionService) reply(ctx context.Context, in textgen.ReplyInput) string {
	if s.replies != nil {
		text, err := s.replies.GenerateGuessReply(ctx, in)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("reply generation failed, using canned reply")
		}
	}
	return textgen.CannedReply(in)
}

// UseHint reveals the hint of the given type for today's word and charges
// its life cost. Every check runs before anything is written.
func (s *SessionService) UseHint(ctx context.Context, userID int64, hintTypeCode string) (*HintResult, error) {
	code := strings.ToUpper(strings.TrimSpace(hintTypeCode))

	var result *HintResult
	err := s.locks.WithLockContext(ctx, userID, s.lockTimeout, func() error {
		today := s.words.Today()
		return s.store.InTx(ctx, func(r repository.Repositories) error {
			sess, err := r.Sessions().GetByUserAndDateForUpdate(ctx, userID, today)
			if errors.Is(err, repository.ErrNotFound) {
				return game.Errorf(game.KindGameSessionNotFound, "no game started today, use /play first")
			}
			if err != nil {
				return fmt.Errorf("failed to get game session: %w", err)
			}

			used, err := r.Hints().CountByUserAndDate(ctx, userID, today)
			if err != nil {
				return fmt.Errorf("failed to count hints: %w", err)
			}

			state := game.State{RemainingLives: sess.RemainingLives, Status: sess.Status}
			if err := s.rules.CanUseHint(state, used); err != nil {
				return err
			}

			ht, err := r.HintTypes().GetByCode(ctx, code)
			if errors.Is(err, repository.ErrNotFound) || (err == nil && !ht.IsActive()) {
				return game.Errorf(game.KindHintTypeNotFound, "unknown hint type %q", code)
			}
			if err != nil {
				return fmt.Errorf("failed to get hint type: %w", err)
			}

			already, err := r.Hints().ExistsForSessionAndType(ctx, sess.ID, ht.ID)
			if err != nil {
				return fmt.Errorf("failed to check hint usage: %w", err)
			}
			if already {
				return game.Errorf(game.KindCanNotUseHint, "the %s hint was already used today", ht.DisplayName)
			}

			wh, err := s.hints.Lookup(ctx, r.WordHints(), sess.WordOfDayID, ht)
			if err != nil {
				return err
			}

			next, err := s.rules.ApplyHint(state)
			if err != nil {
				return err
			}
			sess.RemainingLives = next.RemainingLives
			if err := r.Sessions().Update(ctx, sess); err != nil {
				return fmt.Errorf("failed to update game session: %w", err)
			}

			if _, err := r.Hints().Create(ctx, &model.Hint{
				GameSessionID: sess.ID,
				WordHintID:    wh.ID,
				HintTypeID:    ht.ID,
			}); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return game.Errorf(game.KindCanNotUseHint, "the %s hint was already used today", ht.DisplayName)
				}
				return fmt.Errorf("failed to save hint usage: %w", err)
			}

			result = &HintResult{
				HintType:       ht,
				Text:           wh.Text,
				RemainingLives: sess.RemainingLives,
				HintsUsedToday: used + 1,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("user_id", userID).Str("hint_type", result.HintType.Code).Msg("hint used")
	return result, nil
}
