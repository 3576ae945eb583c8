package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/textgen"
)

func TestGetOrCreateSession(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()

	_, err := f.sessions.GetOrCreateSession(ctx, 1)
	requireKind(t, err, game.KindUserNotFound)

	f.hintType(t, "DEFINITION")
	view := f.player(t, 1, "alice")
	assert.True(t, view.Created)
	assert.Equal(t, 6, view.Session.RemainingLives)
	assert.Equal(t, model.StatusInProgress, view.Session.Status)
	assert.Equal(t, 5, view.WordLength)
	assert.Empty(t, view.Solution)
	assert.Empty(t, view.Guesses)
	assert.Len(t, view.HintTypes, 1)

	again, err := f.sessions.GetOrCreateSession(ctx, 1)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, view.Session.ID, again.Session.ID)
}

func TestGetOrCreateSession_ShowsHistory(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()
	f.hintType(t, "DEFINITION")
	f.player(t, 1, "alice")

	_, err := f.sessions.SubmitGuess(ctx, 1, "slate")
	require.NoError(t, err)
	_, err = f.sessions.SubmitGuess(ctx, 1, "crate")
	require.NoError(t, err)
	_, err = f.sessions.UseHint(ctx, 1, "definition")
	require.NoError(t, err)

	view, err := f.sessions.GetOrCreateSession(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Guesses, 2)
	assert.Equal(t, "SLATE", view.Guesses[0].GuessedWord)
	assert.Equal(t, "CRATE", view.Guesses[1].GuessedWord)
	require.Len(t, view.UsedHints, 1)
	assert.Equal(t, "DEFINITION", view.UsedHints[0].TypeCode)
	assert.Equal(t, "DEFINITION hint for CRANE", view.UsedHints[0].Text)
	assert.Equal(t, 1, view.HintsUsedToday)
	assert.Equal(t, 3, view.Session.RemainingLives)
}

func TestSubmitGuess_Win(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()
	f.player(t, 1, "alice")

	res, err := f.sessions.SubmitGuess(ctx, 1, " crane ")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Guess.CorrectPositions)
	assert.Empty(t, res.Guess.MissedPositions)
	assert.Equal(t, model.StatusWon, res.Session.Status)
	assert.Equal(t, 6, res.Session.RemainingLives)
	assert.Equal(t, "CRANE", res.Solution)
	assert.Equal(t, "Nice try!", res.Reply)
	assert.Equal(t, 1, res.GuessCount)

	require.Len(t, f.gen.replyIns, 1)
	assert.Equal(t, textgen.ReplyInput{
		GuessedWord:    "CRANE",
		Solution:       "CRANE",
		Status:         model.StatusWon,
		RemainingLives: 6,
	}, f.gen.replyIns[0])

	_, err = f.sessions.SubmitGuess(ctx, 1, "slate")
	requireKind(t, err, game.KindCanNotSubmitGuess)

	_, err = f.sessions.UseHint(ctx, 1, "DEFINITION")
	requireKind(t, err, game.KindCanNotUseHint)
}

func TestSubmitGuess_WrongGuessCostsLife(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	f.player(t, 1, "alice")

	res, err := f.sessions.SubmitGuess(context.Background(), 1, "react")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, res.Session.Status)
	assert.Equal(t, 5, res.Session.RemainingLives)
	assert.Empty(t, res.Solution)
	assert.Equal(t, 5, res.WordLength)
}

func TestSubmitGuess_DuplicateLetters(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	f.gen.word = "speed"
	f.player(t, 1, "alice")

	res, err := f.sessions.SubmitGuess(context.Background(), 1, "erase")
	require.NoError(t, err)
	assert.Empty(t, res.Guess.CorrectPositions)
	assert.Equal(t, []int{0, 3, 4}, res.Guess.MissedPositions)
}

func TestSubmitGuess_LoseByLives(t *testing.T) {
	rules := game.DefaultRules()
	rules.MaxLives = 1
	f := newFixture(t, rules)
	f.player(t, 1, "alice")

	res, err := f.sessions.SubmitGuess(context.Background(), 1, "slate")
	require.NoError(t, err)
	assert.Equal(t, model.StatusLost, res.Session.Status)
	assert.Equal(t, 0, res.Session.RemainingLives)
	assert.Equal(t, "CRANE", res.Solution)
}

func TestSubmitGuess_LoseByGuessCount(t *testing.T) {
	rules := game.DefaultRules()
	rules.MaxGuessCount = 2
	f := newFixture(t, rules)
	f.player(t, 1, "alice")
	ctx := context.Background()

	res, err := f.sessions.SubmitGuess(ctx, 1, "slate")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, res.Session.Status)

	res, err = f.sessions.SubmitGuess(ctx, 1, "plumb")
	require.NoError(t, err)
	assert.Equal(t, model.StatusLost, res.Session.Status)
	assert.Equal(t, 4, res.Session.RemainingLives)
}

func TestSubmitGuess_ShorterWordNeverWins(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	f.player(t, 1, "alice")

	res, err := f.sessions.SubmitGuess(context.Background(), 1, "cran")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Guess.CorrectPositions)
	assert.Equal(t, model.StatusInProgress, res.Session.Status)
	assert.Equal(t, 5, res.Session.RemainingLives)
}

func TestSubmitGuess_Rejections(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()

	_, err := f.sessions.SubmitGuess(ctx, 1, "crane")
	requireKind(t, err, game.KindGameSessionNotFound)

	f.player(t, 1, "alice")
	for _, bad := range []string{"", "  ", "cr4ne", "toolong", "two words"} {
		_, err := f.sessions.SubmitGuess(ctx, 1, bad)
		requireKind(t, err, game.KindInvalidWord)
	}

	sess := f.session(t, 1)
	assert.Equal(t, 6, sess.RemainingLives)
	count, err := f.store.Guesses().CountBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitGuess_ReplyFallback(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	f.player(t, 1, "alice")
	f.gen.replyErr = errors.New("timeout")

	res, err := f.sessions.SubmitGuess(context.Background(), 1, "slate")
	require.NoError(t, err)
	assert.Equal(t, "Not quite. 5 lives left.", res.Reply)

	f.gen.replyErr = nil
	f.gen.reply = "   "
	res, err = f.sessions.SubmitGuess(context.Background(), 1, "plumb")
	require.NoError(t, err)
	assert.Equal(t, "Not quite. 4 lives left.", res.Reply)
}

func TestUseHint(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()
	f.hintType(t, "DEFINITION")
	f.hintType(t, "SYNONYM")
	f.player(t, 1, "alice")

	res, err := f.sessions.UseHint(ctx, 1, " definition ")
	require.NoError(t, err)
	assert.Equal(t, "DEFINITION hint for CRANE", res.Text)
	assert.Equal(t, 5, res.RemainingLives)
	assert.Equal(t, 1, res.HintsUsedToday)
	assert.Equal(t, "DEFINITION", res.HintType.Code)

	_, err = f.sessions.UseHint(ctx, 1, "DEFINITION")
	requireKind(t, err, game.KindCanNotUseHint)
	assert.Equal(t, 5, f.session(t, 1).RemainingLives)

	res, err = f.sessions.UseHint(ctx, 1, "synonym")
	require.NoError(t, err)
	assert.Equal(t, 4, res.RemainingLives)
	assert.Equal(t, 2, res.HintsUsedToday)
}

func TestUseHint_DailyQuota(t *testing.T) {
	rules := game.DefaultRules()
	rules.MaxHintsPerDay = 1
	f := newFixture(t, rules)
	ctx := context.Background()
	f.hintType(t, "DEFINITION")
	f.hintType(t, "SYNONYM")
	f.player(t, 1, "alice")

	_, err := f.sessions.UseHint(ctx, 1, "DEFINITION")
	require.NoError(t, err)

	_, err = f.sessions.UseHint(ctx, 1, "SYNONYM")
	requireKind(t, err, game.KindCanNotUseHint)
	assert.Contains(t, err.Error(), "limit")
}

func TestUseHint_InsufficientLives(t *testing.T) {
	tests := []struct {
		name  string
		rules func(*game.Rules)
	}{
		{"below minimum", func(r *game.Rules) { r.MaxLives = 1; r.MinLivesToUseHint = 2; r.LifeCostPerHint = 1 }},
		{"below cost", func(r *game.Rules) { r.MaxLives = 2; r.MinLivesToUseHint = 0; r.LifeCostPerHint = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := game.DefaultRules()
			tt.rules(&rules)
			f := newFixture(t, rules)
			f.hintType(t, "DEFINITION")
			f.player(t, 1, "alice")

			_, err := f.sessions.UseHint(context.Background(), 1, "DEFINITION")
			requireKind(t, err, game.KindCanNotUseHint)

			sess := f.session(t, 1)
			assert.Equal(t, rules.MaxLives, sess.RemainingLives)
			used, err := f.store.Hints().CountByUserAndDate(context.Background(), 1, sess.GameDate)
			require.NoError(t, err)
			assert.Zero(t, used)
		})
	}
}

func TestUseHint_Rejections(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()

	_, err := f.sessions.UseHint(ctx, 1, "DEFINITION")
	requireKind(t, err, game.KindGameSessionNotFound)

	f.hintType(t, "DEFINITION")
	f.player(t, 1, "alice")

	_, err = f.sessions.UseHint(ctx, 1, "ETYMOLOGY")
	requireKind(t, err, game.KindHintTypeNotFound)

	_, err = f.catalog.SoftDelete(ctx, "DEFINITION")
	require.NoError(t, err)
	_, err = f.sessions.UseHint(ctx, 1, "DEFINITION")
	requireKind(t, err, game.KindHintTypeNotFound)

	// Created after today's word, so no text was generated for it.
	f.hintType(t, "SYNONYM")
	_, err = f.sessions.UseHint(ctx, 1, "SYNONYM")
	requireKind(t, err, game.KindHintTextUnavailable)

	assert.Equal(t, 6, f.session(t, 1).RemainingLives)
}

func TestUseHint_ReadsThroughCache(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()
	f.hintType(t, "DEFINITION")

	cache := &mapCache{entries: map[[2]int64]*model.WordHint{}}
	bank := NewHintBank(f.store, f.gen, cache)
	sessions := NewSessionService(f.store, f.words, bank, f.gen, f.rules)
	f.player(t, 1, "alice")
	f.player(t, 2, "bob")

	res, err := sessions.UseHint(ctx, 1, "DEFINITION")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	res2, err := sessions.UseHint(ctx, 2, "DEFINITION")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, res.Text, res2.Text)
}

type mapCache struct {
	entries map[[2]int64]*model.WordHint
	hits    int
	sets    int
}

func (c *mapCache) Get(ctx context.Context, wordOfDayID, hintTypeID int64) (*model.WordHint, bool, error) {
	wh, ok := c.entries[[2]int64{wordOfDayID, hintTypeID}]
	if ok {
		c.hits++
	}
	return wh, ok, nil
}

func (c *mapCache) Set(ctx context.Context, wh *model.WordHint) error {
	c.sets++
	c.entries[[2]int64{wh.WordOfDayID, wh.HintTypeID}] = wh
	return nil
}

func TestSubmitGuess_DayReadAfterLockWait(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()
	f.player(t, 1, "alice")

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = f.sessions.locks.WithLockContext(ctx, 1, time.Second, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	errCh := make(chan error, 1)
	go func() {
		_, err := f.sessions.SubmitGuess(ctx, 1, "crane")
		errCh <- err
	}()
	// The guess is now waiting for the lock; midnight passes meanwhile.
	time.Sleep(50 * time.Millisecond)
	f.clock.Advance(24 * time.Hour)
	close(release)

	requireKind(t, <-errCh, game.KindGameSessionNotFound)

	yesterday, err := f.store.Sessions().GetByUserAndDate(ctx, 1, clock.Day(testNow))
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, yesterday.Status)
	assert.Equal(t, f.rules.MaxLives, yesterday.RemainingLives)
}
