// Property-based tests for RankingService.
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
)

func TestDailyLeaderboard(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()
	f.hintType(t, "DEFINITION")

	// alice: 2 guesses, bob: 1 guess + 1 hint, carol: 1 guess, dave: lost.
	rules := f.rules
	for id, name := range map[int64]string{1: "alice", 2: "bob", 3: "carol", 4: "dave"} {
		f.player(t, id, name)
	}
	play := func(id int64, words ...string) {
		for _, w := range words {
			f.clock.Advance(time.Minute)
			_, err := f.sessions.SubmitGuess(ctx, id, w)
			require.NoError(t, err)
		}
	}
	play(1, "slate", "crane")
	_, err := f.sessions.UseHint(ctx, 2, "DEFINITION")
	require.NoError(t, err)
	play(2, "crane")
	play(3, "crane")
	for i := 0; i < rules.MaxGuessCount; i++ {
		play(4, "plumb")
	}

	ranks, err := f.ranking.DailyLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ranks, 3)
	assert.Equal(t, "carol", ranks[0].Username)
	assert.Equal(t, "bob", ranks[1].Username)
	assert.Equal(t, 1, ranks[1].HintsUsed)
	assert.Equal(t, "alice", ranks[2].Username)
	assert.Equal(t, 2, ranks[2].Guesses)

	top, err := f.ranking.DailyLeaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	yesterday, err := f.ranking.LeaderboardForDate(ctx, testNow.AddDate(0, 0, -1), 0)
	require.NoError(t, err)
	assert.Empty(t, yesterday)
}

// TestLeaderboardOrderingProperty checks that the leaderboard only lists
// winners and is sorted by guesses, then hints.
func TestLeaderboardOrderingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rules := game.DefaultRules()
		f := buildFixture(rules)
		ctx := context.Background()
		if _, err := f.catalog.Create(ctx, "DEFINITION", ""); err != nil {
			t.Fatalf("create hint type: %v", err)
		}

		players := rapid.IntRange(1, 6).Draw(t, "players")
		winners := 0
		for p := 1; p <= players; p++ {
			id := int64(p)
			if _, _, err := f.accounts.EnsureUser(ctx, id, fmt.Sprintf("p%d", p)); err != nil {
				t.Fatalf("EnsureUser: %v", err)
			}
			if _, err := f.sessions.GetOrCreateSession(ctx, id); err != nil {
				t.Fatalf("GetOrCreateSession: %v", err)
			}
			if rapid.Bool().Draw(t, fmt.Sprintf("hint%d", p)) {
				if _, err := f.sessions.UseHint(ctx, id, "DEFINITION"); err != nil {
					t.Fatalf("UseHint: %v", err)
				}
			}
			misses := rapid.IntRange(0, rules.MaxGuessCount).Draw(t, fmt.Sprintf("misses%d", p))
			for i := 0; i < misses; i++ {
				_, err := f.sessions.SubmitGuess(ctx, id, "plumb")
				if errors.Is(err, game.ErrCanNotSubmitGuess) {
					break
				}
				if err != nil {
					t.Fatalf("SubmitGuess: %v", err)
				}
			}
			res, err := f.sessions.SubmitGuess(ctx, id, "crane")
			if err == nil && res.Session.Status == model.StatusWon {
				winners++
			}
		}

		ranks, err := f.ranking.DailyLeaderboard(ctx, 0)
		if err != nil {
			t.Fatalf("DailyLeaderboard: %v", err)
		}
		if len(ranks) != min(winners, DefaultLeaderboardSize) {
			t.Fatalf("got %d ranks, want %d", len(ranks), winners)
		}
		for i := 1; i < len(ranks); i++ {
			a, b := ranks[i-1], ranks[i]
			if a.Guesses > b.Guesses || (a.Guesses == b.Guesses && a.HintsUsed > b.HintsUsed) {
				t.Fatalf("ranks out of order at %d: %+v before %+v", i, a, b)
			}
		}
	})
}
