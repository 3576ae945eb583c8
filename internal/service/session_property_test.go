// Property-based tests for SessionService.
package service

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
)

// TestSessionInvariantsProperty plays random sequences of guesses and hint
// requests and checks after every step that lives never go negative, that a
// concluded session never changes again and that a rejected action leaves
// the session untouched.
func TestSessionInvariantsProperty(t *testing.T) {
	codes := []string{"DEFINITION", "SYNONYM", "RHYME"}

	rapid.Check(t, func(t *rapid.T) {
		rules := game.Rules{
			MaxLives:              rapid.IntRange(1, 8).Draw(t, "maxLives"),
			LifeCostPerWrongGuess: rapid.IntRange(1, 3).Draw(t, "guessCost"),
			LifeCostPerHint:       rapid.IntRange(0, 3).Draw(t, "hintCost"),
			MinLivesToUseHint:     rapid.IntRange(0, 4).Draw(t, "minLives"),
			MaxHintsPerDay:        rapid.IntRange(0, 3).Draw(t, "maxHints"),
			MaxGuessCount:         rapid.IntRange(1, 8).Draw(t, "maxGuesses"),
			MaxWordLength:         5,
		}
		f := buildFixture(rules)
		ctx := context.Background()
		for _, c := range codes {
			if _, err := f.catalog.Create(ctx, c, ""); err != nil {
				t.Fatalf("create hint type: %v", err)
			}
		}
		if _, _, err := f.accounts.EnsureUser(ctx, 1, "p"); err != nil {
			t.Fatalf("EnsureUser: %v", err)
		}
		view, err := f.sessions.GetOrCreateSession(ctx, 1)
		if err != nil {
			t.Fatalf("GetOrCreateSession: %v", err)
		}
		prev := *view.Session

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var err error
			if rapid.Bool().Draw(t, "hint") {
				_, err = f.sessions.UseHint(ctx, 1, rapid.SampledFrom(codes).Draw(t, "code"))
			} else {
				_, err = f.sessions.SubmitGuess(ctx, 1, rapid.SampledFrom([]string{"crane", "slate", "plumb", "cr"}).Draw(t, "guess"))
			}

			sess, gerr := f.store.Sessions().GetByUserAndDate(ctx, 1, prev.GameDate)
			if gerr != nil {
				t.Fatalf("reload session: %v", gerr)
			}

			if sess.RemainingLives < 0 {
				t.Fatalf("lives went negative: %d", sess.RemainingLives)
			}
			if prev.Status.IsTerminal() && (sess.Status != prev.Status || sess.RemainingLives != prev.RemainingLives) {
				t.Fatalf("concluded session changed: %+v -> %+v", prev, *sess)
			}
			if err != nil {
				if _, ok := game.KindOf(err); !ok {
					t.Fatalf("unexpected generic error: %v", err)
				}
				if sess.RemainingLives != prev.RemainingLives || sess.Status != prev.Status {
					t.Fatalf("rejected action mutated session: %v: %+v -> %+v", err, prev, *sess)
				}
				if prev.Status == model.StatusInProgress && errors.Is(err, game.ErrCanNotSubmitGuess) {
					t.Fatalf("guess rejected on a running session: %v", err)
				}
			}
			prev = *sess
		}
	})
}
