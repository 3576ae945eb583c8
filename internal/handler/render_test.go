package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/service"
)

func guessOf(solution, word string) *model.Guess {
	res := game.Evaluate(solution, word)
	return &model.Guess{
		GuessedWord:      game.NormalizeWord(word),
		CorrectPositions: res.Correct,
		MissedPositions:  res.Misplaced,
	}
}

func TestRenderTiles(t *testing.T) {
	tests := []struct {
		solution, guess, want string
	}{
		{"CRANE", "CRANE", "🟩🟩🟩🟩🟩"},
		{"CRANE", "SLATE", "⬜⬜🟩⬜🟩"},
		{"SPEED", "ERASE", "🟨⬜⬜🟨🟨"},
		{"CRANE", "CAR", "🟩🟨🟨⬜⬜"},
	}
	for _, tt := range tests {
		t.Run(tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTiles(guessOf(tt.solution, tt.guess), len(tt.solution)))
		})
	}
}

func TestRenderSession(t *testing.T) {
	rules := game.DefaultRules()
	view := &service.SessionView{
		Session:        &model.GameSession{RemainingLives: 5, Status: model.StatusInProgress},
		WordLength:     5,
		Guesses:        []*model.Guess{guessOf("CRANE", "SLATE")},
		UsedHints:      []model.UsedHint{{TypeCode: "DEFINITION", DisplayName: "Definition", Text: "A bird."}},
		HintsUsedToday: 1,
		HintTypes:      []*model.HintType{{Code: "DEFINITION"}, {Code: "FUN_FACT"}},
	}

	out := RenderSession(view, rules)
	assert.Contains(t, out, "5 letters")
	assert.Contains(t, out, "⬜⬜🟩⬜🟩 SLATE")
	assert.Contains(t, out, "❤️ 5")
	assert.Contains(t, out, "1/6 guesses")
	assert.Contains(t, out, "1/2 hints")
	assert.Contains(t, out, "💡 Definition: A bird.")
	assert.Contains(t, out, "Hints: definition, fun_fact")
	assert.NotContains(t, out, "CRANE")

	view.Session.Status = model.StatusLost
	view.Solution = "CRANE"
	out = RenderSession(view, rules)
	assert.Contains(t, out, "The word was CRANE")
	assert.NotContains(t, out, "Hints:")
}

func TestRenderGuessResult(t *testing.T) {
	res := &service.GuessResult{
		Guess:      guessOf("CRANE", "CRANE"),
		Session:    &model.GameSession{RemainingLives: 4, Status: model.StatusWon},
		WordLength: 5,
		GuessCount: 3,
		Solution:   "CRANE",
		Reply:      "Brilliant!",
	}
	out := RenderGuessResult(res, 6)
	assert.Contains(t, out, "🟩🟩🟩🟩🟩 CRANE")
	assert.Contains(t, out, "Solved in 3")
	assert.True(t, strings.HasSuffix(out, "\n\nBrilliant!"))
}

func TestRenderLeaderboard(t *testing.T) {
	assert.Contains(t, RenderLeaderboard(nil), "Nobody")

	out := RenderLeaderboard([]*model.DailyRank{
		{UserID: 1, Username: "alice", Guesses: 2},
		{UserID: 2, Guesses: 3, HintsUsed: 1},
		{UserID: 3, Username: "carol", Guesses: 4},
		{UserID: 4, Username: "dave", Guesses: 5},
	})
	assert.Contains(t, out, "🥇 alice: 2 guesses, 0 hints")
	assert.Contains(t, out, "🥈 User2: 3 guesses, 1 hints")
	assert.Contains(t, out, "🥉 carol")
	assert.Contains(t, out, "4. dave")
}

func TestRenderHintTypes(t *testing.T) {
	assert.Contains(t, RenderHintTypes(nil), "No hint types")

	out := RenderHintTypes([]*model.HintType{
		{Code: "DEFINITION", DisplayName: "Definition", State: model.Active{}},
		{Code: "OLD", DisplayName: "Old", State: model.Deleted{}},
	})
	assert.Contains(t, out, "✅ DEFINITION (Definition)")
	assert.Contains(t, out, "🗑 OLD (Old)")
}

func TestParseEditArgs(t *testing.T) {
	code, name := parseEditArgs([]string{"-", "Fun", "Fact"})
	assert.Nil(t, code)
	require.NotNil(t, name)
	assert.Equal(t, "Fun Fact", *name)

	code, name = parseEditArgs([]string{"trivia"})
	require.NotNil(t, code)
	assert.Equal(t, "trivia", *code)
	assert.Nil(t, name)

	code, name = parseEditArgs([]string{"-"})
	assert.Nil(t, code)
	assert.Nil(t, name)
}

func TestContext(t *testing.T) {
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)

	c := b.NewContext(tele.Update{Message: &tele.Message{Text: "/play"}})
	assert.Equal(t, context.Background(), Context(c))

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	SetContext(c, ctx)
	assert.Equal(t, "v", Context(c).Value(key{}))
}
