package textgen

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
)

func TestDefaultWords_AllValid(t *testing.T) {
	words := DefaultWords()
	require.NotEmpty(t, words)
	for _, w := range words {
		assert.NoError(t, game.ValidateWord(w, 5), w)
	}
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\ncrane\n\n  speed  \n"), 0o600))

	words, err := LoadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "speed"}, words)

	_, err = LoadWordList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLocalGenerator_RandomWordRespectsLimit(t *testing.T) {
	g := NewLocal([]string{"cat", "crane", "elephant", "n0pe", ""}, 5)

	rapid.Check(t, func(t *rapid.T) {
		maxLen := rapid.IntRange(3, 8).Draw(t, "maxLen")
		w, err := g.RandomWord(maxLen)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := game.ValidateWord(w, maxLen); err != nil {
			t.Fatalf("drew invalid word %q for max %d: %v", w, maxLen, err)
		}
		if w != game.NormalizeWord(w) {
			t.Fatalf("word %q is not normalised", w)
		}
	})
}

func TestLocalGenerator_Exhausted(t *testing.T) {
	_, err := NewLocal(nil, 5).RandomWord(5)
	assert.ErrorIs(t, err, ErrFallbackExhausted)

	_, err = NewLocal([]string{"elephant", "c4t"}, 5).GenerateWord(context.Background())
	assert.ErrorIs(t, err, ErrFallbackExhausted)
}

func TestLocalGenerator_Deterministic(t *testing.T) {
	words := DefaultWords()
	a := NewLocal(words, 5, WithRand(rand.New(rand.NewPCG(1, 2))))
	b := NewLocal(words, 5, WithRand(rand.New(rand.NewPCG(1, 2))))

	for i := 0; i < 5; i++ {
		wa, err := a.GenerateWord(context.Background())
		require.NoError(t, err)
		wb, err := b.GenerateWord(context.Background())
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
	}
}

func TestLocalGenerator_HintText(t *testing.T) {
	g := NewLocal(nil, 5)
	ctx := context.Background()

	tests := []struct {
		code string
		want string
	}{
		{"FIRST_LETTER", "The word starts with C."},
		{"last_letter", "The word ends with E."},
		{"LENGTH", "The word has 5 letters."},
		{"VOWELS", "The word has 2 vowel(s); the first one is at position 3."},
		{"SYNONYM", "The word starts with C."},
		{"FUN_FACT", "The word ends with E."},
		{"DEFINITION", "The word has 5 letters and 5 distinct ones."},
		{"RHYME", "The word starts with C and ends with E."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			text, err := g.GenerateHintText(ctx, "crane", tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}

	_, err := g.GenerateHintText(ctx, "  ", "LENGTH")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCannedReply(t *testing.T) {
	assert.Equal(t, "CRANE is right! Well played.",
		CannedReply(ReplyInput{Solution: "CRANE", Status: model.StatusWon}))
	assert.Equal(t, "Out of luck this time. The word was CRANE.",
		CannedReply(ReplyInput{Solution: "CRANE", Status: model.StatusLost}))
	assert.Equal(t, "Not quite. 3 lives left.",
		CannedReply(ReplyInput{Status: model.StatusInProgress, RemainingLives: 3}))
	assert.Contains(t,
		CannedReply(ReplyInput{Status: model.StatusInProgress, RemainingLives: 1}), "last life")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(nil))

	local := NewLocal(DefaultWords(), 5)
	require.NoError(t, r.Register(local))
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []string{ProviderLocal}, r.Names())

	g, err := r.Lookup(ProviderLocal)
	require.NoError(t, err)
	assert.Same(t, local, g)

	_, err = r.Lookup(ProviderOpenAI)
	assert.ErrorContains(t, err, "unknown text generator provider")
}

func TestPromptsRender(t *testing.T) {
	for _, name := range []string{promptSystem, promptWord, promptHint, promptReply} {
		assert.NotNil(t, prompts.Lookup(name), name)
	}

	text, err := render(promptReply, ReplyInput{GuessedWord: "CRANE", Solution: "CRANE", Status: model.StatusWon})
	require.NoError(t, err)
	assert.Contains(t, text, "Congratulate")

	text, err = render(promptReply, ReplyInput{GuessedWord: "FOLKS", Solution: "CRANE", Status: model.StatusLost})
	require.NoError(t, err)
	assert.Contains(t, text, "reveal the word")
}
