package textgen

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
)

// ProviderLocal is the registry name of the offline backend.
const ProviderLocal = "local"

// ErrFallbackExhausted is returned when the word list has no usable word.
var ErrFallbackExhausted = errors.New("no usable words in the local word list")

//go:embed words.txt
var embeddedWords string

// DefaultWords returns the embedded word list.
func DefaultWords() []string {
	return parseWords(embeddedWords)
}

// LoadWordList reads a word list file: one word per line, '#' starts a comment line.
func LoadWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return parseWords(string(data)), nil
}

func parseWords(s string) []string {
	var words []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}

// LocalGenerator works without any network access. It draws words from a
// static list, derives hints from the spelling of the word and answers
// guesses with canned replies.
type LocalGenerator struct {
	words  []string
	maxLen int

	mu  sync.Mutex
	rnd *rand.Rand
}

var (
	_ Generator      = (*LocalGenerator)(nil)
	_ FallbackSource = (*LocalGenerator)(nil)
)

// LocalOption configures a LocalGenerator.
type LocalOption func(*LocalGenerator)

// WithRand makes word selection deterministic.
func WithRand(r *rand.Rand) LocalOption {
	return func(g *LocalGenerator) { g.rnd = r }
}

// NewLocal creates a LocalGenerator over words. GenerateWord only returns
// words of at most maxLen letters.
func NewLocal(words []string, maxLen int, opts ...LocalOption) *LocalGenerator {
	g := &LocalGenerator{words: words, maxLen: maxLen}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the provider name.
func (g *LocalGenerator) Name() string { return ProviderLocal }

// GenerateWord draws a random word from the list.
func (g *LocalGenerator) GenerateWord(ctx context.Context) (string, error) {
	return g.RandomWord(g.maxLen)
}

// RandomWord draws a random valid word of at most maxLen letters.
func (g *LocalGenerator) RandomWord(maxLen int) (string, error) {
	candidates := make([]string, 0, len(g.words))
	for _, w := range g.words {
		if game.ValidateWord(w, maxLen) == nil {
			candidates = append(candidates, game.NormalizeWord(w))
		}
	}
	if len(candidates) == 0 {
		return "", ErrFallbackExhausted
	}
	return candidates[g.intN(len(candidates))], nil
}

func (g *LocalGenerator) intN(n int) int {
	if g.rnd == nil {
		return rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

// GenerateHintText builds a hint from the spelling of word. Unknown hint
// types get a first-and-last-letter hint.
func (g *LocalGenerator) GenerateHintText(ctx context.Context, word, hintTypeCode string) (string, error) {
	w := game.NormalizeWord(word)
	if w == "" {
		return "", ErrEmptyResponse
	}

	// The default catalog types map onto spelling hints so that each of them
	// reveals something different offline.
	switch strings.ToUpper(hintTypeCode) {
	case "FIRST_LETTER", "SYNONYM":
		return fmt.Sprintf("The word starts with %c.", w[0]), nil
	case "LAST_LETTER", "FUN_FACT":
		return fmt.Sprintf("The word ends with %c.", w[len(w)-1]), nil
	case "LENGTH":
		return fmt.Sprintf("The word has %d letters.", len(w)), nil
	case "DEFINITION":
		return fmt.Sprintf("The word has %d letters and %d distinct ones.", len(w), distinctLetters(w)), nil
	case "VOWELS":
		n := strings.IndexFunc(w, isVowel)
		count := 0
		for _, r := range w {
			if isVowel(r) {
				count++
			}
		}
		if n < 0 {
			return "The word has no vowels.", nil
		}
		return fmt.Sprintf("The word has %d vowel(s); the first one is at position %d.", count, n+1), nil
	default:
		return fmt.Sprintf("The word starts with %c and ends with %c.", w[0], w[len(w)-1]), nil
	}
}

func distinctLetters(w string) int {
	seen := make(map[rune]struct{}, len(w))
	for _, r := range w {
		seen[r] = struct{}{}
	}
	return len(seen)
}

func isVowel(r rune) bool {
	return strings.ContainsRune("AEIOU", r)
}

// GenerateGuessReply returns a canned reply for the guess outcome.
func (g *LocalGenerator) GenerateGuessReply(ctx context.Context, in ReplyInput) (string, error) {
	return CannedReply(in), nil
}

// CannedReply is the fixed reply used when no generated reply is available.
func CannedReply(in ReplyInput) string {
	switch in.Status {
	case model.StatusWon:
		return fmt.Sprintf("%s is right! Well played.", in.Solution)
	case model.StatusLost:
		return fmt.Sprintf("Out of luck this time. The word was %s.", in.Solution)
	default:
		if in.RemainingLives == 1 {
			return "Not quite. Careful, this is your last life."
		}
		return fmt.Sprintf("Not quite. %d lives left.", in.RemainingLives)
	}
}
