// Package textgen produces the natural-language parts of the game: the secret
// word, hint texts and replies to guesses.
package textgen

import (
	"context"
	"errors"

	"daily-word-bot/internal/model"
)

// ErrEmptyResponse is returned when a backend answers with no usable text.
var ErrEmptyResponse = errors.New("text generator returned an empty response")

// WordGenerator produces a candidate secret word. The result may still be
// invalid and must be validated by the caller.
type WordGenerator interface {
	GenerateWord(ctx context.Context) (string, error)
}

// HintGenerator produces the hint text of one hint type for a word.
type HintGenerator interface {
	GenerateHintText(ctx context.Context, word, hintTypeCode string) (string, error)
}

// ReplyInput describes a scored guess for reply generation.
type ReplyInput struct {
	GuessedWord    string
	Solution       string
	Status         model.GameStatus
	RemainingLives int
	HintsUsed      int
}

// ReplyGenerator produces a short reply to a guess.
type ReplyGenerator interface {
	GenerateGuessReply(ctx context.Context, in ReplyInput) (string, error)
}

// Generator is a complete text backend.
type Generator interface {
	Name() string
	WordGenerator
	HintGenerator
	ReplyGenerator
}

// FallbackSource draws words from a static list. It never calls out.
type FallbackSource interface {
	RandomWord(maxLen int) (string, error)
}
