package game

import (
	"errors"
	"fmt"
)

// Kind classifies an expected business failure of the word game.
type Kind string

// Error kinds surfaced to callers.
const (
	KindInvalidWord            Kind = "InvalidWord"
	KindWordGenerationFailed   Kind = "WordGenerationFailed"
	KindFallbackExhausted      Kind = "FallbackExhausted"
	KindUserNotFound           Kind = "UserNotFound"
	KindGameSessionNotFound    Kind = "GameSessionNotFound"
	KindWordMissing            Kind = "WordMissing"
	KindCanNotSubmitGuess      Kind = "CanNotSubmitGuess"
	KindCanNotUseHint          Kind = "CanNotUseHint"
	KindHintTypeNotFound       Kind = "HintTypeNotFound"
	KindHintTextUnavailable    Kind = "HintTextUnavailable"
	KindHintTypeAlreadyExists  Kind = "HintTypeAlreadyExists"
	KindHintTypeAlreadyDeleted Kind = "HintTypeAlreadyDeleted"
	KindHintTypeAlreadyActive  Kind = "HintTypeAlreadyActive"
	KindInvalidHintTypeCode    Kind = "InvalidHintTypeCode"
)

// Error is a typed business failure with a human readable message.
// Two errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is reports whether target is a game error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidWord            = &Error{Kind: KindInvalidWord, Message: "invalid word"}
	ErrWordGenerationFailed   = &Error{Kind: KindWordGenerationFailed, Message: "word generation failed"}
	ErrFallbackExhausted      = &Error{Kind: KindFallbackExhausted, Message: "no fallback words available"}
	ErrUserNotFound           = &Error{Kind: KindUserNotFound, Message: "user not found"}
	ErrGameSessionNotFound    = &Error{Kind: KindGameSessionNotFound, Message: "game session not found"}
	ErrWordMissing            = &Error{Kind: KindWordMissing, Message: "word of the day is missing"}
	ErrCanNotSubmitGuess      = &Error{Kind: KindCanNotSubmitGuess, Message: "game session already ended"}
	ErrCanNotUseHint          = &Error{Kind: KindCanNotUseHint, Message: "hint can not be used"}
	ErrHintTypeNotFound       = &Error{Kind: KindHintTypeNotFound, Message: "hint type not found"}
	ErrHintTextUnavailable    = &Error{Kind: KindHintTextUnavailable, Message: "hint text unavailable"}
	ErrHintTypeAlreadyExists  = &Error{Kind: KindHintTypeAlreadyExists, Message: "hint type already exists"}
	ErrHintTypeAlreadyDeleted = &Error{Kind: KindHintTypeAlreadyDeleted, Message: "hint type is deleted"}
	ErrHintTypeAlreadyActive  = &Error{Kind: KindHintTypeAlreadyActive, Message: "hint type is already active"}
	ErrInvalidHintTypeCode    = &Error{Kind: KindInvalidHintTypeCode, Message: "invalid hint type code"}
)

// KindOf returns the kind of a game error in err's chain.
// ok is false for generic failures.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
