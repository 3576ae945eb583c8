// Package model defines the data models for the daily word bot.
package model

import "time"

// Base carries the audit timestamps shared by persisted entities.
type Base struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// User represents a Telegram user registered with the bot.
type User struct {
	TelegramID int64  `db:"telegram_id"`
	Username   string `db:"username"`
	Base
}

// WordOfDay is the secret word shared by all players for one calendar date.
// GeneratedDate is always midnight UTC of that date.
type WordOfDay struct {
	ID            int64     `db:"id"`
	SolutionWord  string    `db:"solution_word"`
	GeneratedDate time.Time `db:"generated_date"`
	Base
}

// WordHint is the pre-generated hint text for a day's word and a hint type.
type WordHint struct {
	ID          int64  `db:"id"`
	WordOfDayID int64  `db:"word_of_day_id"`
	HintTypeID  int64  `db:"hint_type_id"`
	Text        string `db:"text"`
	Base
}

// GameStatus is the state of a game session.
type GameStatus string

// Game session states. WON and LOST are terminal.
const (
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusWon        GameStatus = "WON"
	StatusLost       GameStatus = "LOST"
)

// IsTerminal reports whether no further guesses or hints are accepted.
func (s GameStatus) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

// Valid reports whether s is one of the known states.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusInProgress, StatusWon, StatusLost:
		return true
	}
	return false
}

// GameSession is one user's attempt at the word of a given date.
type GameSession struct {
	ID             int64      `db:"id"`
	UserID         int64      `db:"user_id"`
	GameDate       time.Time  `db:"game_date"`
	RemainingLives int        `db:"remaining_lives"`
	Status         GameStatus `db:"status"`
	WordOfDayID    int64      `db:"word_of_day_id"`
	Base
}

// Guess is an append-only record of one scored attempt.
type Guess struct {
	ID               int64     `db:"id"`
	GameSessionID    int64     `db:"game_session_id"`
	GuessedWord      string    `db:"guessed_word"`
	CorrectPositions []int     `db:"correct_positions"`
	MissedPositions  []int     `db:"missed_positions"`
	CreatedAt        time.Time `db:"created_at"`
}

// Hint is the usage record of a hint type within a session.
type Hint struct {
	ID            int64     `db:"id"`
	GameSessionID int64     `db:"game_session_id"`
	WordHintID    int64     `db:"word_hint_id"`
	HintTypeID    int64     `db:"hint_type_id"`
	UsedAt        time.Time `db:"used_at"`
}

// UsedHint is a hint already revealed in a session, joined with its type and text.
type UsedHint struct {
	TypeCode    string
	DisplayName string
	Text        string
	UsedAt      time.Time
}

// DailyRank is one row of the daily leaderboard.
type DailyRank struct {
	UserID         int64     `db:"user_id"`
	Username       string    `db:"username"`
	Guesses        int       `db:"guesses"`
	HintsUsed      int       `db:"hints_used"`
	RemainingLives int       `db:"remaining_lives"`
	FinishedAt     time.Time `db:"finished_at"`
}
