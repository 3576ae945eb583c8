package game

import "daily-word-bot/internal/model"

// State is the mutable part of a game session.
type State struct {
	RemainingLives int
	Status         model.GameStatus
}

// NewState returns the state of a freshly opened session.
func (r Rules) NewState() State {
	return State{RemainingLives: r.MaxLives, Status: model.StatusInProgress}
}

// CanGuess rejects guesses on a concluded session.
func (r Rules) CanGuess(s State) error {
	if s.Status.IsTerminal() {
		return Errorf(KindCanNotSubmitGuess, "today's game is already %s", s.Status)
	}
	return nil
}

// ApplyGuess returns the state after a scored guess. guessCount includes the
// guess being applied.
//
// A guess wins only when it has the solution's length and every position is
// correct. Any other guess costs lives, clamped at zero, and loses the game
// once lives run out or the guess limit is reached.
func (r Rules) ApplyGuess(s State, solution, guess string, res Result, guessCount int) State {
	if s.Status.IsTerminal() {
		return s
	}
	n := len(solution)
	if len(guess) == n && res.Solved(n) {
		return State{RemainingLives: s.RemainingLives, Status: model.StatusWon}
	}

	lives := max(0, s.RemainingLives-r.LifeCostPerWrongGuess)
	status := model.StatusInProgress
	if lives <= 0 || guessCount >= r.MaxGuessCount {
		status = model.StatusLost
	}
	return State{RemainingLives: lives, Status: status}
}

// CanUseHint checks the session-level hint gates: the session must be in
// progress, lives must cover both the minimum threshold and the hint's cost,
// and the daily quota must not be spent.
func (r Rules) CanUseHint(s State, hintsUsedToday int) error {
	if s.Status.IsTerminal() {
		return Errorf(KindCanNotUseHint, "today's game is already %s", s.Status)
	}
	if s.RemainingLives < r.MinLivesToUseHint || s.RemainingLives < r.LifeCostPerHint {
		return Errorf(KindCanNotUseHint, "not enough lives to use a hint (%d left, need %d)",
			s.RemainingLives, max(r.MinLivesToUseHint, r.LifeCostPerHint))
	}
	if hintsUsedToday >= r.MaxHintsPerDay {
		return Errorf(KindCanNotUseHint, "daily hint limit of %d reached", r.MaxHintsPerDay)
	}
	return nil
}

// ApplyHint deducts the hint cost. It fails instead of going below zero lives.
func (r Rules) ApplyHint(s State) (State, error) {
	lives := s.RemainingLives - r.LifeCostPerHint
	if lives < 0 {
		return s, Errorf(KindCanNotUseHint, "not enough lives to use a hint")
	}
	return State{RemainingLives: lives, Status: s.Status}, nil
}
