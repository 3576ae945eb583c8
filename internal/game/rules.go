package game

import "fmt"

// Rules is the immutable configuration of the game engine.
type Rules struct {
	MaxLives              int
	LifeCostPerWrongGuess int
	LifeCostPerHint       int
	MinLivesToUseHint     int
	MaxHintsPerDay        int
	MaxGuessCount         int
	MaxWordLength         int
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		MaxLives:              6,
		LifeCostPerWrongGuess: 1,
		LifeCostPerHint:       1,
		MinLivesToUseHint:     2,
		MaxHintsPerDay:        2,
		MaxGuessCount:         6,
		MaxWordLength:         5,
	}
}

// Validate rejects rule sets the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.MaxLives <= 0:
		return fmt.Errorf("max lives must be positive, got %d", r.MaxLives)
	case r.LifeCostPerWrongGuess <= 0:
		return fmt.Errorf("life cost per wrong guess must be positive, got %d", r.LifeCostPerWrongGuess)
	case r.LifeCostPerHint < 0:
		return fmt.Errorf("life cost per hint must not be negative, got %d", r.LifeCostPerHint)
	case r.MinLivesToUseHint < 0:
		return fmt.Errorf("min lives to use hint must not be negative, got %d", r.MinLivesToUseHint)
	case r.MaxHintsPerDay < 0:
		return fmt.Errorf("max hints per day must not be negative, got %d", r.MaxHintsPerDay)
	case r.MaxGuessCount <= 0:
		return fmt.Errorf("max guess count must be positive, got %d", r.MaxGuessCount)
	case r.MaxWordLength <= 0:
		return fmt.Errorf("max word length must be positive, got %d", r.MaxWordLength)
	}
	return nil
}
