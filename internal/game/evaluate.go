// Package game holds the rules of the daily word game: guess scoring,
// word validation, the session state machine and its typed failures.
// Everything here is pure and free of I/O.
package game

import (
	"strings"
	"unicode/utf8"
)

// Result is the score of one guess against the solution.
type Result struct {
	Correct   []int // positions with the right letter in the right place
	Misplaced []int // positions whose letter occurs elsewhere in the solution
}

// Solved reports whether every position of a solution of length n is correct.
func (r Result) Solved(n int) bool {
	return n > 0 && len(r.Correct) == n
}

// Evaluate scores guess against solution, case-insensitively.
//
// Exact matches consume their letter first; a letter is then reported as
// misplaced only while the solution still has unconsumed occurrences of it.
// Positions beyond the shorter of the two strings are never scored.
func Evaluate(solution, guess string) Result {
	s := strings.ToUpper(solution)
	g := strings.ToUpper(guess)
	n := min(len(s), len(g))

	var freq [26]int
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			freq[c-'A']++
		}
	}

	res := Result{Correct: []int{}, Misplaced: []int{}}
	exact := make([]bool, n)
	for i := 0; i < n; i++ {
		c := g[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		if c == s[i] {
			exact[i] = true
			freq[c-'A']--
			res.Correct = append(res.Correct, i)
		}
	}

	for i := 0; i < n; i++ {
		if exact[i] {
			continue
		}
		c := g[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		if freq[c-'A'] > 0 {
			freq[c-'A']--
			res.Misplaced = append(res.Misplaced, i)
		}
	}

	return res
}

// NormalizeWord trims and uppercases a word.
func NormalizeWord(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// ValidateWord checks that word is non-empty, at most maxLen characters and
// made of ASCII letters only.
func ValidateWord(word string, maxLen int) error {
	w := strings.TrimSpace(word)
	if w == "" {
		return Errorf(KindInvalidWord, "word must not be empty")
	}
	if maxLen > 0 && utf8.RuneCountInString(w) > maxLen {
		return Errorf(KindInvalidWord, "word must be at most %d letters", maxLen)
	}
	for _, r := range w {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return Errorf(KindInvalidWord, "word must contain letters only")
		}
	}
	return nil
}
