package handler

import (
	"fmt"
	"slices"
	"strings"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/service"
)

const (
	tileCorrect   = "🟩"
	tileMisplaced = "🟨"
	tileMiss      = "⬜"
	separator     = "━━━━━━━━━━━━━━━"
)

// RenderTiles draws the score of a guess as one tile per position of the
// solution. Positions the guess does not reach are misses.
func RenderTiles(g *model.Guess, wordLength int) string {
	var b strings.Builder
	for i := 0; i < max(wordLength, len(g.GuessedWord)); i++ {
		switch {
		case slices.Contains(g.CorrectPositions, i):
			b.WriteString(tileCorrect)
		case slices.Contains(g.MissedPositions, i):
			b.WriteString(tileMisplaced)
		default:
			b.WriteString(tileMiss)
		}
	}
	return b.String()
}

// RenderGuessLine renders "🟩⬜🟨⬜⬜ SLATE".
func RenderGuessLine(g *model.Guess, wordLength int) string {
	return RenderTiles(g, wordLength) + " " + g.GuessedWord
}

func livesBar(lives int) string {
	return fmt.Sprintf("❤️ %d", lives)
}

// RenderSession renders the board of a session view.
func RenderSession(v *service.SessionView, rules game.Rules) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔤 Word of the day: %d letters\n", v.WordLength)
	b.WriteString(separator + "\n")
	if len(v.Guesses) == 0 {
		b.WriteString("No guesses yet. Use /guess <word>\n")
	}
	for _, g := range v.Guesses {
		b.WriteString(RenderGuessLine(g, v.WordLength) + "\n")
	}
	b.WriteString(separator + "\n")

	fmt.Fprintf(&b, "%s   🎯 %d/%d guesses   💡 %d/%d hints\n",
		livesBar(v.Session.RemainingLives), len(v.Guesses), rules.MaxGuessCount,
		v.HintsUsedToday, rules.MaxHintsPerDay)

	for _, h := range v.UsedHints {
		fmt.Fprintf(&b, "💡 %s: %s\n", h.DisplayName, h.Text)
	}

	switch v.Session.Status {
	case model.StatusWon:
		fmt.Fprintf(&b, "🎉 Solved! The word was %s.", v.Solution)
	case model.StatusLost:
		fmt.Fprintf(&b, "💀 Game over. The word was %s.", v.Solution)
	default:
		if len(v.HintTypes) > 0 {
			b.WriteString("Hints: " + hintCodes(v.HintTypes))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderGuessResult renders the answer to /guess.
func RenderGuessResult(r *service.GuessResult, maxGuesses int) string {
	var b strings.Builder
	b.WriteString(RenderGuessLine(r.Guess, r.WordLength) + "\n")
	fmt.Fprintf(&b, "%s   🎯 %d/%d\n", livesBar(r.Session.RemainingLives), r.GuessCount, maxGuesses)
	switch r.Session.Status {
	case model.StatusWon:
		fmt.Fprintf(&b, "🎉 Solved in %d!\n", r.GuessCount)
	case model.StatusLost:
		fmt.Fprintf(&b, "💀 Game over. The word was %s.\n", r.Solution)
	}
	if r.Reply != "" {
		b.WriteString("\n" + r.Reply)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderHint renders the answer to /hint.
func RenderHint(r *service.HintResult) string {
	return fmt.Sprintf("💡 %s: %s\n%s", r.HintType.DisplayName, r.Text, livesBar(r.RemainingLives))
}

// RenderLeaderboard renders the daily leaderboard.
func RenderLeaderboard(ranks []*model.DailyRank) string {
	if len(ranks) == 0 {
		return "📊 Nobody has solved today's word yet"
	}

	var b strings.Builder
	b.WriteString("🏆 Today's top solvers\n")
	b.WriteString(separator + "\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, r := range ranks {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		name := r.Username
		if name == "" {
			name = fmt.Sprintf("User%d", r.UserID)
		}
		fmt.Fprintf(&b, "%s %s: %d guesses, %d hints\n", rank, name, r.Guesses, r.HintsUsed)
	}

	b.WriteString(separator)
	return b.String()
}

// RenderHintTypes lists hint types, marking deleted ones.
func RenderHintTypes(types []*model.HintType) string {
	if len(types) == 0 {
		return "📭 No hint types"
	}
	var b strings.Builder
	b.WriteString("📚 Hint types\n")
	b.WriteString(separator + "\n")
	for _, ht := range types {
		state := "✅"
		if !ht.IsActive() {
			state = "🗑"
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", state, ht.Code, ht.DisplayName)
	}
	b.WriteString(separator)
	return b.String()
}

func hintCodes(types []*model.HintType) string {
	codes := make([]string, 0, len(types))
	for _, ht := range types {
		codes = append(codes, strings.ToLower(ht.Code))
	}
	return strings.Join(codes, ", ")
}
