package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"daily-word-bot/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// WordView is the printed form of a word of the day.
type WordView struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Word string `json:"word"`
}

// HintTypeView is the printed form of a hint type.
type HintTypeView struct {
	Code        string     `json:"code"`
	DisplayName string     `json:"display_name"`
	Active      bool       `json:"active"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// RankView is one leaderboard row.
type RankView struct {
	Position  int    `json:"position"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Guesses   int    `json:"guesses"`
	HintsUsed int    `json:"hints_used"`
}

// PopulateResult reports a hint population run.
type PopulateResult struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
}

func newWordView(w *model.WordOfDay) WordView {
	return WordView{ID: w.ID, Date: w.GeneratedDate.Format(time.DateOnly), Word: w.SolutionWord}
}

func newHintTypeView(ht *model.HintType) HintTypeView {
	return HintTypeView{
		Code:        ht.Code,
		DisplayName: ht.DisplayName,
		Active:      ht.IsActive(),
		DeletedAt:   ht.DeletedAt(),
	}
}

func newRankViews(ranks []*model.DailyRank) []RankView {
	views := make([]RankView, len(ranks))
	for i, r := range ranks {
		views[i] = RankView{
			Position:  i + 1,
			UserID:    r.UserID,
			Username:  r.Username,
			Guesses:   r.Guesses,
			HintsUsed: r.HintsUsed,
		}
	}
	return views
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case WordView:
		fmt.Fprintf(o.w, "%s: %s (id %d)\n", v.Date, v.Word, v.ID)
	case HintTypeView:
		o.printHintType(v)
	case []HintTypeView:
		if len(v) == 0 {
			fmt.Fprintln(o.w, "No hint types")
		}
		for _, ht := range v {
			o.printHintType(ht)
		}
	case []RankView:
		if len(v) == 0 {
			fmt.Fprintln(o.w, "Nobody has solved the word yet")
		}
		for _, r := range v {
			name := r.Username
			if name == "" {
				name = fmt.Sprintf("User%d", r.UserID)
			}
			fmt.Fprintf(o.w, "%d. %s: %d guesses, %d hints\n", r.Position, name, r.Guesses, r.HintsUsed)
		}
	case PopulateResult:
		fmt.Fprintf(o.w, "%s: %d hint texts created\n", v.Date, v.Created)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printHintType(ht HintTypeView) {
	state := "active"
	if !ht.Active {
		state = "deleted"
		if ht.DeletedAt != nil {
			state += " " + ht.DeletedAt.Format(time.RFC3339)
		}
	}
	fmt.Fprintf(o.w, "%-16s %-24s %s\n", ht.Code, ht.DisplayName, state)
}
