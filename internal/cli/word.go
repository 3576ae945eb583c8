package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newWordCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Word of the day commands",
	}

	var date string
	ensure := &cobra.Command{
		Use:   "today",
		Short: "Show the word of the day, creating it if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			d, err := opts.parseDate(date)
			if err != nil {
				return err
			}
			word, err := opts.app.Words.EnsureWord(ctx, d)
			if err != nil {
				return err
			}
			opts.out(cmd).Print(newWordView(word))
			return nil
		},
	}
	ensure.Flags().StringVar(&date, "date", "", "Game date as YYYY-MM-DD (default: today)")

	cmd.AddCommand(ensure)
	return cmd
}

func newHintsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hints",
		Short: "Hint text commands",
	}

	var date string
	populate := &cobra.Command{
		Use:   "populate",
		Short: "Generate missing hint texts for a word of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			d, err := opts.parseDate(date)
			if err != nil {
				return err
			}
			word, err := opts.app.Words.EnsureWord(ctx, d)
			if err != nil {
				return err
			}
			created, err := opts.app.Hints.PopulateHints(ctx, word)
			if err != nil {
				return err
			}
			opts.out(cmd).Print(PopulateResult{Date: word.GeneratedDate.Format(time.DateOnly), Created: created})
			return nil
		},
	}
	populate.Flags().StringVar(&date, "date", "", "Game date as YYYY-MM-DD (default: today)")

	cmd.AddCommand(populate)
	return cmd
}

func newLeaderboardCmd(opts *rootOptions) *cobra.Command {
	var (
		date  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the leaderboard of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			d, err := opts.parseDate(date)
			if err != nil {
				return err
			}
			ranks, err := opts.app.Ranking.LeaderboardForDate(ctx, d, limit)
			if err != nil {
				return err
			}
			opts.out(cmd).Print(newRankViews(ranks))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Game date as YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of rows (default: 10)")

	return cmd
}
