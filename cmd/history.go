package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent point awards",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd, appOptions{profile: true})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		events, err := a.ledger.History(ctx, limit)
		if err != nil {
			return fmt.Errorf("query awards: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(a.out, "No points earned yet. Try `betopper notes <topic>`.")
			return nil
		}

		fmt.Fprintf(a.out, "%-16s  %6s  %-24s  %s\n", "When", "Points", "Reason", "Total")
		fmt.Fprintln(a.out, strings.Repeat("─", 64))
		for _, e := range events {
			fmt.Fprintf(a.out, "%-16s  %6s  %-24s  %s\n",
				humanize.Time(e.Timestamp),
				fmt.Sprintf("+%d", e.Amount),
				e.Reason,
				humanize.Comma(int64(e.PointsAfter)))
		}

		totals, err := a.ledger.Breakdown(ctx)
		if err != nil {
			return fmt.Errorf("query totals: %w", err)
		}
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, theme.Heading.Render("Points by activity"))
		for _, t := range totals {
			fmt.Fprintf(a.out, "  %-24s  %4dx  %s\n", t.Reason, t.Count, theme.Points(t.Points))
		}

		if all, _ := cmd.Flags().GetBool("table"); all {
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, theme.Heading.Render("How to earn points"))
			for _, e := range ledger.AwardTable() {
				fmt.Fprintf(a.out, "  %-30s  +%d\n", e.Action, e.Award.Amount)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of awards to show")
	historyCmd.Flags().Bool("table", false, "Also show the award table")
}
