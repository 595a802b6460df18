package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/store"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		a, err := openApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		events, err := a.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(a.out, theme.Hint.Render("No generation requests recorded yet."))
			return nil
		}

		fmt.Fprintf(a.out, "%-5s  %-14s  %-26s  %-28s  %6s  %6s  %7s  %s\n",
			"ID", "When", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(a.out, strings.Repeat("─", 106))
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := theme.Correct.Render("✓")
			if !e.Success {
				ok = theme.Failure.Render("✗")
			}
			fmt.Fprintf(a.out, "%-5d  %-14s  %-26s  %-28s  %6d  %6d  %7d  %s\n",
				e.ID,
				clip(humanize.Time(e.Timestamp), 14),
				clip(e.Purpose, 26),
				clip(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		a, err := openApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Fprintln(a.out, theme.Field("ID", strconv.Itoa(e.ID)))
		fmt.Fprintln(a.out, theme.Field("Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")))
		fmt.Fprintln(a.out, theme.Field("Provider", e.Provider))
		fmt.Fprintln(a.out, theme.Field("Model", e.Model))
		fmt.Fprintln(a.out, theme.Field("Purpose", e.Purpose))
		fmt.Fprintln(a.out, theme.Field("Tokens", fmt.Sprintf("%s in / %s out", humanize.Comma(int64(e.InputTokens)), humanize.Comma(int64(e.OutputTokens)))))
		fmt.Fprintln(a.out, theme.Field("Latency", fmt.Sprintf("%dms", e.LatencyMs)))
		fmt.Fprintln(a.out, theme.Field("Success", strconv.FormatBool(e.Success)))
		if e.ErrorMessage != "" {
			fmt.Fprintln(a.out, theme.Field("Error", theme.Failure.Render(e.ErrorMessage)))
		}

		printBody(a.out, "REQUEST", e.RequestBody)
		printBody(a.out, "RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		byPurpose, err := a.store.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(a.out, theme.Hint.Render("No usage recorded yet."))
			return nil
		}
		byModel, err := a.store.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		printUsage(a.out, "Usage by purpose", byPurpose, func(s store.LLMUsageStats) string { return s.Purpose })
		fmt.Fprintln(a.out)
		printUsage(a.out, "Usage by model", byModel, func(s store.LLMUsageStats) string { return s.Model })
		return nil
	},
}

func printUsage(w io.Writer, title string, stats []store.LLMUsageStats, key func(store.LLMUsageStats) string) {
	rule := strings.Repeat("─", 80)
	fmt.Fprintln(w, theme.Heading.Render(title))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-30s  %6s  %10s  %10s  %10s  %6s\n", "", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, rule)

	var calls, in, out int
	for _, s := range stats {
		fmt.Fprintf(w, "%-30s  %6d  %10s  %10s  %10s  %6d\n",
			clip(key(s), 30), s.Calls,
			humanize.Comma(int64(s.InputTokens)),
			humanize.Comma(int64(s.OutputTokens)),
			humanize.Comma(int64(s.InputTokens+s.OutputTokens)),
			s.AvgLatencyMs)
		calls += s.Calls
		in += s.InputTokens
		out += s.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-30s  %6d  %10s  %10s  %10s\n", "TOTAL", calls,
		humanize.Comma(int64(in)), humanize.Comma(int64(out)), humanize.Comma(int64(in+out)))
}

func printBody(w io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, theme.Heading.Render(title))
	fmt.Fprintln(w, rule)
	if body == "" {
		body = theme.Hint.Render("(not captured)")
	}
	fmt.Fprintln(w, body)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. notes, question-bank, diagram-image)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
