package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/prompts"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Generate a full-length sample question paper",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode := prompts.PaperMode(modeFlag)
		if mode != prompts.PaperModeHighYield && mode != prompts.PaperModePredicted {
			return fmt.Errorf("unknown paper mode %q (want highyield or predicted)", modeFlag)
		}
		cycle, _ := cmd.Flags().GetString("cycle")
		page, _ := cmd.Flags().GetInt("page")

		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		params, err := paramsFromFlags(cmd, a.profile, "")
		if err != nil {
			return err
		}
		paper, err := a.study.SamplePaper(cmd.Context(), params, mode, cycle)
		if err != nil {
			return a.report(err)
		}

		fmt.Fprintln(a.out, theme.Title.Render(fmt.Sprintf("%s Board | Class %s | %s", params.Board, params.Class, params.Subject)))
		fmt.Fprintln(a.out, theme.Subtitle.Render(fmt.Sprintf("Paper %s  Serial %s  Max. Marks %d  (%s)", paper.Code, paper.Serial, paper.TotalMarks, paper.Cycle)))
		fmt.Fprintln(a.out)

		if page > 0 {
			if page > len(paper.Sections) {
				return fmt.Errorf("page %d out of range 1-%d", page, len(paper.Sections))
			}
			printPage(a, page, len(paper.Sections), paper.Sections[page-1])
		} else {
			for i, s := range paper.Sections {
				printPage(a, i+1, len(paper.Sections), s)
			}
		}

		if path, _ := cmd.Flags().GetString("save"); path != "" {
			if err := os.WriteFile(path, []byte(paper.Text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(a.out, theme.Hint.Render("Saved to "+path))
		}
		return nil
	},
}

func printPage(a *app, n, total int, body string) {
	fmt.Fprintln(a.out, theme.Hint.Render(fmt.Sprintf("Page %d of %d", n, total)))
	fmt.Fprintln(a.out, theme.Page.Render(body))
}

func init() {
	addParamFlags(paperCmd, paramFlags{})
	paperCmd.Flags().StringP("mode", "m", string(prompts.PaperModeHighYield), "Paper source: highyield or predicted")
	paperCmd.Flags().String("cycle", prompts.DefaultPaperCycle, "Exam cycle label")
	paperCmd.Flags().IntP("page", "p", 0, "Show only this section page")
	paperCmd.Flags().String("save", "", "Also write the full paper to this file")
}
