package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List boards, subjects and suggested topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		classFlag, _ := cmd.Flags().GetString("class")
		class, err := curriculum.ParseClassLevel(classFlag)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, theme.Heading.Render("Boards"))
		fmt.Fprintln(out, "  "+strings.Join(curriculum.Boards(), ", "))

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Heading.Render("Revision topics"))
		for _, s := range curriculum.Subjects() {
			fmt.Fprintf(out, "  %s\n", theme.Title.Render(s))
			fmt.Fprintf(out, "    %s\n", strings.Join(curriculum.SuggestedTopics(s), ", "))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Heading.Render(fmt.Sprintf("Diagrams (Class %s)", class)))
		fmt.Fprintln(out, "  "+strings.Join(curriculum.SuggestedDiagrams(class), ", "))

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Heading.Render(fmt.Sprintf("Lab activities (Class %s)", class)))
		fmt.Fprintln(out, "  "+strings.Join(curriculum.SuggestedActivities(class), ", "))
		return nil
	},
}

func init() {
	topicsCmd.Flags().StringP("class", "c", "10", "Class 9-12 for diagram and activity suggestions")
}
