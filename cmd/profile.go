package cmd

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Create your learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		classFlag, _ := cmd.Flags().GetString("class")
		board, _ := cmd.Flags().GetString("board")
		goal, _ := cmd.Flags().GetString("goal")
		avatar, _ := cmd.Flags().GetInt("avatar")

		class, err := curriculum.ParseClassLevel(classFlag)
		if err != nil {
			return err
		}
		if avatar == 0 {
			avatar = rand.IntN(ledger.AvatarCount) + 1
		}

		a, err := openApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.ledger.Enroll(cmd.Context(), ledger.Details{
			Name: name, Class: class, Board: board, Goal: goal,
		}, avatar)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, theme.Title.Render(fmt.Sprintf("Welcome, %s!", p.Name)))
		printProfile(a, p)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		changed := false
		for _, f := range []string{"name", "class", "board", "goal"} {
			changed = changed || cmd.Flags().Changed(f)
		}
		if !changed {
			return showProfile(cmd)
		}

		a, err := openApp(cmd, appOptions{profile: true})
		if err != nil {
			return err
		}
		defer a.Close()

		d := ledger.Details{Name: a.profile.Name, Class: a.profile.Class, Board: a.profile.Board, Goal: a.profile.Goal}
		if cmd.Flags().Changed("name") {
			d.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("class") {
			s, _ := cmd.Flags().GetString("class")
			if d.Class, err = curriculum.ParseClassLevel(s); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("board") {
			d.Board, _ = cmd.Flags().GetString("board")
		}
		if cmd.Flags().Changed("goal") {
			d.Goal, _ = cmd.Flags().GetString("goal")
		}

		p, err := a.ledger.Update(cmd.Context(), d)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, theme.Correct.Render("Profile updated."))
		printProfile(a, p)
		return nil
	},
}

// showProfile prints the profile after the session-start transition.
func showProfile(cmd *cobra.Command) error {
	a, err := openApp(cmd, appOptions{profile: true})
	if err != nil {
		return err
	}
	defer a.Close()
	printProfile(a, a.profile)
	return nil
}

func printProfile(a *app, p ledger.Profile) {
	level := ledger.Level(p.Points)
	progress := ledger.LevelProgress(p.Points)

	goal := p.Goal
	if goal == "" {
		goal = theme.Hint.Render("Set a goal to stay motivated...")
	}

	lines := []string{
		theme.Heading.Render(p.Name) + "  " + theme.Subtitle.Render(fmt.Sprintf("avatar #%d", p.AvatarID)),
		theme.Field("Class", p.Class.String()),
		theme.Field("Board", p.Board),
		theme.Field("Goal", goal),
		theme.Field("Points", theme.Points(p.Points)),
		theme.Field("Level", fmt.Sprintf("%d %s  %s %.0f%%", level, ledger.LevelName(level), theme.ProgressBar(progress, 20), progress)),
		theme.Field("Streak", fmt.Sprintf("%d %s", p.Streak, plural(p.Streak, "day"))),
	}
	fmt.Fprintln(a.out, theme.Card.Render(strings.Join(lines, "\n")))
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your profile and award history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes your profile and points; re-run with --yes to confirm")
		}
		a, err := openApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ledger.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile deleted.")
		return nil
	},
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func init() {
	enrollCmd.Flags().String("name", "", "Your name")
	enrollCmd.Flags().String("class", "10", "Class 9-12")
	enrollCmd.Flags().String("board", curriculum.DefaultBoard, "Exam board")
	enrollCmd.Flags().String("goal", "", "Study goal")
	enrollCmd.Flags().Int("avatar", 0, "Avatar 1-5 (0 picks one at random)")
	_ = enrollCmd.MarkFlagRequired("name")

	profileCmd.Flags().String("name", "", "Change your name")
	profileCmd.Flags().String("class", "", "Change your class")
	profileCmd.Flags().String("board", "", "Change your board")
	profileCmd.Flags().String("goal", "", "Change your study goal")

	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
