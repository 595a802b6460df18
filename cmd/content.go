package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/prompts"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var notesCmd = &cobra.Command{
	Use:   "notes <topic>",
	Short: "Get concise revision notes on a topic (+15 TP)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		params, err := paramsFromFlags(cmd, a.profile, topicArg(args))
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		notes, err := a.study.Notes(ctx, params)
		if err != nil {
			return a.report(err)
		}
		printDocument(a, fmt.Sprintf("%s: %s", params.Subject, params.Topic), notes.Body)

		if path, _ := cmd.Flags().GetString("save"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			// SaveNotes closes f before awarding the copy bonus.
			if err := a.study.SaveNotes(ctx, f, notes); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(a.out, theme.Hint.Render("Saved to "+path))
		}
		return nil
	},
}

var expectedCmd = &cobra.Command{
	Use:   "expected <topic>",
	Short: "List highly expected exam questions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		params, err := paramsFromFlags(cmd, a.profile, topicArg(args))
		if err != nil {
			return err
		}
		res, err := a.study.ExpectedQuestions(cmd.Context(), params)
		if err != nil {
			return a.report(err)
		}
		printDocument(a, "Expected Questions: "+params.Topic, res.Body)
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity <topic>",
	Short: "Explain a science lab activity or experiment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		class, err := classFlag(cmd, a.profile.Class)
		if err != nil {
			return err
		}
		topic := topicArg(args)
		res, err := a.study.Activity(cmd.Context(), class, topic)
		if err != nil {
			return a.report(err)
		}
		printDocument(a, "Lab Activity: "+topic, res.Body)
		return nil
	},
}

var answersCmd = &cobra.Command{
	Use:   "answers <topic>",
	Short: "Get a marking scheme with model answers (+5 TP)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		kind := prompts.AnswerKeyKind(kindFlag)
		if _, ok := kind.Label(); !ok {
			return fmt.Errorf("unknown answer key kind %q (want paper, expected, question-bank or dpp)", kindFlag)
		}

		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		params, err := paramsFromFlags(cmd, a.profile, topicArg(args))
		if err != nil {
			return err
		}
		res, err := a.study.AnswerKey(cmd.Context(), kind, params)
		if err != nil {
			return a.report(err)
		}
		label, _ := kind.Label()
		printDocument(a, fmt.Sprintf("Answer Key (%s): %s", label, params.Topic), res.Body)
		return nil
	},
}

// classFlag reads --class, falling back to def.
func classFlag(cmd *cobra.Command, def curriculum.ClassLevel) (curriculum.ClassLevel, error) {
	s, _ := cmd.Flags().GetString("class")
	if s == "" {
		return def, nil
	}
	return curriculum.ParseClassLevel(s)
}

func printDocument(a *app, title, body string) {
	fmt.Fprintln(a.out, theme.Title.Render(title))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, body)
}

func init() {
	addParamFlags(notesCmd, paramFlags{})
	notesCmd.Flags().String("save", "", "Also write the notes to this file (+5 TP)")

	addParamFlags(expectedCmd, paramFlags{count: true})

	activityCmd.Flags().StringP("class", "c", "", "Class 9-12 (defaults to your profile's class)")

	addParamFlags(answersCmd, paramFlags{})
	answersCmd.Flags().StringP("kind", "k", string(prompts.AnswerKeyPaper), "Material type: paper, expected, question-bank or dpp")
}
