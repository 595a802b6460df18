package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/normalize"
	"github.com/abhisek/betopper/internal/study"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var bankCmd = &cobra.Command{
	Use:   "bank <topic>",
	Short: "Generate a question bank (+25 TP, +5 per solution revealed)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, args, study.SetQuestionBank)
	},
}

var dppCmd = &cobra.Command{
	Use:   "dpp <topic>",
	Short: "Generate daily practice problems (+20 TP, +10 per problem solved)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, args, study.SetDailyPractice)
	},
}

func runPractice(cmd *cobra.Command, args []string, kind study.SetKind) error {
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
	var set *study.QuestionSet
	title := "Question Bank"
	if kind == study.SetDailyPractice {
		title = "Daily Practice Problems"
		set, err = a.study.DailyPractice(ctx, params)
	} else {
		set, err = a.study.QuestionBank(ctx, params)
	}
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, theme.Title.Render(fmt.Sprintf("%s: %s", title, params.Topic)))
	fmt.Fprintln(a.out, theme.Subtitle.Render(fmt.Sprintf("Class %s | %s | %s", params.Class, params.Subject, params.Difficulty)))
	fmt.Fprintln(a.out)
	for i, item := range set.Items {
		printQuestion(a, i, item)
	}

	if all, _ := cmd.Flags().GetBool("reveal-all"); all {
		for i := range set.Items {
			item, _, err := a.study.RevealSolution(ctx, set, i)
			if err != nil {
				return err
			}
			printSolution(a, i, item)
		}
		return nil
	}

	// Interactive reveal: read question numbers until a blank line or EOF.
	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(a.out, theme.Hint.Render(fmt.Sprintf("Reveal solution # (1-%d, enter to finish): ", len(set.Items))))
		if !in.Scan() {
			fmt.Fprintln(a.out)
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			return nil
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(a.errOut, theme.Failure.Render("Enter a question number."))
			continue
		}
		item, _, err := a.study.RevealSolution(ctx, set, n-1)
		if err != nil {
			fmt.Fprintln(a.errOut, theme.Failure.Render(err.Error()))
			continue
		}
		printSolution(a, n-1, item)
	}
}

func printQuestion(a *app, i int, item normalize.QuestionItem) {
	fmt.Fprintf(a.out, "%s %s %s\n",
		theme.Heading.Render(fmt.Sprintf("Q%d.", i+1)),
		item.Question,
		theme.Hint.Render("["+string(item.Type)+"]"))
	for j, opt := range item.Options {
		fmt.Fprintf(a.out, "    (%c) %s\n", 'a'+j, opt)
	}
	fmt.Fprintln(a.out)
}

func printSolution(a *app, i int, item normalize.QuestionItem) {
	body := theme.Correct.Render(fmt.Sprintf("Q%d answer: ", i+1)) + item.Answer + "\n" +
		theme.Hint.Render(item.Explanation)
	fmt.Fprintln(a.out, theme.Card.Render(body))
}

func init() {
	for _, c := range []*cobra.Command{bankCmd, dppCmd} {
		addParamFlags(c, paramFlags{difficulty: true, count: true})
		c.Flags().Bool("reveal-all", false, "Reveal every solution without prompting")
	}
}

