package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/prompts"
	"github.com/abhisek/betopper/internal/study"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with your AI study friend (+10 TP every 2nd exchange)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")

		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		chat := a.study.NewChat(lang)
		fmt.Fprintln(a.out, theme.Title.Render("Be Topper AI")+" "+theme.Subtitle.Render("("+chat.Language()+")"))
		fmt.Fprintln(a.out, study.ChatGreeting)
		fmt.Fprintln(a.out, theme.Hint.Render("Type /exit or press Ctrl-D to leave."))

		in := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(a.out, theme.Heading.Render("you> "))
			if !in.Scan() {
				fmt.Fprintln(a.out)
				return in.Err()
			}
			msg := strings.TrimSpace(in.Text())
			switch msg {
			case "":
				continue
			case "/exit", "/quit":
				return nil
			}

			reply, err := chat.Send(ctx, msg)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.log.Warn("chat turn failed", "error", err)
				fmt.Fprintln(a.errOut, theme.Failure.Render(study.UserMessage(err)))
				continue
			}
			fmt.Fprintln(a.out, theme.Title.Render("ai> ")+reply)
		}
	},
}

func init() {
	chatCmd.Flags().StringP("lang", "l", prompts.DefaultLanguage, "Reply language, e.g. English, Hindi, Hinglish")
}
