package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/prompts"
)

// paramFlags selects the optional flags a content command accepts.
type paramFlags struct {
	difficulty bool
	count      bool
}

// addParamFlags registers --class, --subject and --board, plus the
// optional ones selected.
func addParamFlags(c *cobra.Command, f paramFlags) {
	c.Flags().StringP("class", "c", "", "Class 9-12 (defaults to your profile's class)")
	c.Flags().StringP("subject", "s", "", "Subject (defaults to Science for 9-10, Physics for 11-12)")
	c.Flags().StringP("board", "b", "", "Exam board (defaults to your profile's board)")
	if f.difficulty {
		c.Flags().StringP("difficulty", "d", string(curriculum.DifficultyMedium), "Difficulty: Low, Medium or High")
	}
	if f.count {
		c.Flags().IntP("count", "n", 0, "Number of questions (0 uses the default)")
	}
}

// paramsFromFlags fills prompt parameters from flags, falling back to the
// learner profile.
func paramsFromFlags(cmd *cobra.Command, p ledger.Profile, topic string) (prompts.Params, error) {
	params := prompts.Params{
		Class: p.Class,
		Board: p.Board,
		Topic: strings.TrimSpace(topic),
	}

	if s, _ := cmd.Flags().GetString("class"); s != "" {
		c, err := curriculum.ParseClassLevel(s)
		if err != nil {
			return params, err
		}
		params.Class = c
	}
	if s, _ := cmd.Flags().GetString("board"); s != "" {
		params.Board = s
	}
	if params.Board == "" {
		params.Board = curriculum.DefaultBoard
	}
	params.Subject, _ = cmd.Flags().GetString("subject")
	if params.Subject == "" {
		params.Subject = curriculum.DefaultSubject(params.Class)
	}

	if cmd.Flags().Lookup("difficulty") != nil {
		s, _ := cmd.Flags().GetString("difficulty")
		d, err := curriculum.ParseDifficulty(s)
		if err != nil {
			return params, err
		}
		params.Difficulty = d
	}
	if cmd.Flags().Lookup("count") != nil {
		params.Count, _ = cmd.Flags().GetInt("count")
	}
	return params, nil
}

// topicArg joins positional arguments so unquoted multi-word topics work.
func topicArg(args []string) string {
	return strings.Join(args, " ")
}
