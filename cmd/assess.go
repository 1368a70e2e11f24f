package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/app"
	"github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/rank"
)

func newAssessCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "assess <hunter>",
		Short: "Take the onboarding assessment to set a starting rank",
		Long: "Walks the 30-question assessment in the terminal. Pass --answers with " +
			"one score (1-5) per question to answer non-interactively.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("answers")
			interactive := raw == ""

			var opts []envOption
			if interactive {
				opts = append(opts, quietConsole())
			}
			e, err := openEnv(cmd, opts...)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.hunter(cmd, args[0])
			if err != nil {
				return err
			}

			var answers []assessment.Answer
			if interactive {
				answers, err = app.RunAssessment(cmd.Context())
				if errors.Is(err, app.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Assessment cancelled. Nothing was saved.")
					return nil
				}
			} else {
				answers, err = parseAnswers(raw)
			}
			if err != nil {
				return err
			}

			out, err := e.svc.SubmitAssessment(cmd.Context(), p.ID, answers, e.now())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Score: %d/%d\n", out.Result.TotalScore, out.Result.MaxScore)
			fmt.Fprintf(w, "Rank:  %s\n", e.engine.Ladder().Config(out.Profile.Rank).DisplayName)
			fmt.Fprintf(w, "XP:    %d\n", out.Profile.TotalXP)
			for _, c := range rank.AllCategories() {
				fmt.Fprintf(w, "  %-10s %3d\n", rank.CategoryDisplayName(c), out.Result.Stats[c])
			}
			return nil
		},
	}
	c.Flags().String("answers", "", "Comma-separated scores, one per question, e.g. 3,4,2,...")
	return c
}

func parseAnswers(raw string) ([]assessment.Answer, error) {
	parts := strings.Split(raw, ",")
	scores := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < assessment.MinOptionScore || n > assessment.MaxOptionScore {
			return nil, fmt.Errorf("answer %d: %q is not a score between %d and %d",
				i+1, p, assessment.MinOptionScore, assessment.MaxOptionScore)
		}
		scores[i] = n
	}
	return assessment.AnswersFromScores(scores)
}
