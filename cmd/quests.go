package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
)

func newQuestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quests <hunter>",
		Short: "Show today's quests, generating them if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.hunter(cmd, args[0])
			if err != nil {
				return err
			}
			qs, err := e.svc.TodayQuests(cmd.Context(), p.ID, e.now())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Daily quests for %s (%s)\n\n", p.Name, qs[0].Date)
			for _, q := range qs {
				mark := " "
				if q.Completed {
					mark = "x"
				}
				fmt.Fprintf(w, "[%s] %d. %-28s %-10s %-6s %3d XP\n",
					mark, q.Position, q.Title, rank.CategoryDisplayName(q.Category), q.Difficulty, q.XPReward)
				fmt.Fprintf(w, "       %s\n", q.Description)
			}
			return nil
		},
	}
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <hunter> <quest>",
		Short: "Complete one of today's quests by position (1-6) or id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.hunter(cmd, args[0])
			if err != nil {
				return err
			}
			asOf := e.now()
			questID := args[1]
			if pos, err := strconv.Atoi(args[1]); err == nil {
				qs, err := e.svc.TodayQuests(cmd.Context(), p.ID, asOf)
				if err != nil {
					return err
				}
				if pos < 1 || pos > len(qs) {
					return fmt.Errorf("quest position %d: want 1-%d", pos, len(qs))
				}
				questID = qs[pos-1].ID
			}

			c, err := e.svc.CompleteQuest(cmd.Context(), p.ID, questID, asOf)
			if err != nil {
				return err
			}
			printCompletion(cmd, e, c)
			return nil
		},
	}
}

func printCompletion(cmd *cobra.Command, e *env, c *progression.Completion) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Quest cleared: %s\n", c.Quest.Title)
	if c.BoostPercent > 0 {
		fmt.Fprintf(w, "+%d XP (streak boost +%d%%). Total %d XP.\n", c.XPAwarded, c.BoostPercent, c.TotalXP)
	} else {
		fmt.Fprintf(w, "+%d XP. Total %d XP.\n", c.XPAwarded, c.TotalXP)
	}
	if c.RankChanged {
		fmt.Fprintf(w, "RANK UP: %s -> %s\n", c.RankBefore, e.engine.Ladder().Config(c.RankAfter).DisplayName)
	}
	if c.DayComplete {
		fmt.Fprintf(w, "All quests cleared today. Streak: %d days.\n", c.StreakDays)
	}
	if c.Milestone > 0 {
		fmt.Fprintf(w, "Milestone reached: %d days!\n", c.Milestone)
	}
}
