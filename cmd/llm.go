package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/llm"
	"github.com/hunter-system/hunter/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

func newLLMCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "llm",
		Short: "Inspect recorded LLM calls",
	}
	c.AddCommand(newLLMListCmd(), newLLMViewCmd(), newLLMStatsCmd())
	return c
}

func newLLMListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			purpose, _ := cmd.Flags().GetString("purpose")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			shown := 0
			for _, ev := range events {
				if purpose != "" && ev.Purpose != purpose {
					continue
				}
				if shown == 0 {
					fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-28s  %6s  %6s  %7s  %s\n",
						"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
					rule(out, 96)
				}
				shown++
				ok := "✓"
				if !ev.Success {
					ok = "✗"
				}
				fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-28s  %6d  %6d  %7d  %s\n",
					ev.ID, ev.Timestamp.Local().Format(timeLayout), truncate(ev.Purpose, 10),
					truncate(ev.Model, 28), ev.InputTokens, ev.OutputTokens, ev.LatencyMs, ok)
			}
			if shown == 0 {
				fmt.Fprintln(out, "No LLM calls recorded.")
			}
			return nil
		},
	}
	c.Flags().IntP("limit", "n", 20, "Number of calls to show")
	c.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. briefing)")
	return c
}

func newLLMViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Show the full request and response of one LLM call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return err
			}
			if ev == nil {
				return fmt.Errorf("llm call %d not found", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %d\n", ev.ID)
			fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format(timeLayout))
			fmt.Fprintf(out, "Provider:  %s\n", ev.Provider)
			fmt.Fprintf(out, "Model:     %s\n", ev.Model)
			fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
			fmt.Fprintf(out, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
			fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
			if ev.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", ev.ErrorMessage)
			}
			section(out, "REQUEST", ev.RequestBody)
			section(out, "RESPONSE", ev.ResponseBody)
			return nil
		},
	}
}

func newLLMStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show token usage and estimated cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			events := e.store.EventRepo()
			byPurpose, err := events.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded.")
				return nil
			}

			fmt.Fprintf(out, "%-16s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
			rule(out, 58)
			var calls, in, outTok int
			for _, u := range byPurpose {
				fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %8d\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
				calls += u.Calls
				in += u.InputTokens
				outTok += u.OutputTokens
			}
			rule(out, 58)
			fmt.Fprintf(out, "%-16s  %6d  %10d  %10d\n", "TOTAL", calls, in, outTok)

			byModel, err := events.LLMUsageByModel(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-32s  %6s  %10s\n", "Model", "Calls", "Cost (USD)")
			rule(out, 52)
			var total float64
			var unpriced []string
			for _, u := range byModel {
				price, ok := llm.LookupCost(u.Model)
				if !ok {
					unpriced = append(unpriced, u.Model)
					fmt.Fprintf(out, "%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, "?")
					continue
				}
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				fmt.Fprintf(out, "%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, formatCost(c))
			}
			rule(out, 52)
			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(out, "%-32s  %6s  %10s\n", label, "", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		},
	}
}

func section(w io.Writer, title, body string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	rule(w, 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
