package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/llm"
	"github.com/abhisek/lingoloop/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		opts := store.QueryOpts{Limit: limit}
		if purpose != "" {
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(ctx, opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		events = filterPurpose(events, purpose, limit)

		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM events found.")
			return nil
		}

		// Header.
		fmt.Fprintf(w, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		rule(w, 100)

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Fprintf(w, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		e, err := s.EventRepo().GetLLMEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		sep := strings.Repeat("\u2500", 60)

		fmt.Fprintf(w, "ID:        %d\n", e.ID)
		fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
		fmt.Fprintf(w, "Model:     %s\n", e.Model)
		fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
		fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
		fmt.Fprintf(w, "Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, "REQUEST")
		fmt.Fprintln(w, sep)
		if e.RequestBody != "" {
			fmt.Fprintln(w, e.RequestBody)
		} else {
			fmt.Fprintln(w, "(not captured)")
		}

		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, "RESPONSE")
		fmt.Fprintln(w, sep)
		if e.ResponseBody != "" {
			fmt.Fprintln(w, e.ResponseBody)
		} else {
			fmt.Fprintln(w, "(not captured)")
		}

		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(stats) == 0 {
			fmt.Fprintln(w, "No LLM usage recorded yet.")
			return nil
		}

		// Usage by purpose.
		fmt.Fprintln(w, "Usage by Purpose")
		rule(w, 72)
		fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		rule(w, 72)

		var totalCalls, totalIn, totalOut int
		for _, st := range stats {
			total := st.InputTokens + st.OutputTokens
			fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, total, st.AvgLatencyMs)
			totalCalls += st.Calls
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}

		rule(w, 72)
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

		// Cost by model.
		modelUsage, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		if len(modelUsage) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Estimated Cost (USD)")
			rule(w, 72)
			fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
				"Model", "Calls", "Input", "Output", "Cost")
			rule(w, 72)

			var totalCost float64
			var unknownModels []string
			for _, mu := range modelUsage {
				cost := llm.LookupCost(mu.Model)
				if cost == nil {
					unknownModels = append(unknownModels, mu.Model)
					fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
						truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
					continue
				}
				c := cost.Cost(mu.InputTokens, mu.OutputTokens)
				totalCost += c
				fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %9s\n",
					truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
			}

			rule(w, 72)
			label := "TOTAL"
			if len(unknownModels) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %9s\n",
				label, "", "", "", formatCost(totalCost))

			if len(unknownModels) > 0 {
				fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
			}
		}

		return nil
	},
}

// openStore opens only the event database; the LLM commands need neither
// the challenge pool nor the KV backend.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func filterPurpose(events []store.LLMEvent, purpose string, limit int) []store.LLMEvent {
	if purpose == "" {
		return events
	}
	var out []store.LLMEvent
	for _, e := range events {
		if e.Purpose != purpose {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("\u2500", n))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. "+llm.PurposeChallengeGen+")")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
