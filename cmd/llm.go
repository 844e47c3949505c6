package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/stemcoach/internal/llm"
	"github.com/abhisek/stemcoach/internal/store"
	"github.com/spf13/cobra"
)

const stampLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model calls made by the coach",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		w := cmd.OutOrStdout()
		switch {
		case wantJSON(cmd):
			return printJSON(w, events)
		case len(events) == 0:
			fmt.Fprintln(w, "No model calls recorded.")
			return nil
		}

		const row = "%-26s  %-19s  %-10s  %-28s  %6v  %6v  %7v  %s\n"
		fmt.Fprintf(w, row, "ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		rule(w, 118)
		for _, e := range events {
			mark := "✓"
			if !e.Success {
				mark = "✗"
			}
			fmt.Fprintf(w, row, e.ID, e.Timestamp.Local().Format(stampLayout), e.Purpose,
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, mark)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), args[0])
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("event %s not found", args[0])
		case err != nil:
			return fmt.Errorf("get event: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, e)
		}

		fields := [][2]string{
			{"ID", e.ID},
			{"Time", e.Timestamp.Local().Format(stampLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", fmt.Sprint(e.Success)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
		}
		fmt.Fprintln(w)
		body(w, "REQUEST", e.RequestBody)
		body(w, "RESPONSE", e.ResponseBody)
		return nil
	},
}

// body prints one captured payload under a ruled heading.
func body(w io.Writer, title, text string) {
	rule(w, 60)
	fmt.Fprintln(w, title)
	rule(w, 60)
	if text == "" {
		text = "(not captured)"
	}
	fmt.Fprintln(w, text)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		purposes, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		w := cmd.OutOrStdout()
		switch {
		case wantJSON(cmd):
			return printJSON(w, struct {
				ByPurpose []store.PurposeUsage `json:"byPurpose"`
				ByModel   []store.ModelUsage   `json:"byModel"`
			}{purposes, models})
		case len(purposes) == 0:
			fmt.Fprintln(w, "No model calls recorded.")
			return nil
		}

		printPurposeUsage(w, purposes)
		if len(models) > 0 {
			fmt.Fprintln(w)
			printModelCost(w, models)
		}
		return nil
	},
}

func printPurposeUsage(w io.Writer, usage []store.PurposeUsage) {
	const row = "%-16s  %6v  %10v  %10v  %10v  %8v\n"
	fmt.Fprintln(w, "Usage by Purpose")
	rule(w, 72)
	fmt.Fprintf(w, row, "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	rule(w, 72)

	var calls, in, out int
	for _, u := range usage {
		fmt.Fprintf(w, row, u.Purpose, u.Calls, u.InputTokens, u.OutputTokens,
			u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	rule(w, 72)
	fmt.Fprintf(w, row, "TOTAL", calls, in, out, in+out, "")
}

// printModelCost prices each model from the built-in table. Models missing
// from the table show "?" and mark the total as partial.
func printModelCost(w io.Writer, usage []store.ModelUsage) {
	const row = "%-32s  %6v  %10v  %10v  %10s\n"
	fmt.Fprintln(w, "Estimated Cost (USD)")
	rule(w, 72)
	fmt.Fprintf(w, row, "Model", "Calls", "Input", "Output", "Cost")
	rule(w, 72)

	var total float64
	var unpriced []string
	for _, u := range usage {
		cost := "?"
		if price := llm.LookupCost(u.Model); price != nil {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(w, row, truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	rule(w, 72)

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, row, label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. quiz-gen)")
	for _, c := range []*cobra.Command{llmListCmd, llmViewCmd, llmStatsCmd} {
		jsonFlag(c)
		llmCmd.AddCommand(c)
	}
}

// openStore opens the SQLite database holding the event log.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	file, err := loadFileConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, file)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
