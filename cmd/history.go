package cmd

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/yetria/yetria/internal/llm"
	"github.com/yetria/yetria/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stage submissions recorded on this machine",
	Long: "Show stage submissions recorded on this machine. With --llm, show the career\n" +
		"insight requests instead, with token usage and estimated cost per model.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		showLLM, _ := cmd.Flags().GetBool("llm")

		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		if showLLM {
			events, err := d.store.EventRepo().LLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			return renderLLMEvents(cmd, events)
		}

		u, err := d.requireUser()
		if err != nil {
			return err
		}
		events, err := d.store.EventRepo().Submissions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		own := events[:0]
		for _, e := range events {
			if e.UserID == u.ID {
				own = append(own, e)
			}
		}
		if len(own) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No submissions recorded.")
			return nil
		}
		return render(cmd, own, func(t table.Writer) {
			t.AppendHeader(table.Row{"Time", "Stage", "Responses", "Ms", "OK", "Result"})
			for _, e := range own {
				ok, result := "✓", e.WinningOccupation
				if !e.Success {
					ok, result = "✗", e.ErrorKind
				}
				t.AppendRow(table.Row{
					e.Timestamp.Local().Format(timeLayout),
					e.Stage,
					e.ResponseCount,
					e.LatencyMs,
					ok,
					truncate(result, 40),
				})
			}
		})
	},
}

// modelUsage is token usage summed per model.
type modelUsage struct {
	Model        string  `json:"model" yaml:"model"`
	Calls        int     `json:"calls" yaml:"calls"`
	InputTokens  int     `json:"input_tokens" yaml:"input_tokens"`
	OutputTokens int     `json:"output_tokens" yaml:"output_tokens"`
	CostUSD      float64 `json:"cost_usd" yaml:"cost_usd"`
	Priced       bool    `json:"priced" yaml:"priced"`
}

func usageByModel(events []store.LLMRequestEvent) []modelUsage {
	byModel := map[string]*modelUsage{}
	for _, e := range events {
		u, ok := byModel[e.Model]
		if !ok {
			u = &modelUsage{Model: e.Model}
			byModel[e.Model] = u
		}
		u.Calls++
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
	}
	out := make([]modelUsage, 0, len(byModel))
	for _, u := range byModel {
		if c := llm.LookupCost(u.Model); c != nil {
			u.CostUSD = c.Cost(u.InputTokens, u.OutputTokens)
			u.Priced = true
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Calls > out[j].Calls })
	return out
}

func renderLLMEvents(cmd *cobra.Command, events []store.LLMRequestEvent) error {
	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No LLM events found.")
		return nil
	}
	usage := usageByModel(events)
	payload := struct {
		Events []store.LLMRequestEvent `json:"events" yaml:"events"`
		Usage  []modelUsage            `json:"usage" yaml:"usage"`
	}{events, usage}

	return render(cmd, payload, func(t table.Writer) {
		t.AppendHeader(table.Row{"Time", "Provider", "Model", "In", "Out", "Ms", "OK"})
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			t.AppendRow(table.Row{
				e.Timestamp.Local().Format(timeLayout),
				e.Provider,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			})
		}
		t.AppendSeparator()

		var total float64
		partial := false
		for _, u := range usage {
			cost := "?"
			if u.Priced {
				cost = formatCost(u.CostUSD)
				total += u.CostUSD
			} else {
				partial = true
			}
			t.AppendRow(table.Row{"", fmt.Sprintf("%d calls", u.Calls), truncate(u.Model, 28), u.InputTokens, u.OutputTokens, "", cost})
		}
		label := "TOTAL"
		if partial {
			label = "TOTAL (partial)"
		}
		t.AppendFooter(table.Row{label, "", "", "", "", "", formatCost(total)})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight},
			{Number: 6, Align: text.AlignRight},
		})
	})
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().Bool("llm", false, "Show career insight requests and their cost")
	addOutputFlag(historyCmd)
}
