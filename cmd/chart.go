package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/stemcoach/internal/chart"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart [file|-]",
	Short: "Render a chart description in the terminal",
	Long: `Render a chart description in the terminal. The input is JSON of the form
  {"type":"bar","labels":["Mon","Tue"],"datasets":[{"label":"Minutes","data":[30,45]}]}
read from a file, or stdin when the file is missing or "-".

--completion charts a daily completion tracker and --mastery a topic mastery
heatmap; with --mastery the optional input is a JSON matrix of values, one row
per topic.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completion, _ := cmd.Flags().GetBool("completion")
		mastery, _ := cmd.Flags().GetBool("mastery")
		title, _ := cmd.Flags().GetString("title")
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = terminalWidth()
		}

		var data *chart.Data
		switch {
		case completion && mastery:
			return fmt.Errorf("--completion and --mastery are mutually exclusive")
		case completion:
			c := completionFromFlags(cmd)
			data = c.Data
			if title == "" {
				title = c.Title
			}
		case mastery:
			weeks, _ := cmd.Flags().GetStringSlice("weeks")
			topics, _ := cmd.Flags().GetStringSlice("topics")
			var values [][]float64
			if len(args) > 0 {
				raw, err := readChartInput(cmd, args)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &values); err != nil {
					return fmt.Errorf("decode mastery values: %w", err)
				}
			}
			data = chart.MasteryMatrix(weeks, topics, values)
			if title == "" {
				title = chart.MasteryTitle
			}
		default:
			raw, err := readChartInput(cmd, args)
			if err != nil {
				return err
			}
			data = chart.Decode(raw)
		}

		r := chart.Normalize(data)
		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, r)
		}
		return chart.Render(out, title, r, width)
	},
}

func completionFromFlags(cmd *cobra.Command) chart.Completion {
	f := cmd.Flags()
	in := chart.CompletionInput{}
	in.Title, _ = f.GetString("title")
	in.TotalDays, _ = f.GetInt("total-days")
	in.CompletedDays, _ = f.GetIntSlice("days")
	if f.Changed("count") {
		n, _ := f.GetInt("count")
		in.CompletedCount = &n
	}
	if f.Changed("no-demo") {
		noDemo, _ := f.GetBool("no-demo")
		allowed := !noDemo
		in.DemoAllowed = &allowed
	}
	return chart.CompletionChart(in)
}

func readChartInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	return raw, nil
}

func init() {
	jsonFlag(chartCmd)
	f := chartCmd.Flags()
	f.String("title", "", "Chart title")
	f.Int("width", 0, "Render width (default: terminal width)")

	f.Bool("completion", false, "Chart a daily completion tracker")
	f.Int("total-days", chart.DefaultTotalDays, fmt.Sprintf("Completion: days tracked (max %d)", chart.MaxTotalDays))
	f.IntSlice("days", nil, "Completion: completed day numbers, e.g. 1,2,5")
	f.Int("count", 0, "Completion: number of sample days when no days are given")
	f.Bool("no-demo", false, "Completion: do not chart sample data")

	f.Bool("mastery", false, "Chart a topic mastery heatmap")
	f.StringSlice("weeks", nil, "Mastery: column labels")
	f.StringSlice("topics", nil, "Mastery: row labels")
}
