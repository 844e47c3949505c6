package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/spf13/cobra"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "List or call the study tools an agent can use",
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the study tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		list := tools.NewRegistry().List()

		if wantJSON(cmd) {
			type toolInfo struct {
				Name         string         `json:"name"`
				Description  string         `json:"description"`
				InputSchema  map[string]any `json:"inputSchema"`
				OutputSchema map[string]any `json:"outputSchema"`
			}
			infos := make([]toolInfo, 0, len(list))
			for _, t := range list {
				infos = append(infos, toolInfo{t.Name, t.Description, t.Input.Definition, t.Output.Definition})
			}
			return printJSON(out, infos)
		}

		for _, t := range list {
			fmt.Fprintf(out, "%-20s  %s\n", t.Name, t.Description)
		}
		return nil
	},
}

var toolCallCmd = &cobra.Command{
	Use:   "call <name> [json|-]",
	Short: "Call a study tool with JSON input",
	Example: `  stemcoach tool call getStemTopicPack '{"subject":"Physics"}'
  echo '{"recentAccuracy":90,"streakDays":6,"minutesStudiedThisWeek":200}' | stemcoach tool call buildProgressSignal`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readJSONArg(cmd, args[1:])
		if err != nil {
			return err
		}
		res, err := tools.NewRegistry().Call(cmd.Context(), args[0], raw)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, res, "", "  "); err != nil {
			return fmt.Errorf("format result: %w", err)
		}
		buf.WriteByte('\n')
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	jsonFlag(toolListCmd)

	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolCallCmd)
}
