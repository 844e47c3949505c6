package cmd

import (
	"fmt"

	"github.com/abhisek/stemcoach/internal/chart"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the progress dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, _ := cmd.Flags().GetInt("minutes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		applyIntConfig(cmd, "minutes", &minutes, e.file.Coach.MinutesPerWeek)

		d := e.coach.Dashboard(cmd.Context(), minutes)
		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, d)
		}

		fmt.Fprintf(out, "%s · %s · %s\n", d.Profile.Name, d.Profile.ScopeLabel(), d.Profile.SkillLevel)
		rule(out, 60)
		fmt.Fprintf(out, "Readiness: %d/100 %s (%s)\n", d.Gauge.Value, d.Readiness.Status, d.Gauge.Tone)
		fmt.Fprintln(out, d.Readiness.Summary)
		fmt.Fprintf(out, "Streak:    %d days, %d sessions\n", d.Stats.StreakDays, d.Stats.TotalSessions)
		if d.HasMomentum {
			fmt.Fprintf(out, "Accuracy:  %d%% over recent quizzes\n", d.Momentum)
		}
		fmt.Fprintf(out, "Mastery:   %s\n", d.Signal.MasteryLevel)
		fmt.Fprintf(out, "Next:      %s\n", d.Signal.NextTarget)
		fmt.Fprintf(out, "Tip:       %s\n", d.Signal.CoachingTip)

		if len(d.WeakTopics) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Weak topics:")
			for i, t := range d.WeakTopics {
				fmt.Fprintf(out, "  %d. %s\n", i+1, t)
			}
		}

		fmt.Fprintln(out)
		return chart.Render(out, "Score trend", d.Trend, terminalWidth())
	},
}

func init() {
	jsonFlag(dashboardCmd)
	dashboardCmd.Flags().Int("minutes", 0, "Minutes studied this week")
}
