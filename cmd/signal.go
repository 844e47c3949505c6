package cmd

import (
	"fmt"

	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/spf13/cobra"
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Show the mastery level, next target and a coaching tip",
	Long: `Show the mastery level, next target and a coaching tip. Accuracy defaults to the
average of the last five quiz scores and the streak to the recorded one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		streak, _ := cmd.Flags().GetInt("streak")
		minutes, _ := cmd.Flags().GetInt("minutes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.coach.Stats.Load(cmd.Context())
		if !cmd.Flags().Changed("accuracy") {
			m, _ := readiness.Momentum(st.QuizScores)
			accuracy = float64(m)
		}
		if !cmd.Flags().Changed("streak") {
			streak = st.StreakDays
		}
		applyIntConfig(cmd, "minutes", &minutes, e.file.Coach.MinutesPerWeek)

		sig := tools.BuildProgressSignal(tools.ProgressSignalInput{
			RecentAccuracy:         accuracy,
			StreakDays:             streak,
			MinutesStudiedThisWeek: minutes,
		})

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, sig)
		}
		fmt.Fprintf(out, "Mastery:   %s\n", sig.MasteryLevel)
		fmt.Fprintf(out, "Next:      %s\n", sig.NextTarget)
		fmt.Fprintf(out, "Tip:       %s\n", sig.CoachingTip)
		return nil
	},
}

func init() {
	jsonFlag(signalCmd)
	signalCmd.Flags().Float64("accuracy", 0, "Recent accuracy percentage")
	signalCmd.Flags().Int("streak", 0, "Streak in days")
	signalCmd.Flags().Int("minutes", 0, "Minutes studied this week")
}
