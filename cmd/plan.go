package cmd

import (
	"fmt"

	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a day-by-day study plan",
	Long: `Build a day-by-day study plan. Focus topics are the learner's weak topics in the
subject, or the first topics of its pack when there are none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectName, _ := cmd.Flags().GetString("subject")
		days, _ := cmd.Flags().GetInt("days")
		dailyMinutes, _ := cmd.Flags().GetInt("daily-minutes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		applyStringConfig(cmd, "subject", &subjectName, e.file.Coach.Subject)
		applyIntConfig(cmd, "days", &days, e.file.Coach.Days)
		applyIntConfig(cmd, "daily-minutes", &dailyMinutes, e.file.Coach.DailyMinutes)
		if days < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		if dailyMinutes < 1 {
			return fmt.Errorf("--daily-minutes must be at least 1")
		}

		var subject topicpack.Subject
		if subjectName != "" {
			subject, err = topicpack.ParseSubject(subjectName)
			if err != nil {
				return err
			}
		}

		plan, err := e.coach.PlanFor(cmd.Context(), subject, days, dailyMinutes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, plan)
		}
		fmt.Fprintln(out, plan.Goal)
		fmt.Fprintf(out, "%d days, %d minutes a day\n", plan.Days, plan.DailyMinutes)
		rule(out, 60)
		for _, d := range plan.Plan {
			fmt.Fprintf(out, "Day %-3d %s\n", d.Day, d.Focus)
			for _, t := range d.Tasks {
				fmt.Fprintf(out, "        - %s\n", t)
			}
		}
		return nil
	},
}

func init() {
	jsonFlag(planCmd)
	planCmd.Flags().String("subject", "", "Subject (default: profile focus subject)")
	planCmd.Flags().Int("days", defaultPlanDays, "Plan length in days")
	planCmd.Flags().Int("daily-minutes", defaultPlanDailyMinutes, "Study minutes per day")
}
