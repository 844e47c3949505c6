package cmd

import (
	"fmt"

	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show or record study statistics",
}

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show streak, quiz scores and recent mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.coach.Stats.Load(cmd.Context())
		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, st)
		}

		last := st.LastStudyDate
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(out, "Streak:       %d days\n", st.StreakDays)
		fmt.Fprintf(out, "Last studied: %s\n", last)
		fmt.Fprintf(out, "Sessions:     %d\n", st.TotalSessions)
		fmt.Fprintf(out, "Quizzes:      %d\n", len(st.QuizScores))
		if len(st.QuizScores) > 0 {
			fmt.Fprint(out, "Scores:      ")
			for _, s := range st.QuizScores {
				fmt.Fprintf(out, " %.0f%%", s)
			}
			fmt.Fprintln(out)
		}

		if len(st.Mistakes) == 0 {
			return nil
		}
		limit, _ := cmd.Flags().GetInt("mistakes")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Recent mistakes (%d stored)\n", len(st.Mistakes))
		rule(out, 72)
		for i, m := range st.Mistakes {
			if i >= limit {
				break
			}
			fmt.Fprintf(out, "%-20s  %s\n", truncate(m.Topic, 20), truncate(m.Question, 50))
			fmt.Fprintf(out, "%-20s  answered %q, correct %q\n", "", m.SelectedAnswer, m.CorrectAnswer)
		}

		weak := studystats.WeakTopics(st, 3)
		if len(weak) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Weak topics:")
			for i, t := range weak {
				fmt.Fprintf(out, "  %d. %s\n", i+1, t)
			}
		}
		return nil
	},
}

var statsSessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record a study session for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.coach.Stats.RecordSession(cmd.Context())
		if err != nil {
			return fmt.Errorf("record session: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(cmd.OutOrStdout(), st)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session recorded. Streak: %d days, %d sessions in total.\n",
			st.StreakDays, st.TotalSessions)
		return nil
	},
}

func init() {
	jsonFlag(statsShowCmd)
	jsonFlag(statsSessionCmd)
	statsShowCmd.Flags().IntP("mistakes", "m", 5, "Number of recent mistakes to show")

	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsSessionCmd)
}
