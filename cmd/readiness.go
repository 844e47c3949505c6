package cmd

import (
	"fmt"

	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/spf13/cobra"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Show the exam readiness score",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.coach.Stats.Load(cmd.Context())
		r := readiness.Compute(st.QuizScores, st.StreakDays)
		g := readiness.Gauge(float64(r.Score))

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, struct {
				readiness.Result
				Gauge readiness.GaugeReading `json:"gauge"`
			}{r, g})
		}
		fmt.Fprintf(out, "Readiness: %d/100 (%s)\n", r.Score, r.Status)
		fmt.Fprintln(out, r.Summary)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		for _, s := range r.NextSteps {
			fmt.Fprintf(out, "  - %s\n", s)
		}
		return nil
	},
}

func init() {
	jsonFlag(readinessCmd)
}
