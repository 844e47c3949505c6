package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.coach.Profiles.Load(cmd.Context())
		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, p)
		}
		printProfile(cmd, p)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Example: `  stemcoach profile set --name Asha --mode exam --exam-days 30
  stemcoach profile set --subject Physics --skill advanced
  stemcoach profile set --subject all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := profileUpdateFromFlags(cmd)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.coach.Profiles.Save(cmd.Context(), u)
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(cmd.OutOrStdout(), p)
		}
		printProfile(cmd, p)
		return nil
	},
}

var profileSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Edit the profile interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, launch{openProfile: true})
	},
}

// profileUpdateFromFlags builds a partial update from the flags that were
// set on the command line.
func profileUpdateFromFlags(cmd *cobra.Command) (profile.Update, error) {
	var u profile.Update
	f := cmd.Flags()

	if f.Changed("name") {
		v, _ := f.GetString("name")
		u.Name = &v
	}
	if f.Changed("grade") {
		v, _ := f.GetString("grade")
		u.GradeLevel = &v
	}
	if f.Changed("mode") {
		v, _ := f.GetString("mode")
		mode := profile.LearningMode(strings.ToLower(v))
		if mode != profile.ModeExam && mode != profile.ModeLearn {
			return u, fmt.Errorf("invalid --mode %q (want %q or %q)", v, profile.ModeExam, profile.ModeLearn)
		}
		u.LearningMode = &mode
	}
	if f.Changed("skill") {
		v, _ := f.GetString("skill")
		level, err := parseSkill(v)
		if err != nil {
			return u, err
		}
		u.SkillLevel = &level
	}
	if f.Changed("exam-days") {
		v, _ := f.GetInt("exam-days")
		if v < 0 {
			return u, fmt.Errorf("--exam-days must not be negative")
		}
		u.ExamDaysLeft = &v
	}
	if f.Changed("pace") {
		v, _ := f.GetInt("pace")
		if v < 0 {
			return u, fmt.Errorf("--pace must not be negative")
		}
		u.PaceSessionsPerWeek = &v
	}
	if f.Changed("subject") {
		v, _ := f.GetString("subject")
		subject := ""
		if v != "" && !strings.EqualFold(v, "all") {
			s, err := topicpack.ParseSubject(v)
			if err != nil {
				return u, err
			}
			subject = string(s)
		}
		u.FocusSubject = &subject
	}
	return u, nil
}

func parseSkill(v string) (profile.SkillLevel, error) {
	for _, l := range profile.SkillLevels() {
		if strings.EqualFold(string(l), v) {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid --skill %q (want Beginner, Intermediate or Advanced)", v)
}

func printProfile(cmd *cobra.Command, p profile.Profile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", p.ID)
	fmt.Fprintf(out, "Name:      %s\n", p.Name)
	fmt.Fprintf(out, "Grade:     %s\n", p.GradeLevel)
	fmt.Fprintf(out, "Mode:      %s\n", p.LearningMode)
	fmt.Fprintf(out, "Skill:     %s\n", p.SkillLevel)
	fmt.Fprintf(out, "Focus:     %s\n", p.ScopeLabel())
	if p.ExamDaysLeft > 0 {
		fmt.Fprintf(out, "Exam in:   %d days\n", p.ExamDaysLeft)
	}
	if p.PaceSessionsPerWeek > 0 {
		fmt.Fprintf(out, "Pace:      %d sessions/week\n", p.PaceSessionsPerWeek)
	}
}

func init() {
	jsonFlag(profileShowCmd)
	jsonFlag(profileSetCmd)

	f := profileSetCmd.Flags()
	f.String("name", "", "Display name")
	f.String("grade", "", "Grade level")
	f.String("mode", "", `Learning mode: "exam" or "learn"`)
	f.String("skill", "", "Skill level: Beginner, Intermediate or Advanced")
	f.Int("exam-days", 0, "Days left until the exam (0 clears)")
	f.Int("pace", 0, "Study sessions per week (0 clears)")
	f.String("subject", "", `Focus subject, or "all" for every STEM subject`)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileSetupCmd)
}
