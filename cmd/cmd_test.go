package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/spf13/cobra"
)

// execute runs the root command against a temp database and config file.
func execute(t *testing.T, dir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	args = append(args,
		"--db", filepath.Join(dir, "stemcoach.db"),
		"--config", filepath.Join(dir, "config.toml"))
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestApplyStringConfig(t *testing.T) {
	fileValue := "Chemistry"

	tests := []struct {
		name string
		args []string
		file *string
		want string
	}{
		{"file fills unset flag", nil, &fileValue, "Chemistry"},
		{"flag wins over file", []string{"--subject", "Physics"}, &fileValue, "Physics"},
		{"no file value", nil, nil, "Math"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: "x"}
			c.Flags().String("subject", "Math", "")
			if err := c.Flags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			got, _ := c.Flags().GetString("subject")
			applyStringConfig(c, "subject", &got, tt.file)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyIntConfig(t *testing.T) {
	days := 3
	c := &cobra.Command{Use: "x"}
	c.Flags().Int("days", 7, "")

	got := 7
	applyIntConfig(c, "days", &got, &days)
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestProfileSetThenShow(t *testing.T) {
	dir := t.TempDir()
	execute(t, dir, "profile", "set", "--name", "Asha", "--subject", "physics", "--skill", "advanced")

	out := execute(t, dir, "profile", "show", "--json")
	var p profile.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if p.Name != "Asha" {
		t.Errorf("name = %q, want Asha", p.Name)
	}
	if p.FocusSubject != "Physics" {
		t.Errorf("subject = %q, want Physics", p.FocusSubject)
	}
	if p.SkillLevel != profile.Advanced {
		t.Errorf("skill = %q, want Advanced", p.SkillLevel)
	}
}

func TestPlanReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := "[coach]\nsubject = \"Chemistry\"\ndays = 3\ndaily-minutes = 40\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, dir, "plan", "--json")
	var plan tools.StudyPlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if plan.Days != 3 || len(plan.Plan) != 3 {
		t.Errorf("days = %d with %d entries, want 3", plan.Days, len(plan.Plan))
	}
	if plan.DailyMinutes != 40 {
		t.Errorf("daily minutes = %d, want 40", plan.DailyMinutes)
	}
	if !strings.Contains(plan.Goal, "Chemistry") {
		t.Errorf("goal = %q, want Chemistry", plan.Goal)
	}
}

func TestToolCall(t *testing.T) {
	out := execute(t, t.TempDir(), "tool", "call", "getStemTopicPack", `{"subject":"Physics"}`)
	if !strings.Contains(out, "Units & Measurements") {
		t.Errorf("output missing first physics topic:\n%s", out)
	}
}

func TestQuizScoreWithoutRecording(t *testing.T) {
	in := `{"answers":[{"questionId":"q1","selectedIndex":1,"correctIndex":1},{"questionId":"q2","selectedIndex":0,"correctIndex":2}]}`
	out := execute(t, t.TempDir(), "quiz", "score", in)
	if !strings.Contains(out, "1/2 (50%)") {
		t.Errorf("output = %q, want 1/2 (50%%)", out)
	}
	if !strings.Contains(out, "q2") {
		t.Errorf("output = %q, want missed q2", out)
	}
}
