package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/stemcoach/internal/app"
	"github.com/abhisek/stemcoach/internal/config"
	"github.com/abhisek/stemcoach/internal/llm"
	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/spf13/cobra"
)

const (
	defaultPlanDays         = 7
	defaultPlanDailyMinutes = 60
)

// launch selects the first screen of the TUI.
type launch struct {
	quiz        *quizgen.Quiz
	openQuiz    bool
	openProfile bool
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, l launch) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{
		Coach:            e.coach,
		Events:           e.Events(),
		MinutesThisWeek:  intOr(e.file.Coach.MinutesPerWeek, 0),
		PlanDays:         intOr(e.file.Coach.Days, defaultPlanDays),
		PlanDailyMinutes: intOr(e.file.Coach.DailyMinutes, defaultPlanDailyMinutes),
		Quiz:             l.quiz,
		OpenQuiz:         l.openQuiz,
		OpenProfile:      l.openProfile,
	}

	gen, err := newGenerator(cmd.Context(), e, "")
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		}
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
	} else {
		opts.Generator = gen
	}

	return app.Run(opts)
}

// newGenerator builds a quiz generator from the environment, with the
// [llm] section of the config file and model (when not empty) applied on
// top.
func newGenerator(ctx context.Context, e *env, model string) (*quizgen.LLMGenerator, error) {
	provider, err := llm.NewProviderFromEnv(ctx, e.Events(), llmOverrides(e.file, model)...)
	if err != nil {
		return nil, err
	}
	return quizgen.New(provider, quizgen.DefaultConfig()), nil
}

// llmOverrides applies the config file's provider unless
// STEMCOACH_LLM_PROVIDER is set, then the model. The mock provider always
// answers from the offline practice bank.
func llmOverrides(file config.FileConfig, model string) []func(*llm.Config) {
	out := []func(*llm.Config){
		func(c *llm.Config) { c.Mock.Respond = quizgen.PracticeResponse },
	}
	if p := file.LLM.Provider; p != nil && *p != "" && os.Getenv("STEMCOACH_LLM_PROVIDER") == "" {
		out = append(out, func(c *llm.Config) { c.Provider = *p })
	}
	if model == "" && file.LLM.Model != nil {
		model = *file.LLM.Model
	}
	if model != "" {
		out = append(out, func(c *llm.Config) { c.SetModel(model) })
	}
	return out
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
