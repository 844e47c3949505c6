package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take, score or generate practice quizzes",
}

var quizTakeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a quiz in the terminal UI",
	Long: `Take a quiz in the terminal UI. With --file the quiz is loaded from a JSON file
("-" reads stdin); with --topic one is generated first. Without either, the
quiz picker opens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		topic, _ := cmd.Flags().GetString("topic")

		switch {
		case file != "":
			q, err := loadQuizFile(cmd, file)
			if err != nil {
				return err
			}
			return runApp(cmd, launch{quiz: q})
		case topic != "":
			q, err := generateFromFlags(cmd, topic)
			if err != nil {
				return err
			}
			return runApp(cmd, launch{quiz: q})
		}
		return runApp(cmd, launch{openQuiz: true})
	},
}

var quizScoreCmd = &cobra.Command{
	Use:   "score [json|-]",
	Short: "Score quiz answers",
	Long: `Score quiz answers.

Without --quiz the input is a scoreQuiz request and nothing is recorded:
  {"answers":[{"questionId":"q1","selectedIndex":2,"correctIndex":2}]}

With --quiz the input maps question ids to chosen option indexes, and the
result is recorded in the learner's stats:
  {"q1":2,"q2":0}`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readJSONArg(cmd, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		quizFile, _ := cmd.Flags().GetString("quiz")
		if quizFile == "" {
			res, err := tools.NewRegistry().Call(cmd.Context(), "scoreQuiz", raw)
			if err != nil {
				return err
			}
			var score tools.QuizScore
			if err := json.Unmarshal(res, &score); err != nil {
				return fmt.Errorf("decode score: %w", err)
			}
			if wantJSON(cmd) {
				return printJSON(out, score)
			}
			printScore(out, score)
			return nil
		}

		q, err := loadQuizFile(cmd, quizFile)
		if err != nil {
			return err
		}
		var selected map[string]int
		if err := json.Unmarshal(raw, &selected); err != nil {
			return fmt.Errorf("decode answers: %w", err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.coach.CompleteQuiz(cmd.Context(), *q, selected)
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(out, res)
		}
		printScore(out, res.Score)
		if len(res.Mistakes) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Review request:")
			fmt.Fprintln(out, res.Review)
		}
		fmt.Fprintf(out, "\nStreak: %d days, %d quizzes recorded.\n", res.Stats.StreakDays, len(res.Stats.QuizScores))
		return nil
	},
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz and print it as JSON",
	Example: `  stemcoach quiz generate --topic Optics --count 5 > optics.json
  stemcoach quiz take --file optics.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		q, err := generateFromFlags(cmd, topic)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), q)
	},
}

// generateFromFlags generates a quiz on topic for the learner, using
// --subject, --count and --model.
func generateFromFlags(cmd *cobra.Command, topic string) (*quizgen.Quiz, error) {
	subjectName, _ := cmd.Flags().GetString("subject")
	count, _ := cmd.Flags().GetInt("count")
	model, _ := cmd.Flags().GetString("model")

	e, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	applyStringConfig(cmd, "subject", &subjectName, e.file.Coach.Subject)
	var subject topicpack.Subject
	if subjectName != "" {
		subject, err = topicpack.ParseSubject(subjectName)
		if err != nil {
			return nil, err
		}
	}

	gen, err := newGenerator(cmd.Context(), e, model)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return generateQuiz(cmd.Context(), e, gen, quizgen.Input{Subject: subject, Topic: topic, Count: count})
}

// generateQuiz fills in the learner's skill level, subject and recent
// mistakes before generating.
func generateQuiz(ctx context.Context, e *env, gen quizgen.Generator, in quizgen.Input) (*quizgen.Quiz, error) {
	p := e.coach.Profiles.Load(ctx)
	if in.Subject == "" {
		in.Subject, _ = p.Subject()
	}
	in.SkillLevel = p.SkillLevel
	in.RecentMistakes = e.coach.Stats.Load(ctx).Mistakes

	fmt.Fprintf(os.Stderr, "Generating %s quiz...\n", in.Topic)
	q, err := gen.Generate(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	return q, nil
}

func loadQuizFile(cmd *cobra.Command, path string) (*quizgen.Quiz, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open quiz: %w", err)
		}
		defer f.Close()
		r = f
	}
	return quizgen.LoadQuiz(r)
}

// readJSONArg returns args[0], or stdin when it is missing or "-".
func readJSONArg(cmd *cobra.Command, args []string) (json.RawMessage, error) {
	if len(args) > 0 && args[0] != "-" {
		return json.RawMessage(args[0]), nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return raw, nil
}

func printScore(w io.Writer, s tools.QuizScore) {
	fmt.Fprintf(w, "Score:     %d/%d (%d%%)\n", s.Correct, s.Total, s.Accuracy)
	if len(s.IncorrectQuestionIDs) > 0 {
		fmt.Fprintf(w, "Missed:    %v\n", s.IncorrectQuestionIDs)
	}
}

func init() {
	for _, c := range []*cobra.Command{quizTakeCmd, quizGenerateCmd} {
		c.Flags().String("topic", "", "Quiz topic")
		c.Flags().String("subject", "", "Subject (default: profile focus subject)")
		c.Flags().Int("count", quizgen.DefaultCount, fmt.Sprintf("Number of questions (max %d)", quizgen.MaxCount))
		c.Flags().String("model", "", "Override the LLM model")
	}
	quizTakeCmd.Flags().StringP("file", "f", "", `Quiz JSON file ("-" for stdin)`)
	_ = quizGenerateCmd.MarkFlagRequired("topic")

	jsonFlag(quizScoreCmd)
	quizScoreCmd.Flags().String("quiz", "", `Quiz JSON file to score against and record ("-" for stdin)`)

	quizCmd.AddCommand(quizTakeCmd)
	quizCmd.AddCommand(quizScoreCmd)
	quizCmd.AddCommand(quizGenerateCmd)
}
