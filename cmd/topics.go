package cmd

import (
	"fmt"

	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [subject]",
	Short: "List the curriculum topics of a subject",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		subjects := topicpack.AllSubjects()
		if len(args) == 1 {
			s, err := topicpack.ParseSubject(args[0])
			if err != nil {
				return err
			}
			subjects = []topicpack.Subject{s}
		}

		packs := make([]tools.TopicPack, 0, len(subjects))
		for _, s := range subjects {
			packs = append(packs, tools.GetStemTopicPack(s))
		}
		if wantJSON(cmd) {
			if len(packs) == 1 {
				return printJSON(out, packs[0])
			}
			return printJSON(out, packs)
		}

		for i, p := range packs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, p.Subject)
			rule(out, 40)
			for _, t := range p.Topics {
				fmt.Fprintf(out, "  %s\n", t)
			}
		}
		return nil
	},
}

func init() {
	jsonFlag(topicsCmd)
}
