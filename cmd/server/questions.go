package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/HammerMeetNail/dailycheck/internal/journal"
	"github.com/HammerMeetNail/dailycheck/internal/models"
)

type questionsOptions struct {
	Active   bool
	Category string
}

func (o *questionsOptions) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.BoolVarP(&o.Active, "active", "a", false, "only list questions enabled by default")
	flagSet.StringVar(&o.Category, "category", "", "only list one category, e.g. DIET")
}

func newQuestionsCommand() *cobra.Command {
	opts := &questionsOptions{}
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the journal question catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printQuestions(cmd.OutOrStdout(), opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func printQuestions(out io.Writer, opts *questionsOptions) error {
	if opts.Category != "" && !models.Category(opts.Category).Valid() {
		return fmt.Errorf("unknown category %q", opts.Category)
	}

	store := journal.NewQuestionStore(models.DefaultCatalog())
	questions := store.All()
	if opts.Active {
		questions = store.Active()
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACTIVE\tCATEGORY\tTITLE")
	for _, q := range questions {
		if opts.Category != "" && string(q.Category) != opts.Category {
			continue
		}
		active := ""
		if q.IsActive {
			active = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.ID, active, q.Category, q.Title)
	}
	return w.Flush()
}
