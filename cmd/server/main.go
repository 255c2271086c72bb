package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/dailycheck/internal/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "dailycheck",
		Short:         "Daily journal check-in API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCommand()
	root.AddCommand(serve, newQuestionsCommand())
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	if err := root.Execute(); err != nil {
		logging.Error("Application error", logging.Fields{"error": err})
		os.Exit(1)
	}
}
