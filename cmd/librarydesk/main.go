package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "librarydesk",
		Short:         "Role-based web console for the library backend",
		SilenceUsage:  true,
	}
	root.AddCommand(newServeCmd(), newLoginCmd())
	return root
}
