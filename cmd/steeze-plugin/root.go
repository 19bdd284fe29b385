package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "steeze-plugin",
		Short:         "Run the hello execution unit",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newCallCommand(), newServeCommand())
	return root
}
