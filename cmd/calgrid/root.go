package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
	calendar   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "calgrid",
		Short:         "calgrid builds month grids and keeps date selections",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (default ~/.calgrid/config.yaml when present)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.calendar, "calendar", defaultCalendarName, "Name of the stored calendar to act on")

	cmd.AddCommand(newMonthCmd(flags))
	cmd.AddCommand(newSelectCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newClearCmd(flags))
	cmd.AddCommand(newPickCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
