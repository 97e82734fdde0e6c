package main

import (
	"github.com/spf13/cobra"
)

type showOptions struct {
	jsonOutput bool
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored selection of a calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the stored state as JSON")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, opts *showOptions) error {
	app, err := loadAppContext("show", rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	state, stored, err := app.LoadState(cmd.Context())
	if err != nil {
		return newCommandError("show", "loading stored selection", err, "Check storage.path permissions and try again.")
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), newStateJSON(state, ""))
	}

	renderState(cmd.OutOrStdout(), state, stored)
	return nil
}
