package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

func newClearCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the stored selection to empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, rootFlags)
		},
	}

	return cmd
}

func runClear(cmd *cobra.Command, rootFlags *rootFlags) error {
	app, err := loadAppContext("clear", rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	_, err = app.UpdateState(cmd.Context(), func(state store.State) store.State {
		state.Selection = calendar.EmptySelection(app.Options.Mode)
		return state
	})
	if err != nil {
		return newCommandError("clear", "saving selection", err, "Check storage.path permissions and disk space, then retry.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleared calendar '%s'\n", app.Calendar)
	return nil
}
