package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/calgrid/internal/tui"
)

func newPickCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick dates interactively and store the result on save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, rootFlags)
		},
	}

	return cmd
}

func runPick(cmd *cobra.Command, rootFlags *rootFlags) error {
	if !isTerminal(cmd.InOrStdin()) {
		return newCommandError("pick", "starting the picker", errors.New("not a terminal"), "Use 'calgrid select <YYYY-MM-DD>...' in non-interactive environments.")
	}

	app, err := loadAppContext("pick", rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	state, _, err := app.LoadState(cmd.Context())
	if err != nil {
		return newCommandError("pick", "loading stored selection", err, "Check storage.path permissions and try again.")
	}

	model := tui.NewModel(app.Calendar, app.Options, state.Selection, app.Builder, app.Log)
	final, err := tui.Run(cmd.Context(), model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return newCommandError("pick", "running the picker", err, "Retry in a terminal that supports full-screen programs.")
	}

	if !final.Confirmed() {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	state.Selection = final.Selection()
	state.Month = final.Month()
	if _, err := app.SaveState(cmd.Context(), state); err != nil {
		return newCommandError("pick", "saving selection", err, "Check disk space and file permissions, then retry.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Selected: %s\n", state.Selection)
	return nil
}

func isTerminal(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
