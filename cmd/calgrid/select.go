package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/codec"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

type selectOptions struct {
	jsonOutput bool
	token      bool
}

func newSelectCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select <YYYY-MM-DD>...",
		Short: "Click days in order and store the resulting selection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, rootFlags, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the stored state as JSON")
	cmd.Flags().BoolVar(&opts.token, "token", false, "Also print a signed state token")

	return cmd
}

func runSelect(cmd *cobra.Command, rootFlags *rootFlags, args []string, opts *selectOptions) error {
	clicks := make([]calendar.Date, len(args))
	for i, arg := range args {
		d, err := calendar.ParseDate(arg)
		if err != nil {
			return newCommandError("select", fmt.Sprintf("parsing %q", arg), err, "Pass dates as YYYY-MM-DD, for example 2025-01-15.")
		}
		clicks[i] = d
	}

	app, err := loadAppContext("select", rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	var tokens *codec.Codec
	if opts.token {
		if tokens, err = app.Codec(); err != nil {
			return newCommandError("select", "preparing token codec", err, "Set server.token_secret (16 characters or more) in the configuration.")
		}
	}

	isDisabled := app.Options.Constraints.IsDisabled
	for _, clicked := range clicks {
		if isDisabled(clicked) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s: not available\n", clicked)
		}
	}

	state, err := app.UpdateState(cmd.Context(), func(state store.State) store.State {
		for _, clicked := range clicks {
			next := calendar.ResolveClick(state.Selection, clicked, isDisabled)
			app.Log.Click(clicked, state.Selection, next)
			state.Selection = next
		}
		state.Month = calendar.MonthOf(clicks[len(clicks)-1])
		return state
	})
	if err != nil {
		return newCommandError("select", "saving selection", err, "Check storage.path permissions and disk space, then retry.")
	}

	var token string
	if tokens != nil {
		token, err = tokens.Encode(codec.Token{Selection: state.Selection, Month: state.Month})
		if err != nil {
			return newCommandError("select", "encoding state token", err, "Retry without --token.")
		}
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), newStateJSON(state, token))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Selected: %s\n", state.Selection)
	if token != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Token:    %s\n", token)
	}
	return nil
}
