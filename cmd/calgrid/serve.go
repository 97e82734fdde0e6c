package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/calgrid/internal/api"
	"github.com/alexisbeaulieu97/calgrid/internal/codec"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	listen string
}

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve month grids and selections over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "Address to listen on (default server.listen)")

	return cmd
}

func runServe(cmd *cobra.Command, rootFlags *rootFlags, opts *serveOptions) error {
	app, err := loadAppContext("serve", rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	tokens, err := app.Codec()
	if err != nil {
		app.Log.Warn("server.token_secret is not set; tokens will not survive a restart")
		if tokens, err = codec.NewRandom(); err != nil {
			return newCommandError("serve", "preparing token codec", err, "Set server.token_secret in the configuration.")
		}
	}

	listen := opts.listen
	if listen == "" {
		listen = app.Config.Server.Listen
	}

	handler := api.NewHandler(app.Store, tokens, app.Options, app.Builder, app.Log)
	server := api.New(handler, app.Log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			app.Log.Error(err, "shutdown failed")
		}
	}()

	app.Log.WithFields(map[string]any{"listen": listen}).Info("serving")
	if err := server.Listen(listen); err != nil {
		return newCommandError("serve", "listening on "+listen, err, "Pick a free address with --listen.")
	}
	return nil
}
