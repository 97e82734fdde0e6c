package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/codec"
	"github.com/alexisbeaulieu97/calgrid/internal/config"
	"github.com/alexisbeaulieu97/calgrid/internal/logger"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

var errNoTokenSecret = errors.New("server.token_secret is not set")

// AppContext bundles the services a command needs once the configuration is loaded.
type AppContext struct {
	Config   *config.Config
	Options  config.Options
	Log      *logger.Logger
	Store    store.Store
	Builder  calendar.Builder
	Calendar string
}

// newClock is replaced in tests to pin today.
var newClock = func() func() time.Time { return time.Now }

func loadAppContext(operation string, flags *rootFlags) (*AppContext, error) {
	path, err := resolveConfigPath(flags.configPath)
	if err != nil {
		return nil, newCommandError(operation, "locating configuration", err, "Pass --config with a readable file.")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, newCommandError(operation, "loading configuration", err, "Fix the reported field and try again.")
	}

	level := cfg.Logging.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Logging.HumanReadable})
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Use one of debug, info, warn or error for logging.level.")
	}

	opts, err := cfg.Calendar.Options()
	if err != nil {
		return nil, newCommandError(operation, "reading calendar options", err, "Check the calendar section of the configuration.")
	}

	st, err := store.Open(cfg.Storage, log)
	if err != nil {
		return nil, newCommandError(operation, "opening selection store", err, "Check storage.path permissions and try again.")
	}

	name := strings.TrimSpace(flags.calendar)
	if name == "" {
		name = defaultCalendarName
	}

	return &AppContext{
		Config:   cfg,
		Options:  opts,
		Log:      log.WithCalendar(name),
		Store:    st,
		Builder:  calendar.Builder{Now: newClock(), Location: time.Local},
		Calendar: name,
	}, nil
}

// Close releases the store.
func (app *AppContext) Close() error {
	return app.Store.Close()
}

// LoadState returns the stored state of the active calendar. Missing state and
// state saved under another selection mode both come back empty for the
// configured mode.
func (app *AppContext) LoadState(ctx context.Context) (store.State, bool, error) {
	state, ok, err := app.Store.Get(ctx, app.Calendar)
	if err != nil {
		return store.State{}, false, err
	}
	if !ok {
		state = store.State{Calendar: app.Calendar}
	}
	if !ok || state.Selection.Mode() != app.Options.Mode {
		state.Selection = calendar.EmptySelection(app.Options.Mode)
	}
	return state, ok, nil
}

// SaveState stamps and persists state for the active calendar.
func (app *AppContext) SaveState(ctx context.Context, state store.State) (store.State, error) {
	state.Calendar = app.Calendar
	state.UpdatedAt = app.Builder.Now().UTC()
	if state.Month == (calendar.Month{}) {
		state.Month = calendar.InitialMonth(app.Options.DefaultMonth, state.Selection, app.Builder.Today())
	}
	if err := app.Store.Put(ctx, state); err != nil {
		return store.State{}, err
	}
	return state, nil
}

// UpdateState applies fn to the active calendar's state (read as LoadState
// does) and stores the result in one atomic step.
func (app *AppContext) UpdateState(ctx context.Context, fn func(state store.State) store.State) (store.State, error) {
	return app.Store.Update(ctx, app.Calendar, func(current store.State, ok bool) (store.State, error) {
		if !ok || current.Selection.Mode() != app.Options.Mode {
			current.Selection = calendar.EmptySelection(app.Options.Mode)
		}
		next := fn(current)
		next.UpdatedAt = app.Builder.Now().UTC()
		if next.Month == (calendar.Month{}) {
			next.Month = calendar.InitialMonth(app.Options.DefaultMonth, next.Selection, app.Builder.Today())
		}
		return next, nil
	})
}

// Codec returns the token codec keyed by server.token_secret.
func (app *AppContext) Codec() (*codec.Codec, error) {
	if app.Config.Server.TokenSecret == "" {
		return nil, errNoTokenSecret
	}
	return codec.New([]byte(app.Config.Server.TokenSecret))
}
