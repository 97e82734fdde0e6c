// Package store persists the selection state hosts keep for named calendars.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/config"
	"github.com/alexisbeaulieu97/calgrid/internal/logger"
	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

const (
	DefaultDirName  = ".calgrid"
	DefaultFileName = "selections.json"
	DefaultDBName   = "calgrid.db"
)

var errEmptyName = errors.New("calendar name is required")

// State is what a host remembers about one calendar between sessions.
type State struct {
	Calendar  string             `json:"calendar"`
	Selection calendar.Selection `json:"selection"`
	Month     calendar.Month     `json:"month"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// UpdateFunc receives the stored state of a calendar (ok is false when there is
// none) and returns the state to store in its place.
type UpdateFunc func(current State, ok bool) (State, error)

// Store reads and writes calendar state by name.
type Store interface {
	Get(ctx context.Context, name string) (State, bool, error)
	Put(ctx context.Context, state State) error
	// Update is an atomic read-modify-write of one calendar. It returns the
	// state as stored.
	Update(ctx context.Context, name string, fn UpdateFunc) (State, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]State, error)
	Close() error
}

// Open returns the store selected by the storage configuration. log receives
// the SQL driver's warnings and may be nil.
func Open(cfg config.Storage, log *logger.Logger) (Store, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "" {
		driver = config.DriverFile
	}

	path, err := expandHome(cfg.Path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = DefaultPath(driver); err != nil {
			return nil, err
		}
	}

	switch driver {
	case config.DriverFile:
		return NewFileStore(path)
	case config.DriverSQLite:
		return NewSQLStore(path, log)
	default:
		return nil, calerrors.NewStoreError("", "open", fmt.Errorf("unknown storage driver %q", cfg.Driver))
	}
}

// DefaultPath returns ~/.calgrid/selections.json or ~/.calgrid/calgrid.db.
func DefaultPath(driver string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", calerrors.NewStoreError("", "resolve home directory", err)
	}

	name := DefaultFileName
	if driver == config.DriverSQLite {
		name = DefaultDBName
	}
	return filepath.Join(home, DefaultDirName, name), nil
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", calerrors.NewStoreError("", "resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func prepare(state State, now time.Time) (State, error) {
	state.Calendar = strings.TrimSpace(state.Calendar)
	if state.Calendar == "" {
		return State{}, calerrors.NewStoreError("", "put", errEmptyName)
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = now
	}
	if state.Month == (calendar.Month{}) {
		state.Month = calendar.InitialMonth(nil, state.Selection, calendar.DateOf(now))
	}
	state.UpdatedAt = state.UpdatedAt.UTC()
	return state, nil
}
