package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

const (
	defaultCalendarName = "default"
	defaultConfigName   = "config.yaml"
)

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, store.DefaultDirName, defaultConfigName), nil
}

// resolveConfigPath returns the explicit path, else the default file when it exists,
// else "" so built-in defaults apply.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	path, err := defaultConfigPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}
