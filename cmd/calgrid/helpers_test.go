package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef"

// pinClock fixes today at 2025-01-15 for the duration of the test.
func pinClock(t *testing.T) {
	t.Helper()

	original := newClock
	now := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC).In(time.Local)
	newClock = func() func() time.Time {
		return func() time.Time { return now }
	}
	t.Cleanup(func() { newClock = original })
}

// writeConfig writes a configuration whose store lives in a temp directory.
func writeConfig(t *testing.T, mode string) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(`version: "1.0"
name: test
calendar:
  mode: %s
  week_start: monday
  max_date: "2025-01-20"
logging:
  level: error
storage:
  driver: file
  path: %s
server:
  token_secret: %s
`, mode, filepath.Join(dir, "selections.json"), testSecret)

	path := filepath.Join(dir, "calgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(args ...string) (string, string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
