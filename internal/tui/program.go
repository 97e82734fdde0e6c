package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the picker until the user saves or quits and returns the final model.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, fmt.Errorf("run picker: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return m, fmt.Errorf("run picker: unexpected model %T", final)
	}
	return result, nil
}
