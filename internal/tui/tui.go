// Package tui is the interactive form that hosts the UID field controller.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user saves or quits.
func Run(opts Options) (Result, error) {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newFormModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run form: %w", err)
	}
	fm, ok := final.(*formModel)
	if !ok {
		return Result{}, fmt.Errorf("run form: unexpected model %T", final)
	}
	return fm.result(), nil
}
