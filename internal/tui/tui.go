package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/worklog/internal/tracker"
)

// RunMenuTUI runs the interactive menu until the user exits. A storage
// failure ends the menu and is returned.
func RunMenuTUI(tr *tracker.Tracker) error {
	model := NewMenuModel(tr)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(MenuModel); ok {
		if m.err != nil {
			return m.err
		}
		fmt.Println(m.goodbye())
	}

	return nil
}
