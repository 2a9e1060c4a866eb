// Package tui provides the interactive scenario browser and replay interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Scenario, when non-empty, skips the browser and opens the replay view
	// on this scenario file.
	Scenario string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)

	if options.Scenario != "" {
		if err := bubble.startReplay(options.Scenario); err != nil {
			return err
		}
		bubble.newState(replayState)
	} else {
		if err := bubble.loadScenarios(); err != nil {
			return err
		}
		bubble.newState(scenariosState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
