// Package tui provides the interactive scenario browser and replay interface.
package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case scenariosState:
		return b.updateScenarios(msg)
	case replayState:
		return b.updateReplay(msg)
	case errorState:
		return b.updateError(msg)
	default:
		return b, nil
	}
}

func (b *statefulBubble) updateScenarios(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.scenariosC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.scenariosC.SelectedItem().(listItem)
			if !ok {
				return b, nil
			}
			if err := b.startReplay(item.path); err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.newState(replayState)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.scenariosC, cmd = b.scenariosC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.step):
			b.applyStep()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.runAll):
			b.runToEnd()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.restart):
			if err := b.startReplay(b.scenarioPath); err != nil {
				b.raiseError(err)
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.logC, cmd = b.logC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}
