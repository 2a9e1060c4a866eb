// Package tui provides the interactive scenario browser and replay interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/viper"

	"github.com/slideplay/slideplay/color"
	"github.com/slideplay/slideplay/icon"
	"github.com/slideplay/slideplay/key"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// replayChromeLines is the vertical space the replay view needs besides the
// trigger log.
const replayChromeLines = 8

func (b *statefulBubble) View() string {
	switch b.state {
	case scenariosState:
		return b.viewScenarios()
	case replayState:
		return b.viewReplay()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewScenarios() string {
	return listExtraPaddingStyle.Render(b.scenariosC.View())
}

func (b *statefulBubble) viewReplay() string {
	status := fmt.Sprintf("step %d/%d", b.stepIndex, len(b.scenario.Timeline))
	if b.replayDone {
		status += "  " + icon.Get(icon.Success) + " finished"
	}

	lines := []string{
		style.Title(b.scenario.Name),
		"",
		status,
	}

	if b.scenario.Description != "" {
		lines = append(lines, style.Faint(wordwrap.String(b.scenario.Description, b.width)))
	}

	if viper.GetBool(key.TUIShowAttributes) {
		lines = append(lines, "", b.viewAttributes())
	}

	lines = append(lines, "", b.logC.View())
	return b.renderLines(true, lines)
}

// viewAttributes renders per-scene playback state for the active world.
func (b *statefulBubble) viewAttributes() string {
	var out []string
	for _, sc := range b.world.Doc.Scenes() {
		marker := icon.Get(icon.Scene)
		if sc.Visible() {
			marker = style.Fg(color.Green)(marker)
		} else {
			marker = style.Faint(marker)
		}
		out = append(out, fmt.Sprintf("%s %s", marker, sc.ID()))

		for _, el := range sc.Videos() {
			out = append(out, "  "+describeVideo(el))
		}
	}
	return strings.Join(out, "\n")
}

func describeVideo(el media.Element) string {
	name := media.Name(el)
	if name == "" {
		name = "(unnamed)"
	}

	state := icon.Get(icon.Play)
	switch {
	case el.HasEnded():
		state = icon.Get(icon.Stop)
	case el.Paused():
		state = icon.Get(icon.Pause)
	}

	line := fmt.Sprintf("%s %s  %.1fs/%.1fs", state, name, el.Position().Seconds(), el.Duration().Seconds())
	if el.Muted() {
		line += "  muted"
	}
	return line
}

func (b *statefulBubble) viewError() string {
	errorBody := style.Fg(color.Red)(fmt.Sprintf("%v", b.lastError))

	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wordwrap.String(errorBody, b.width),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
