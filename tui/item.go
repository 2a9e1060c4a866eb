// Package tui provides the interactive scenario browser and replay interface.
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/slideplay/slideplay/scenario"
	"github.com/slideplay/slideplay/util"
)

// listItem adapts a loaded scenario file to the list component.
type listItem struct {
	path     string
	scenario *scenario.Scenario
}

func (l listItem) FilterValue() string {
	return l.scenario.Name
}

func (l listItem) Title() string {
	return l.scenario.Name
}

func (l listItem) Description() string {
	desc := fmt.Sprintf(
		"%s · %s · %s",
		filepath.Base(l.path),
		util.Quantify(len(l.scenario.Scenes), "scene", "scenes"),
		util.Quantify(len(l.scenario.Timeline), "step", "steps"),
	)

	if l.scenario.Description != "" {
		desc += " · " + l.scenario.Description
	}
	return desc
}
