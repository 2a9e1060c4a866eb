// Package tui provides the interactive scenario browser and replay interface.
package tui

type state int

const (
	scenariosState state = iota
	replayState
	errorState
)
