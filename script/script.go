// Package script provides a bridge between the lifecycle engine and Lua-based trigger handler scripts.
package script

import (
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"

	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/util"
)

// Controls is the playback control surface exposed to Lua handlers.
type Controls interface {
	Play(video string)
	Pause(video string)
	Stop(video string)
	SeekToPercentage(video string, pct float64)
	ToggleMute(video string)
	IsPlaying(video string) bool
	ShowScene(id string)
}

// NopControls is a Controls implementation that ignores every call, for
// validating scripts outside a running world.
type NopControls struct{}

func (NopControls) Play(string)                      {}
func (NopControls) Pause(string)                     {}
func (NopControls) Stop(string)                      {}
func (NopControls) SeekToPercentage(string, float64) {}
func (NopControls) ToggleMute(string)                {}
func (NopControls) IsPlaying(string) bool            { return false }
func (NopControls) ShowScene(string)                 {}

// Handler is a loaded trigger handler script bound to one control surface.
type Handler struct {
	name  string
	state *lua.LState
}

// Load initializes a Handler by executing and validating a Lua trigger
// handler script.
func Load(path string, controls Controls) (*Handler, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerControls(state, controls)

	if err := preCompileAndLoad(state, path); err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	// Validation
	if state.GetGlobal(constant.OnTriggerFn).Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.OnTriggerFn, name)
	}

	log.Debugf("trigger handler %s loaded", name)
	return &Handler{name: name, state: state}, nil
}

// Name returns the handler's script basename.
func (h *Handler) Name() string {
	return h.name
}

// OnTrigger dispatches one fired trigger to the script, split into the base
// event and the video identity, empty for unqualified triggers.
func (h *Handler) OnTrigger(event, video string) error {
	return h.state.CallByParam(lua.P{
		Fn:      h.state.GetGlobal(constant.OnTriggerFn),
		NRet:    0,
		Protect: true,
	}, lua.LString(event), lua.LString(video))
}

// Close releases the underlying Lua state.
func (h *Handler) Close() {
	h.state.Close()
}

// registerControls exposes the control surface as Lua globals. Every binding
// follows the engine's silent no-op semantics for missing targets.
func registerControls(state *lua.LState, controls Controls) {
	state.SetGlobal("play", state.NewFunction(func(L *lua.LState) int {
		controls.Play(L.OptString(1, ""))
		return 0
	}))
	state.SetGlobal("pause", state.NewFunction(func(L *lua.LState) int {
		controls.Pause(L.OptString(1, ""))
		return 0
	}))
	state.SetGlobal("stop", state.NewFunction(func(L *lua.LState) int {
		controls.Stop(L.OptString(1, ""))
		return 0
	}))
	state.SetGlobal("seek", state.NewFunction(func(L *lua.LState) int {
		controls.SeekToPercentage(L.OptString(1, ""), float64(L.CheckNumber(2)))
		return 0
	}))
	state.SetGlobal("toggle_mute", state.NewFunction(func(L *lua.LState) int {
		controls.ToggleMute(L.OptString(1, ""))
		return 0
	}))
	state.SetGlobal("is_playing", state.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(controls.IsPlaying(L.OptString(1, ""))))
		return 1
	}))
	state.SetGlobal("show_scene", state.NewFunction(func(L *lua.LState) int {
		controls.ShowScene(L.CheckString(1))
		return 0
	}))
}
