// Package script provides a bridge between the lifecycle engine and Lua-based trigger handler scripts.
package script

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/slideplay/slideplay/filesystem"
)

var bytecodeCache sync.Map

// preCompileAndLoad executes a Lua script within the provided LState,
// utilizing a bytecode cache to minimize compilation overhead when the same
// handler is loaded into several states.
func preCompileAndLoad(state *lua.LState, scriptPath string) error {
	if cachedProto, exists := bytecodeCache.Load(scriptPath); exists {
		fn := state.NewFunctionFromProto(cachedProto.(*lua.FunctionProto))
		state.Push(fn)
		return state.PCall(0, lua.MultRet, nil)
	}

	file, err := filesystem.API().Open(scriptPath)
	if err != nil {
		return err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, scriptPath)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, scriptPath)
	if err != nil {
		return err
	}

	bytecodeCache.Store(scriptPath, proto)

	fn := state.NewFunctionFromProto(proto)
	state.Push(fn)
	return state.PCall(0, lua.MultRet, nil)
}
