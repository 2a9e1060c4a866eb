// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Binding Function Identifiers - these constants define the required global function signatures for Lua binding scripts.
const (
	OnTriggerFn = "OnTrigger"
)

// ScriptTemplate is a Go text/template for scaffolding new Lua binding files.
const ScriptTemplate = `{{ $divider := repeat "-" (plus (max (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Invoked for every behavior trigger the engine fires.
-- @param event string Trigger name (e.g. "Video Ended")
-- @param video string Stable identity of the video, or "" if it has none
function {{ .OnTriggerFn }}(event, video)
end

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
