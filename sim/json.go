// Package sim provides the implementation for the application's non-interactive scenario replay mode.
package sim

import (
	"encoding/json"
	"io"
)

// Result is the structured outcome of a scenario replay.
type Result struct {
	// Scenario is the name of the replayed scenario.
	Scenario string `json:"scenario"`
	// Steps is the number of timeline steps actually applied.
	Steps int `json:"steps"`
	// Triggers is the ordered transcript of fired triggers.
	Triggers []Entry `json:"triggers"`
}

func writeJson(out io.Writer, result *Result) error {
	return json.NewEncoder(out).Encode(result)
}
