package history

import (
	"fmt"
	"time"

	"github.com/slideplay/slideplay/sim"
	"github.com/slideplay/slideplay/util"
)

// SavedRun represents a single scenario replay preserved in the run history.
type SavedRun struct {
	Scenario string      `json:"scenario"`
	Path     string      `json:"path"`
	Steps    int         `json:"steps"`
	Triggers []sim.Entry `json:"triggers"`
	RanAt    time.Time   `json:"ran_at"`
}

func (s *SavedRun) encode() string {
	return fmt.Sprintf("%s (%s)", s.Scenario, s.Path)
}

func (s *SavedRun) String() string {
	return fmt.Sprintf("%s : %d steps, %s", s.Scenario, s.Steps, util.Quantify(len(s.Triggers), "trigger", "triggers"))
}

func newSavedRun(path string, result *sim.Result) *SavedRun {
	return &SavedRun{
		Scenario: result.Scenario,
		Path:     path,
		Steps:    result.Steps,
		Triggers: result.Triggers,
		RanAt:    time.Now(),
	}
}
