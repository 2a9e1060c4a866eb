// Package sim provides the implementation for the application's non-interactive scenario replay mode.
package sim

import (
	"github.com/slideplay/slideplay/script"
)

// Controls returns the script control surface bound to this world, for
// trigger handlers that steer playback and scene transitions.
func (w *World) Controls() script.Controls {
	return worldControls{w}
}

type worldControls struct {
	w *World
}

func (c worldControls) Play(video string) {
	c.w.Engine.Play(c.w.Doc, video)
}

func (c worldControls) Pause(video string) {
	c.w.Engine.Pause(c.w.Doc, video)
}

func (c worldControls) Stop(video string) {
	c.w.Engine.Stop(c.w.Doc, video)
}

func (c worldControls) SeekToPercentage(video string, pct float64) {
	c.w.Engine.SeekToPercentage(c.w.Doc, video, pct)
}

func (c worldControls) ToggleMute(video string) {
	c.w.Engine.ToggleMute(c.w.Doc, video)
}

func (c worldControls) IsPlaying(video string) bool {
	return c.w.Engine.IsPlaying(c.w.Doc, video)
}

func (c worldControls) ShowScene(id string) {
	c.w.ShowScene(id)
}
