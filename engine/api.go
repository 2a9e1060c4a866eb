// Package engine implements the lifecycle coordinator binding video playback to scene transitions.
package engine

import (
	"time"

	"github.com/samber/mo"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
)

// Public control API. Every operation resolves its target by stable identity
// anywhere in the document (first match wins) or, when the identity is
// empty, the first video of the active scene. Operations on a missing target
// are silent no-ops, never errors: callers are typically declarative action
// bindings with no error-handling path of their own.

// lookup resolves the target video for a control operation.
func (e *Engine) lookup(doc scene.Document, name string) media.Element {
	if name == "" {
		sc := doc.ActiveScene()
		if sc == nil {
			return nil
		}
		if videos := sc.Videos(); len(videos) > 0 {
			return videos[0]
		}
		return nil
	}

	for _, sc := range doc.Scenes() {
		for _, el := range sc.Videos() {
			if media.Name(el) == name {
				return el
			}
		}
	}
	return nil
}

// IsPlaying reports whether the target video is currently playing.
func (e *Engine) IsPlaying(doc scene.Document, name string) bool {
	el := e.lookup(doc, name)
	return el != nil && !el.Paused() && !el.HasEnded()
}

// Play issues a play attempt on the target video. Rejection is folded into
// the notification stream the same way an autoplay rejection is.
func (e *Engine) Play(doc scene.Document, name string) {
	el := e.lookup(doc, name)
	if el == nil {
		return
	}
	e.flags.Forget(el)
	el.Play(func(err error) {
		if err == nil {
			return
		}
		e.flags.Mark(el)
		e.onPlayRejected(doc, el)
	})
}

// Pause pauses the target video.
func (e *Engine) Pause(doc scene.Document, name string) {
	if el := e.lookup(doc, name); el != nil {
		el.Pause()
	}
}

// Stop pauses the target video and resets its position to the start.
func (e *Engine) Stop(doc scene.Document, name string) {
	if el := e.lookup(doc, name); el != nil {
		e.suspend(doc, el)
	}
}

// SetVolume sets the target video's volume. Values outside [0, 1] are
// ignored and the prior volume is preserved.
func (e *Engine) SetVolume(doc scene.Document, name string, volume float64) {
	el := e.lookup(doc, name)
	if el == nil || volume < 0 || volume > 1 {
		return
	}
	el.SetVolume(volume)
}

// SeekTo moves the target video to an absolute time in seconds. Requests
// outside [0, duration] are ignored.
func (e *Engine) SeekTo(doc scene.Document, name string, seconds float64) {
	el := e.lookup(doc, name)
	if el == nil {
		return
	}
	target := time.Duration(seconds * float64(time.Second))
	if target < 0 || target > el.Duration() {
		return
	}
	el.SetPosition(target)
}

// SeekToPercentage moves the target video to a percentage of its duration
// and returns the computed absolute time in seconds. Requests outside
// [0, 100] and missing targets yield None and leave the position unchanged.
func (e *Engine) SeekToPercentage(doc scene.Document, name string, pct float64) mo.Option[float64] {
	el := e.lookup(doc, name)
	if el == nil || pct < 0 || pct > 100 {
		return mo.None[float64]()
	}

	seconds := el.Duration().Seconds() * pct / 100
	el.SetPosition(time.Duration(seconds * float64(time.Second)))
	return mo.Some(seconds)
}

// ToggleMute flips the target video's mute flag.
func (e *Engine) ToggleMute(doc scene.Document, name string) {
	if el := e.lookup(doc, name); el != nil {
		el.SetMuted(!el.Muted())
	}
}

// Duration returns the target video's total duration in seconds, or None
// when no video matches.
func (e *Engine) Duration(doc scene.Document, name string) mo.Option[float64] {
	el := e.lookup(doc, name)
	if el == nil {
		return mo.None[float64]()
	}
	return mo.Some(el.Duration().Seconds())
}

// MuteAll mutes every video in the active scene.
func (e *Engine) MuteAll(doc scene.Document) {
	e.setMuteAll(doc, true)
}

// UnmuteAll unmutes every video in the active scene.
func (e *Engine) UnmuteAll(doc scene.Document) {
	e.setMuteAll(doc, false)
}

func (e *Engine) setMuteAll(doc scene.Document, muted bool) {
	sc := doc.ActiveScene()
	if sc == nil {
		return
	}
	for _, el := range sc.Videos() {
		el.SetMuted(muted)
	}
}
