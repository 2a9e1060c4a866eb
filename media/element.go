// Package media defines the boundary to playable video elements hosted in scene documents.
package media

import (
	"time"

	"github.com/slideplay/slideplay/constant"
)

// Event identifies a native lifecycle signal emitted by a media element.
type Event string

const (
	EventPlaying Event = "playing"
	EventPause   Event = "pause"
	EventEnded   Event = "ended"
)

// Source describes one decodable source descriptor attached to an element.
type Source struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// Element is an external, not-owned handle to a playable media resource.
//
// The engine never creates or destroys elements; it only configures and
// drives them. Play is fire-and-forget: success or rejection is reported
// asynchronously through the result callback, in no guaranteed order
// relative to the element's own native events.
type Element interface {
	// Attribute surface (string-valued overrides and identity).
	Attr(name string) (value string, ok bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	// Playback state.
	Paused() bool
	HasEnded() bool
	Position() time.Duration
	SetPosition(time.Duration)
	Duration() time.Duration

	// Audio and presentation flags.
	Volume() float64
	SetVolume(float64)
	Muted() bool
	SetMuted(bool)
	SetPlaysInline(bool)

	// Playback control. The result callback may be invoked synchronously
	// or after native events for the same attempt have already fired.
	Play(onResult func(err error))
	Pause()

	// Source descriptors. RemoveSources is irreversible without the host
	// re-adding sources externally.
	Sources() []Source
	RemoveSources()

	// AddListener attaches a native lifecycle listener. Attachment is
	// permanent for the life of the element.
	AddListener(Event, func())
}

// Name returns the stable identity of el, or "" when it carries none.
func Name(el Element) string {
	v, _ := el.Attr(constant.AttrVideoName)
	return v
}
