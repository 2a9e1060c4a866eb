// Package media defines the boundary to playable video elements hosted in scene documents.
package media

import (
	"errors"
	"time"
)

// ErrPlayRejected is the asynchronous rejection reported for a play attempt
// blocked by platform policy. It is an expected outcome, never a hard error.
var ErrPlayRejected = errors.New("media: play attempt rejected")

// PlayPolicy scripts how a SimElement resolves play attempts.
type PlayPolicy int

const (
	// PlayGranted resolves every play attempt successfully and starts playback.
	PlayGranted PlayPolicy = iota
	// PlayRejected resolves every play attempt with ErrPlayRejected.
	PlayRejected
	// PlayManual leaves the attempt pending until GrantPendingPlay or
	// RejectPendingPlay is called, allowing tests to order the resolution
	// relative to native events.
	PlayManual
)

// SimElement is an in-memory, scripted implementation of Element.
//
// It is the media analog of the swappable in-memory filesystem backend:
// position advances only through explicit Advance calls, play resolution
// follows the configured policy, and listeners fire synchronously. It is
// confined to the host loop and performs no locking of its own.
type SimElement struct {
	// Policy controls how play attempts resolve. Defaults to PlayGranted.
	Policy PlayPolicy

	// FreezeAt, when non-zero, stops the reported position from advancing
	// past this point while the element still reports itself as playing.
	// Used to simulate stalled playback.
	FreezeAt time.Duration

	attrs     map[string]string
	paused    bool
	ended     bool
	pos       time.Duration
	dur       time.Duration
	volume    float64
	muted     bool
	inline    bool
	sources   []Source
	listeners map[Event][]func()
	pending   func(error)
}

// NewSim constructs a paused SimElement with the given total duration.
func NewSim(duration time.Duration) *SimElement {
	return &SimElement{
		attrs:     make(map[string]string),
		paused:    true,
		dur:       duration,
		volume:    1,
		listeners: make(map[Event][]func()),
	}
}

func (s *SimElement) Attr(name string) (string, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

func (s *SimElement) SetAttr(name, value string) { s.attrs[name] = value }
func (s *SimElement) RemoveAttr(name string)     { delete(s.attrs, name) }

func (s *SimElement) Paused() bool            { return s.paused }
func (s *SimElement) HasEnded() bool          { return s.ended }
func (s *SimElement) Position() time.Duration { return s.pos }
func (s *SimElement) SetPosition(p time.Duration) {
	if p < 0 {
		p = 0
	}
	if s.dur > 0 && p > s.dur {
		p = s.dur
	}
	s.pos = p
}
func (s *SimElement) Duration() time.Duration { return s.dur }

func (s *SimElement) Volume() float64       { return s.volume }
func (s *SimElement) SetVolume(v float64)   { s.volume = v }
func (s *SimElement) Muted() bool           { return s.muted }
func (s *SimElement) SetMuted(m bool)       { s.muted = m }
func (s *SimElement) SetPlaysInline(i bool) { s.inline = i }

// PlaysInline reports the inline-playback flag, for assertions.
func (s *SimElement) PlaysInline() bool { return s.inline }

func (s *SimElement) Play(onResult func(error)) {
	switch s.Policy {
	case PlayRejected:
		if onResult != nil {
			onResult(ErrPlayRejected)
		}
	case PlayManual:
		s.pending = onResult
	default:
		s.beginPlayback()
		if onResult != nil {
			onResult(nil)
		}
	}
}

func (s *SimElement) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.emit(EventPause)
}

func (s *SimElement) Sources() []Source    { return s.sources }
func (s *SimElement) RemoveSources()       { s.sources = nil }
func (s *SimElement) AddSource(src Source) { s.sources = append(s.sources, src) }

func (s *SimElement) AddListener(e Event, fn func()) {
	s.listeners[e] = append(s.listeners[e], fn)
}

// GrantPendingPlay resolves a pending PlayManual attempt successfully.
// Playback begins and the playing event fires before the result callback,
// matching the common native ordering.
func (s *SimElement) GrantPendingPlay() {
	s.beginPlayback()
	if s.pending != nil {
		done := s.pending
		s.pending = nil
		done(nil)
	}
}

// RejectPendingPlay resolves a pending PlayManual attempt with ErrPlayRejected.
func (s *SimElement) RejectPendingPlay() {
	if s.pending != nil {
		done := s.pending
		s.pending = nil
		done(ErrPlayRejected)
	}
}

// BeginPlayback forces the element into the playing state and fires the
// playing event without resolving any pending attempt. Tests use it to model
// a native playing signal that arrives before the play resolution.
func (s *SimElement) BeginPlayback() { s.beginPlayback() }

// Advance moves the play position forward by d when the element is playing.
// Reaching the total duration finishes playback; a configured FreezeAt pins
// the position there while the element keeps reporting itself as playing.
func (s *SimElement) Advance(d time.Duration) {
	if s.paused || s.ended {
		return
	}

	next := s.pos + d
	if s.FreezeAt > 0 && next > s.FreezeAt {
		next = s.FreezeAt
	}

	if s.dur > 0 && next >= s.dur {
		s.pos = s.dur
		s.finishPlayback()
		return
	}
	s.pos = next
}

// FinishPlayback ends playback naturally, firing the ended event.
func (s *SimElement) FinishPlayback() { s.finishPlayback() }

func (s *SimElement) beginPlayback() {
	s.paused = false
	s.ended = false
	s.emit(EventPlaying)
}

func (s *SimElement) finishPlayback() {
	s.paused = true
	s.ended = true
	s.emit(EventEnded)
}

func (s *SimElement) emit(e Event) {
	for _, fn := range s.listeners[e] {
		fn()
	}
}
