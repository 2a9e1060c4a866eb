// Package autoplay drives playback attempts for eligible videos on scene entry.
package autoplay

import (
	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
)

// Driver issues deferred play attempts with the mute/inline preconditions
// platforms require for autoplay eligibility.
type Driver struct {
	table *settings.Table
	flags *Flags

	// OnReject is invoked after a play attempt resolves with a rejection and
	// the failure flag has been recorded. The coordinator uses it to fold
	// the rejection into the notification stream.
	OnReject func(doc scene.Document, el media.Element)
}

// NewDriver constructs a Driver resolving against table and recording
// rejected attempts in flags.
func NewDriver(table *settings.Table, flags *Flags) *Driver {
	return &Driver{table: table, flags: flags}
}

// Start prepares one video for a scene activation and schedules its play
// attempt. Mute and inline flags are applied before the attempt is
// scheduled: platforms gate autoplay eligibility on these flags being set at
// or before the play call, not after. The attempt itself is deferred to the
// next frame boundary so it never targets an element that is not laid out
// yet.
func (d *Driver) Start(doc scene.Document, el media.Element) {
	if d.table.Resolve(el, settings.AutoMute) {
		el.SetMuted(true)
	}
	if d.table.Resolve(el, settings.AutoPlaysInline) {
		el.SetPlaysInline(true)
	}

	doc.OnNextFrame(func() {
		if !d.table.Resolve(el, settings.AutoPlay) {
			return
		}

		// Hand playback timing unambiguously to the engine.
		el.RemoveAttr(constant.AttrNativeAutoplay)
		el.SetPosition(0)

		// A flag left over from an earlier, abandoned attempt must not
		// suppress this attempt's started notification.
		d.flags.Forget(el)

		el.Play(func(err error) {
			if err == nil {
				return
			}
			log.Debugf("autoplay rejected for %q: %v", media.Name(el), err)
			d.flags.Mark(el)
			if d.OnReject != nil {
				d.OnReject(doc, el)
			}
		})
	})
}
