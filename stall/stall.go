// Package stall implements timer-based detection of playing videos whose position stops advancing.
package stall

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/media"
)

// Detector watches one video for stalled playback.
//
// It samples the play position at interval ticks. If a tick observes no
// advance since the prior sample while the video still reports itself as
// playing, the on-stall callback fires once and the detector stops. This is
// a heuristic: owners should cancel and re-arm the detector on native
// pause/play events rather than rely on polling alone.
type Detector struct {
	clk      clock.Clock
	el       media.Element
	interval time.Duration
	onStall  func()

	mu      sync.Mutex
	stopped bool
	lastPos time.Duration
	timer   *clock.Timer
}

// Watch arms a detector for el with the given sampling interval. The
// on-stall callback is invoked at most once, outside the detector's lock.
func Watch(clk clock.Clock, el media.Element, interval time.Duration, onStall func()) *Detector {
	if clk == nil {
		clk = clock.New()
	}

	d := &Detector{
		clk:      clk,
		el:       el,
		interval: interval,
		onStall:  onStall,
		lastPos:  el.Position(),
	}
	d.timer = clk.AfterFunc(interval, d.tick)
	return d
}

// Cancel stops the detector. A tick already scheduled becomes a no-op; the
// call is idempotent and safe after the detector has fired.
func (d *Detector) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Active reports whether the detector is still armed.
func (d *Detector) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped
}

func (d *Detector) tick() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	// Re-check current element state: the timer firing does not imply the
	// video is still in the state it was scheduled under.
	pos := d.el.Position()
	playing := !d.el.Paused() && !d.el.HasEnded()

	if playing && pos == d.lastPos {
		d.stopped = true
		onStall := d.onStall
		d.mu.Unlock()

		log.Debugf("stall detected at position %s", pos)
		if onStall != nil {
			onStall()
		}
		return
	}

	d.lastPos = pos
	d.timer = d.clk.AfterFunc(d.interval, d.tick)
	d.mu.Unlock()
}
