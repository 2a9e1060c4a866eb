// Package engine implements the lifecycle coordinator binding video playback to scene transitions.
package engine

import (
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/slideplay/slideplay/autoplay"
	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/notify"
	"github.com/slideplay/slideplay/observer"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
	"github.com/slideplay/slideplay/stall"
)

// Engine sequences listener attachment, autoplay, and teardown across scene
// transitions, and exposes the public control API consumed by host scripts.
//
// The host invokes the lifecycle hooks (DocumentLoaded, SceneLoaded,
// SceneWillShow, SceneUnloading, DocumentUnloaded) from its own transition
// callbacks. The engine holds no ambient global state: its defaults table is
// injected at construction.
type Engine struct {
	table    *settings.Table
	clk      clock.Clock
	notifier *notify.Notifier
	flags    *autoplay.Flags
	driver   *autoplay.Driver

	mu sync.Mutex
	// processed tracks elements whose native listeners are attached.
	// Entries live as long as the element; attachment is permanent.
	processed map[media.Element]struct{}
	// detectors holds the armed stall detector per playing element.
	detectors map[media.Element]*stall.Detector
	// ended latches elements whose current playback attempt has already
	// produced a Video Ended trigger, so a synthetic and a native end never
	// both fire for the same attempt.
	ended map[media.Element]struct{}
	// observers maps document identity to its running scene observer.
	observers map[string]*observer.Observer
}

// New constructs an Engine over the given defaults table. A nil table
// selects factory defaults; a nil clock selects the real-time clock.
func New(table *settings.Table, clk clock.Clock) *Engine {
	if table == nil {
		table = settings.NewTable()
	}
	if clk == nil {
		clk = clock.New()
	}

	e := &Engine{
		table:     table,
		clk:       clk,
		notifier:  notify.New(clk),
		flags:     autoplay.NewFlags(),
		processed: make(map[media.Element]struct{}),
		detectors: make(map[media.Element]*stall.Detector),
		ended:     make(map[media.Element]struct{}),
		observers: make(map[string]*observer.Observer),
	}
	e.driver = autoplay.NewDriver(table, e.flags)
	e.driver.OnReject = e.onPlayRejected
	return e
}

// Table returns the engine's defaults table, the configuration surface for
// callers holding process-wide defaults.
func (e *Engine) Table() *settings.Table {
	return e.table
}

// DocumentLoaded starts the per-document scene observer, at most one per
// document, when AutoObserver is enabled.
func (e *Engine) DocumentLoaded(doc scene.Document) {
	if !e.table.GetBool(settings.AutoObserver) {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.observers[doc.ID()]; ok {
		return
	}
	e.observers[doc.ID()] = observer.Start(doc, e.table, e.suspend)
}

// SceneLoaded strips native autoplay markers from a freshly instantiated
// scene's videos, once per instantiation, so the platform's own autoplay
// mechanism never races the engine.
func (e *Engine) SceneLoaded(doc scene.Document, sc scene.Scene) {
	for _, el := range sc.Videos() {
		el.RemoveAttr(constant.AttrNativeAutoplay)
	}
	log.Tracef("scene %s loaded in document %s", sc.ID(), doc.ID())
}

// SceneWillShow prepares a scene about to become active: native lifecycle
// listeners are attached to every video not yet processed, then the autoplay
// driver runs for every video. Attachment always completes before the play
// attempt is issued; both run synchronously from the host's callback.
func (e *Engine) SceneWillShow(doc scene.Document, sc scene.Scene) {
	for _, el := range sc.Videos() {
		if !e.markProcessed(el) {
			continue
		}
		el := el
		el.AddListener(media.EventPlaying, func() { e.onPlaying(doc, el) })
		el.AddListener(media.EventPause, func() { e.onPause(doc, el) })
		el.AddListener(media.EventEnded, func() { e.onEnded(doc, el) })
	}

	for _, el := range sc.Videos() {
		e.driver.Start(doc, el)
	}
}

// SceneUnloading stops every video in a scene the host is tearing down.
// Complementary to the observer's hidden-scene handling: both paths
// independently converge the scene's videos to "stopped".
func (e *Engine) SceneUnloading(doc scene.Document, sc scene.Scene) {
	for _, el := range sc.Videos() {
		e.suspend(doc, el)
	}
}

// DocumentUnloaded tears down the document's observer and drops all
// per-element state for its videos. Explicit: the association is not left to
// garbage collection.
func (e *Engine) DocumentUnloaded(doc scene.Document) {
	e.mu.Lock()
	o := e.observers[doc.ID()]
	delete(e.observers, doc.ID())
	e.mu.Unlock()

	if o != nil {
		o.Stop()
	}

	for _, sc := range doc.Scenes() {
		for _, el := range sc.Videos() {
			e.cancelDetector(el)
			e.flags.Forget(el)
			e.mu.Lock()
			delete(e.processed, el)
			delete(e.ended, el)
			e.mu.Unlock()
		}
	}
}

// suspend stops one video: detector cancelled, playback paused, position
// reset. Both the unload path and the observer path funnel through it.
func (e *Engine) suspend(_ scene.Document, el media.Element) {
	e.cancelDetector(el)
	e.flags.Forget(el)
	if !el.Paused() {
		el.Pause()
	}
	el.SetPosition(0)
}

// onPlaying handles the native playing signal. A pending failure flag from a
// rejected play attempt suppresses the started notification for that same
// attempt; the flag is cleared by this consultation.
func (e *Engine) onPlaying(doc scene.Document, el media.Element) {
	if e.flags.Consume(el) {
		log.Debugf("started notification suppressed after rejected play attempt")
		return
	}

	e.clearEnded(el)
	e.notifier.Notify(doc, notify.VideoStarted, el)

	// The detector arms on every playing transition; EndOnStall gates only
	// the synthetic end in onStall, not the stalled trigger itself.
	if timeout := e.table.ResolveDuration(el, settings.StallTimeout); timeout > 0 {
		d := stall.Watch(e.clk, el, timeout, func() { e.onStall(doc, el) })
		e.setDetector(el, d)
	}
}

func (e *Engine) onPause(doc scene.Document, el media.Element) {
	e.cancelDetector(el)
	e.notifier.Notify(doc, notify.VideoPaused, el)
}

func (e *Engine) onEnded(doc scene.Document, el media.Element) {
	e.cancelDetector(el)
	if e.markEnded(el) {
		e.notifier.Notify(doc, notify.VideoEnded, el)
	}
}

// onStall converts a stall timeout into the notification stream: a stalled
// trigger always, plus a synthetic end when EndOnStall resolves true.
func (e *Engine) onStall(doc scene.Document, el media.Element) {
	e.dropDetector(el)
	e.notifier.Notify(doc, notify.VideoStalled, el)

	if e.table.Resolve(el, settings.EndOnStall) && e.markEnded(el) {
		e.notifier.Notify(doc, notify.VideoEnded, el)
	}
}

// onPlayRejected folds an autoplay rejection into the notification stream.
// The failure flag is already recorded by the driver; when enabled, a
// distinct failure trigger fires, chained with a synthetic end so dependent
// sequencing is not blocked by a video that never plays.
func (e *Engine) onPlayRejected(doc scene.Document, el media.Element) {
	if !e.table.Resolve(el, settings.EndOnAutoplayFail) {
		return
	}
	e.notifier.Notify(doc, notify.VideoAutoplayFailed, el)
	if e.markEnded(el) {
		e.notifier.Notify(doc, notify.VideoEnded, el)
	}
}

// markProcessed enters el into the processed registry, reporting whether it
// was newly added.
func (e *Engine) markProcessed(el media.Element) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.processed[el]; ok {
		return false
	}
	e.processed[el] = struct{}{}
	return true
}

// markEnded latches the end of the current playback attempt, reporting
// whether it was newly latched.
func (e *Engine) markEnded(el media.Element) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ended[el]; ok {
		return false
	}
	e.ended[el] = struct{}{}
	return true
}

func (e *Engine) clearEnded(el media.Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.ended, el)
}

func (e *Engine) setDetector(el media.Element, d *stall.Detector) {
	e.mu.Lock()
	prev := e.detectors[el]
	e.detectors[el] = d
	e.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
}

func (e *Engine) cancelDetector(el media.Element) {
	e.mu.Lock()
	d := e.detectors[el]
	delete(e.detectors, el)
	e.mu.Unlock()

	if d != nil {
		d.Cancel()
	}
}

// dropDetector removes a detector that has already stopped on its own.
func (e *Engine) dropDetector(el media.Element) {
	e.mu.Lock()
	delete(e.detectors, el)
	e.mu.Unlock()
}
