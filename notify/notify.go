// Package notify maps raw lifecycle signals to named behavior triggers on the host document.
package notify

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/visibility"
)

// Emitted behavior trigger names. Each is optionally suffixed with
// " {identity}" when the video carries a stable identity.
const (
	VideoStarted        = "Video Started"
	VideoPaused         = "Video Paused"
	VideoEnded          = "Video Ended"
	VideoStalled        = "Video Stalled"
	VideoAutoplayFailed = "Video Autoplay Failed"
)

// RefreshDebounce is the settle window for reactive-content refresh requests.
const RefreshDebounce = 150 * time.Millisecond

// Notifier converts lifecycle signals into behavior triggers, gated by scene
// visibility. Dropped notifications are not resent later.
type Notifier struct {
	clk clock.Clock

	mu       sync.Mutex
	debounce map[string]*clock.Timer
}

// New constructs a Notifier on the given clock. A nil clock selects the
// real-time clock.
func New(clk clock.Clock) *Notifier {
	if clk == nil {
		clk = clock.New()
	}
	return &Notifier{
		clk:      clk,
		debounce: make(map[string]*clock.Timer),
	}
}

// Notify fires the base trigger named event and, when the video carries a
// stable identity, the identity-qualified trigger, in that order. It is a
// no-op when the video's scene is not currently visible. At most one base
// and one qualified trigger fire per call.
func (n *Notifier) Notify(doc scene.Document, event string, el media.Element) {
	if !visibility.Active(doc, el) {
		log.Tracef("trigger %q dropped: video not in the active scene", event)
		return
	}

	doc.FireTrigger(event)
	if name := media.Name(el); name != "" {
		doc.FireTrigger(event + " " + name)
	}
	log.Debugf("trigger %q fired on document %s", event, doc.ID())

	if r, ok := doc.(scene.Refresher); ok {
		n.scheduleRefresh(doc.ID(), r)
	}
}

// scheduleRefresh coalesces refresh requests per document within the
// debounce window.
func (n *Notifier) scheduleRefresh(docID string, r scene.Refresher) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.debounce[docID]; ok {
		t.Reset(RefreshDebounce)
		return
	}

	n.debounce[docID] = n.clk.AfterFunc(RefreshDebounce, func() {
		n.mu.Lock()
		delete(n.debounce, docID)
		n.mu.Unlock()
		r.RequestRefresh()
	})
}
