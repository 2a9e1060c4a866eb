// Package autoplay drives playback attempts for eligible videos on scene entry.
package autoplay

import (
	"sync"

	"github.com/slideplay/slideplay/media"
)

// Flags records videos whose most recent play attempt was rejected.
//
// It is the synchronization device between two independently ordered
// asynchronous signals: a play rejection writes the flag, and the handler of
// the next native playing event consumes it to suppress a misleading
// "Video Started" notification for the same attempt.
type Flags struct {
	mu  sync.Mutex
	set map[media.Element]struct{}
}

// NewFlags constructs an empty flag table.
func NewFlags() *Flags {
	return &Flags{set: make(map[media.Element]struct{})}
}

// Mark records a rejected attempt for el.
func (f *Flags) Mark(el media.Element) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set[el] = struct{}{}
}

// Consume reports whether a rejection was recorded for el and clears it.
// The flag is consumed by whichever signal observes it first.
func (f *Flags) Consume(el media.Element) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.set[el]
	delete(f.set, el)
	return ok
}

// Forget drops any recorded flag for el without consulting it.
func (f *Flags) Forget(el media.Element) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.set, el)
}
