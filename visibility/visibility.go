// Package visibility determines whether a video's enclosing scene is currently shown.
package visibility

import (
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
)

// Active reports whether el's enclosing scene is currently visible.
//
// The check is computed at call time, never cached: scene visibility can
// change between the moment an asynchronous media signal resolves and the
// moment it is handled. An element with no enclosing scene is inactive.
func Active(doc scene.Document, el media.Element) bool {
	sc := scene.Find(doc, el)
	if sc == nil {
		return false
	}
	return sc.Visible()
}
