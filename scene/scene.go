// Package scene defines the boundary to the host presentation runtime: documents, scene containers, and trigger dispatch.
package scene

import "github.com/slideplay/slideplay/media"

// Scene is a presentation container that is shown and hidden as a unit.
type Scene interface {
	ID() string
	Visible() bool
	Videos() []media.Element
}

// Document is the handle to one host presentation document.
//
// OnNextFrame schedules a callback for the host's next layout boundary;
// play attempts issued before an element is laid out are unreliable, so the
// autoplay driver defers through it. ObserveVisibility registers a callback
// for presentation-level visibility mutations, including those no explicit
// lifecycle hook covers.
type Document interface {
	ID() string
	Scenes() []Scene
	// ActiveScene returns the currently visible scene, or nil.
	ActiveScene() Scene
	// FireTrigger dispatches a named behavior trigger to the host's own
	// action-binding system.
	FireTrigger(name string)
	OnNextFrame(fn func())
	ObserveVisibility(fn func(sc Scene, visible bool)) (stop func())
}

// Refresher is an optional document capability for hosts with reactive
// content that should be re-evaluated after lifecycle triggers.
type Refresher interface {
	RequestRefresh()
}

// Find returns the scene in doc enclosing el, or nil when the element is
// orphaned. Orphaned elements are treated as inactive everywhere.
func Find(doc Document, el media.Element) Scene {
	for _, sc := range doc.Scenes() {
		for _, v := range sc.Videos() {
			if v == el {
				return sc
			}
		}
	}
	return nil
}
