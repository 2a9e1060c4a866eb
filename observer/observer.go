// Package observer watches scene containers for visibility mutations and suspends videos in hidden scenes.
package observer

import (
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
)

// Observer is the per-document visibility safety net.
//
// Scenes can leave visibility through paths the host's explicit lifecycle
// hooks never cover, such as a scene hidden as a side effect of another
// scene's transition. The observer reacts to the presentation-level signal
// and converges hidden scenes to "stopped" independently of the
// coordinator's own unload path.
type Observer struct {
	doc     scene.Document
	table   *settings.Table
	suspend func(doc scene.Document, el media.Element)
	stop    func()
}

// Start begins observing doc. The suspend callback stops one video (pause,
// reset, detector cancellation); the observer adds source removal on top
// when the video resolves RemoveSources true.
func Start(doc scene.Document, table *settings.Table, suspend func(scene.Document, media.Element)) *Observer {
	o := &Observer{
		doc:     doc,
		table:   table,
		suspend: suspend,
	}
	o.stop = doc.ObserveVisibility(o.onVisibility)
	log.Debugf("scene observer started for document %s", doc.ID())
	return o
}

// Stop ends the observation. Required on document teardown; the handle is
// not cleaned up by garbage collection.
func (o *Observer) Stop() {
	if o.stop != nil {
		o.stop()
		o.stop = nil
	}
}

func (o *Observer) onVisibility(sc scene.Scene, visible bool) {
	// Entry handling belongs to the coordinator's own activation path.
	if visible {
		return
	}

	for _, el := range sc.Videos() {
		o.suspend(o.doc, el)
		if o.table.Resolve(el, settings.RemoveSources) {
			el.RemoveSources()
		}
	}
	log.Debugf("suspended videos in hidden scene %s", sc.ID())
}
