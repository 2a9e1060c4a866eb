// Package scene defines the boundary to the host presentation runtime: documents, scene containers, and trigger dispatch.
package scene

import "github.com/slideplay/slideplay/media"

// MemScene is an in-memory Scene used by tests and the scenario simulator.
type MemScene struct {
	id      string
	visible bool
	doc     *MemDocument
	videos  []media.Element
}

// NewMemScene constructs a hidden scene with the given identifier.
func NewMemScene(id string) *MemScene {
	return &MemScene{id: id}
}

func (s *MemScene) ID() string              { return s.id }
func (s *MemScene) Visible() bool           { return s.visible }
func (s *MemScene) Videos() []media.Element { return s.videos }

// AddVideo attaches a video element to the scene.
func (s *MemScene) AddVideo(el media.Element) {
	s.videos = append(s.videos, el)
}

// SetVisible flips the scene's presentation state and notifies the owning
// document's visibility observers on a true transition.
func (s *MemScene) SetVisible(visible bool) {
	if s.visible == visible {
		return
	}
	s.visible = visible
	if s.doc != nil {
		s.doc.notifyVisibility(s, visible)
	}
}

// MemDocument is an in-memory Document used by tests and the scenario
// simulator. Frame callbacks queue until RunFrames is called; fired triggers
// accumulate in order and optionally flow through OnTrigger.
type MemDocument struct {
	id        string
	scenes    []*MemScene
	frames    []func()
	observers map[int]func(Scene, bool)
	nextObs   int

	// Triggers is the ordered transcript of fired behavior triggers.
	Triggers []string

	// OnTrigger, when set, is invoked for every fired trigger after it is
	// recorded in Triggers.
	OnTrigger func(name string)

	// Refreshes counts debounced reactive-content refresh requests.
	Refreshes int
}

// NewMemDocument constructs an empty document with the given identifier.
func NewMemDocument(id string) *MemDocument {
	return &MemDocument{
		id:        id,
		observers: make(map[int]func(Scene, bool)),
	}
}

func (d *MemDocument) ID() string { return d.id }

func (d *MemDocument) Scenes() []Scene {
	out := make([]Scene, len(d.scenes))
	for i, s := range d.scenes {
		out[i] = s
	}
	return out
}

// ActiveScene returns the first visible scene, or nil.
func (d *MemDocument) ActiveScene() Scene {
	for _, s := range d.scenes {
		if s.visible {
			return s
		}
	}
	return nil
}

// AddScene attaches a scene to the document.
func (d *MemDocument) AddScene(s *MemScene) {
	s.doc = d
	d.scenes = append(d.scenes, s)
}

// Scene returns the scene with the given identifier, or nil.
func (d *MemDocument) Scene(id string) *MemScene {
	for _, s := range d.scenes {
		if s.id == id {
			return s
		}
	}
	return nil
}

// ShowScene makes the named scene the active one, hiding every other scene
// first, the way slide transitions hide the outgoing scene as a side effect
// of showing the incoming one.
func (d *MemDocument) ShowScene(id string) {
	for _, s := range d.scenes {
		if s.id != id {
			s.SetVisible(false)
		}
	}
	if target := d.Scene(id); target != nil {
		target.SetVisible(true)
	}
}

func (d *MemDocument) FireTrigger(name string) {
	d.Triggers = append(d.Triggers, name)
	if d.OnTrigger != nil {
		d.OnTrigger(name)
	}
}

func (d *MemDocument) OnNextFrame(fn func()) {
	d.frames = append(d.frames, fn)
}

// RunFrames drains the pending frame queue. Callbacks scheduled while
// draining run in the same pass.
func (d *MemDocument) RunFrames() {
	for len(d.frames) > 0 {
		pending := d.frames
		d.frames = nil
		for _, fn := range pending {
			fn()
		}
	}
}

func (d *MemDocument) ObserveVisibility(fn func(Scene, bool)) (stop func()) {
	id := d.nextObs
	d.nextObs++
	d.observers[id] = fn
	return func() {
		delete(d.observers, id)
	}
}

func (d *MemDocument) RequestRefresh() {
	d.Refreshes++
}

func (d *MemDocument) notifyVisibility(s *MemScene, visible bool) {
	for _, fn := range d.observers {
		fn(s, visible)
	}
}
