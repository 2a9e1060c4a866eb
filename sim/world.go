// Package sim provides the implementation for the application's non-interactive scenario replay mode.
package sim

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/viper"

	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/engine"
	"github.com/slideplay/slideplay/key"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scenario"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
)

// World is an instantiated scenario: an in-memory document wired to a
// lifecycle engine on a mock clock. Both the replay mode and the interactive
// browser drive a World one step at a time.
type World struct {
	Scenario *scenario.Scenario
	Engine   *engine.Engine
	Clock    *clock.Mock
	Doc      *scene.MemDocument

	elements map[*scene.MemScene][]*media.SimElement
	start    time.Time
}

// Entry is one fired trigger with its offset from world creation.
type Entry struct {
	AtMs int64  `json:"at_ms"`
	Name string `json:"name"`
}

// NewWorld instantiates a scenario against a fresh engine. The table carries
// the effective defaults; scenario-level overrides are merged on top.
func NewWorld(s *scenario.Scenario, table *settings.Table) (*World, error) {
	if table == nil {
		table = settings.NewTable()
	}
	table.Merge(s.Defaults)

	clk := clock.NewMock()
	w := &World{
		Scenario: s,
		Engine:   engine.New(table, clk),
		Clock:    clk,
		Doc:      scene.NewMemDocument(s.Name),
		elements: make(map[*scene.MemScene][]*media.SimElement),
		start:    clk.Now(),
	}

	for _, def := range s.Scenes {
		sc := scene.NewMemScene(def.ID)
		w.Doc.AddScene(sc)

		for _, vd := range def.Videos {
			el, err := buildElement(vd)
			if err != nil {
				return nil, fmt.Errorf("scene %q: %w", def.ID, err)
			}
			sc.AddVideo(el)
			w.elements[sc] = append(w.elements[sc], el)
		}
	}

	w.Engine.DocumentLoaded(w.Doc)
	for _, sc := range w.Doc.Scenes() {
		w.Engine.SceneLoaded(w.Doc, sc)
	}

	log.Debugf("world built for scenario %q with %d scenes", s.Name, len(s.Scenes))
	return w, nil
}

func buildElement(vd scenario.Video) (*media.SimElement, error) {
	policy, err := vd.PlayPolicy()
	if err != nil {
		return nil, err
	}

	el := media.NewSim(vd.Duration())
	el.Policy = policy
	el.FreezeAt = time.Duration(vd.FreezeAtMs) * time.Millisecond

	if vd.Name != "" {
		el.SetAttr(constant.AttrVideoName, vd.Name)
	}
	for name, value := range vd.Attrs {
		el.SetAttr(name, value)
	}
	for _, url := range vd.Sources {
		el.AddSource(media.Source{URL: url})
	}
	return el, nil
}

// ElapsedMs returns the simulated time since world creation in milliseconds.
func (w *World) ElapsedMs() int64 {
	return w.Clock.Now().Sub(w.start).Milliseconds()
}

// allElements returns every element in document scene order.
func (w *World) allElements() []*media.SimElement {
	var out []*media.SimElement
	for _, sc := range w.Doc.Scenes() {
		if ms, ok := sc.(*scene.MemScene); ok {
			out = append(out, w.elements[ms]...)
		}
	}
	return out
}

// element resolves a grant, reject, or finish target: by identity anywhere in
// the document, or the first video of the active scene when empty.
func (w *World) element(name string) *media.SimElement {
	if name == "" {
		if active, ok := w.Doc.ActiveScene().(*scene.MemScene); ok {
			if els := w.elements[active]; len(els) > 0 {
				return els[0]
			}
		}
		return nil
	}

	for _, el := range w.allElements() {
		if media.Name(el) == name {
			return el
		}
	}
	return nil
}

// stepDuration converts a step's millisecond count, falling back to the
// configured default step when the scenario omits it.
func stepDuration(ms int) time.Duration {
	if ms <= 0 {
		ms = viper.GetInt(key.SimStepMs)
	}
	return time.Duration(ms) * time.Millisecond
}

// ShowScene activates a scene the way a slide transition would: activation
// preparation first, then the visibility flip, then the deferred frame work.
// An unknown id is a no-op.
func (w *World) ShowScene(id string) {
	sc := w.Doc.Scene(id)
	if sc == nil {
		return
	}
	w.Engine.SceneWillShow(w.Doc, sc)
	w.Doc.ShowScene(id)
	w.Doc.RunFrames()
}

// Apply replays one timeline step against the world.
func (w *World) Apply(step scenario.Step) error {
	switch step.Verb {
	case scenario.VerbShow:
		if w.Doc.Scene(step.Scene) == nil {
			return fmt.Errorf("unknown scene %q", step.Scene)
		}
		w.ShowScene(step.Scene)

	case scenario.VerbHide:
		sc := w.Doc.Scene(step.Scene)
		if sc == nil {
			return fmt.Errorf("unknown scene %q", step.Scene)
		}
		sc.SetVisible(false)

	case scenario.VerbAdvance:
		d := stepDuration(step.Ms)
		for _, el := range w.allElements() {
			el.Advance(d)
		}
		w.Clock.Add(d)

	case scenario.VerbTick:
		w.Clock.Add(stepDuration(step.Ms))

	case scenario.VerbPlay:
		w.Engine.Play(w.Doc, step.Video)

	case scenario.VerbPause:
		w.Engine.Pause(w.Doc, step.Video)

	case scenario.VerbStop:
		w.Engine.Stop(w.Doc, step.Video)

	case scenario.VerbSeekPct:
		w.Engine.SeekToPercentage(w.Doc, step.Video, step.Pct)

	case scenario.VerbVolume:
		w.Engine.SetVolume(w.Doc, step.Video, step.Volume)

	case scenario.VerbMuteToggle:
		w.Engine.ToggleMute(w.Doc, step.Video)

	case scenario.VerbMuteAll:
		w.Engine.MuteAll(w.Doc)

	case scenario.VerbUnmuteAll:
		w.Engine.UnmuteAll(w.Doc)

	case scenario.VerbGrant:
		if el := w.element(step.Video); el != nil {
			el.GrantPendingPlay()
		}

	case scenario.VerbReject:
		if el := w.element(step.Video); el != nil {
			el.RejectPendingPlay()
		}

	case scenario.VerbFinish:
		if el := w.element(step.Video); el != nil {
			el.FinishPlayback()
		}

	case scenario.VerbUnload:
		w.Engine.DocumentUnloaded(w.Doc)

	default:
		return fmt.Errorf("unknown verb %q", step.Verb)
	}

	return nil
}
