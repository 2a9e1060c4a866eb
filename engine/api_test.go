package engine

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/notify"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
	. "github.com/smartystreets/goconvey/convey"
)

// newControlStage builds a two-scene document: the visible first scene holds
// an anonymous video and the named "intro" video, the hidden second scene
// holds the named "outro" video.
func newControlStage() (*Engine, *scene.MemDocument, *media.SimElement, *media.SimElement, *media.SimElement) {
	eng := New(settings.NewTable(), nil)

	doc := scene.NewMemDocument("deck")
	first := scene.NewMemScene("first")
	second := scene.NewMemScene("second")
	doc.AddScene(first)
	doc.AddScene(second)

	anon := media.NewSim(8 * time.Second)
	first.AddVideo(anon)

	intro := media.NewSim(10 * time.Second)
	intro.SetAttr(constant.AttrVideoName, "intro")
	first.AddVideo(intro)

	outro := media.NewSim(20 * time.Second)
	outro.SetAttr(constant.AttrVideoName, "outro")
	second.AddVideo(outro)

	first.SetVisible(true)
	return eng, doc, anon, intro, outro
}

func TestControlLookup(t *testing.T) {
	Convey("Given the control API over a two-scene document", t, func() {
		eng, doc, anon, _, _ := newControlStage()

		Convey("An empty identity targets the first video of the active scene", func() {
			eng.SetVolume(doc, "", 0.5)
			So(anon.Volume(), ShouldEqual, 0.5)
		})

		Convey("An identity is found anywhere in the document", func() {
			So(eng.Duration(doc, "outro").MustGet(), ShouldEqual, 20)
		})

		Convey("A missing identity is a silent no-op", func() {
			eng.Play(doc, "credits")
			eng.Pause(doc, "credits")
			eng.Stop(doc, "credits")
			eng.ToggleMute(doc, "credits")

			So(eng.Duration(doc, "credits").IsAbsent(), ShouldBeTrue)
			So(eng.IsPlaying(doc, "credits"), ShouldBeFalse)
			So(doc.Triggers, ShouldBeEmpty)
		})

		Convey("With no active scene, empty-identity operations are no-ops", func() {
			doc.Scene("first").SetVisible(false)

			eng.Play(doc, "")
			So(eng.Duration(doc, "").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestControlPlayback(t *testing.T) {
	Convey("Given the control API over a two-scene document", t, func() {
		eng, doc, _, intro, _ := newControlStage()

		Convey("Play starts the target and reports it playing", func() {
			eng.Play(doc, "intro")

			So(eng.IsPlaying(doc, "intro"), ShouldBeTrue)
			So(lo.Count(doc.Triggers, notify.VideoStarted), ShouldEqual, 0)

			Convey("The playing signal is notified through attached listeners", func() {
				// Listener attachment happens on scene activation.
				intro.Pause()
				eng.SceneWillShow(doc, doc.Scene("first"))
				eng.Play(doc, "intro")

				So(lo.Count(doc.Triggers, notify.VideoStarted), ShouldEqual, 1)
			})
		})

		Convey("Pause pauses without resetting the position", func() {
			eng.Play(doc, "intro")
			intro.Advance(3 * time.Second)

			eng.Pause(doc, "intro")

			So(intro.Paused(), ShouldBeTrue)
			So(intro.Position(), ShouldEqual, 3*time.Second)
		})

		Convey("Stop pauses and rewinds to the start", func() {
			eng.Play(doc, "intro")
			intro.Advance(3 * time.Second)

			eng.Stop(doc, "intro")

			So(intro.Paused(), ShouldBeTrue)
			So(intro.Position(), ShouldEqual, 0)
		})

		Convey("A rejected Play folds into the notification stream", func() {
			eng.Table().Set(settings.EndOnAutoplayFail, true)
			eng.SceneWillShow(doc, doc.Scene("first"))
			doc.Triggers = nil
			intro.Policy = media.PlayRejected

			eng.Play(doc, "intro")

			So(lo.Count(doc.Triggers, notify.VideoAutoplayFailed), ShouldEqual, 1)
			So(lo.Count(doc.Triggers, notify.VideoEnded), ShouldEqual, 1)
		})

		Convey("IsPlaying is false for an ended video", func() {
			eng.Play(doc, "intro")
			intro.Advance(10 * time.Second)

			So(eng.IsPlaying(doc, "intro"), ShouldBeFalse)
		})
	})
}

func TestControlVolumeAndSeek(t *testing.T) {
	Convey("Given the control API over a two-scene document", t, func() {
		eng, doc, _, intro, outro := newControlStage()

		Convey("Volume accepts only the unit range", func() {
			eng.SetVolume(doc, "intro", 0.25)
			So(intro.Volume(), ShouldEqual, 0.25)

			eng.SetVolume(doc, "intro", 1.5)
			So(intro.Volume(), ShouldEqual, 0.25)

			eng.SetVolume(doc, "intro", -0.1)
			So(intro.Volume(), ShouldEqual, 0.25)
		})

		Convey("SeekTo accepts only positions inside the duration", func() {
			eng.SeekTo(doc, "intro", 4)
			So(intro.Position(), ShouldEqual, 4*time.Second)

			eng.SeekTo(doc, "intro", 11)
			So(intro.Position(), ShouldEqual, 4*time.Second)

			eng.SeekTo(doc, "intro", -1)
			So(intro.Position(), ShouldEqual, 4*time.Second)
		})

		Convey("SeekToPercentage maps the percentage onto the duration", func() {
			abs := eng.SeekToPercentage(doc, "intro", 50)

			So(abs.MustGet(), ShouldEqual, 5)
			So(intro.Position(), ShouldEqual, 5*time.Second)

			Convey("An out-of-range percentage yields None and moves nothing", func() {
				So(eng.SeekToPercentage(doc, "intro", 150).IsAbsent(), ShouldBeTrue)
				So(eng.SeekToPercentage(doc, "intro", -5).IsAbsent(), ShouldBeTrue)
				So(intro.Position(), ShouldEqual, 5*time.Second)
			})

			Convey("A missing identity yields None", func() {
				So(eng.SeekToPercentage(doc, "credits", 50).IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("ToggleMute flips the flag both ways", func() {
			eng.ToggleMute(doc, "intro")
			So(intro.Muted(), ShouldBeTrue)

			eng.ToggleMute(doc, "intro")
			So(intro.Muted(), ShouldBeFalse)
		})

		Convey("MuteAll and UnmuteAll cover the active scene only", func() {
			eng.MuteAll(doc)

			So(intro.Muted(), ShouldBeTrue)
			So(outro.Muted(), ShouldBeFalse)

			eng.UnmuteAll(doc)
			So(intro.Muted(), ShouldBeFalse)
		})
	})
}
