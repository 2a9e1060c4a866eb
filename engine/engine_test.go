package engine

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/notify"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
	. "github.com/smartystreets/goconvey/convey"
)

// newStage builds a document with one scene holding one named video, wired to
// an engine on a mock clock.
func newStage(policy media.PlayPolicy) (*Engine, *clock.Mock, *scene.MemDocument, *scene.MemScene, *media.SimElement) {
	clk := clock.NewMock()
	eng := New(settings.NewTable(), clk)

	doc := scene.NewMemDocument("deck")
	sc := scene.NewMemScene("intro-scene")
	doc.AddScene(sc)

	el := media.NewSim(10 * time.Second)
	el.Policy = policy
	el.SetAttr(constant.AttrVideoName, "intro")
	el.AddSource(media.Source{URL: "intro.mp4"})
	sc.AddVideo(el)

	eng.DocumentLoaded(doc)
	return eng, clk, doc, sc, el
}

func TestEngineLifecycle(t *testing.T) {
	Convey("Given an engine managing a one-scene document", t, func() {
		eng, clk, doc, sc, el := newStage(media.PlayGranted)

		Convey("Scene activation mutes, inlines, and defers the play attempt", func() {
			eng.SceneWillShow(doc, sc)

			So(el.Muted(), ShouldBeTrue)
			So(el.PlaysInline(), ShouldBeTrue)
			So(el.Paused(), ShouldBeTrue)

			sc.SetVisible(true)
			doc.RunFrames()

			So(el.Paused(), ShouldBeFalse)
			So(doc.Triggers, ShouldResemble, []string{
				"Video Started",
				"Video Started intro",
			})
		})

		Convey("Repeated activation attaches listeners only once", func() {
			eng.SceneWillShow(doc, sc)
			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()

			el.Pause()
			So(lo.Count(doc.Triggers, notify.VideoPaused), ShouldEqual, 1)
		})

		Convey("Loading a scene strips the native autoplay marker", func() {
			el.SetAttr(constant.AttrNativeAutoplay, "")
			eng.SceneLoaded(doc, sc)

			_, ok := el.Attr(constant.AttrNativeAutoplay)
			So(ok, ShouldBeFalse)
		})

		Convey("Triggers for a hidden scene are dropped", func() {
			eng.SceneWillShow(doc, sc)
			doc.RunFrames()

			So(el.Paused(), ShouldBeFalse)
			So(doc.Triggers, ShouldBeEmpty)
		})

		Convey("A natural end fires exactly one ended trigger", func() {
			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()

			el.Advance(10 * time.Second)

			So(lo.Count(doc.Triggers, notify.VideoEnded), ShouldEqual, 1)
			So(lo.Count(doc.Triggers, notify.VideoEnded+" intro"), ShouldEqual, 1)
		})

		Convey("Unloading a scene suspends its videos", func() {
			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()
			el.Advance(3 * time.Second)

			eng.SceneUnloading(doc, sc)

			So(el.Paused(), ShouldBeTrue)
			So(el.Position(), ShouldEqual, 0)
		})

		Convey("Hiding the scene converges its videos to stopped", func() {
			other := scene.NewMemScene("outro-scene")
			doc.AddScene(other)

			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()
			el.Advance(3 * time.Second)

			doc.ShowScene("outro-scene")

			So(el.Paused(), ShouldBeTrue)
			So(el.Position(), ShouldEqual, 0)
			So(len(el.Sources()), ShouldEqual, 1)

			Convey("With RemoveSources on, source descriptors are detached too", func() {
				eng.Table().Set(settings.RemoveSources, true)
				doc.ShowScene("intro-scene")
				doc.RunFrames()
				doc.ShowScene("outro-scene")

				So(el.Sources(), ShouldBeEmpty)
			})
		})

		Convey("Unloading the document stops the observer", func() {
			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()

			eng.DocumentUnloaded(doc)
			sc.SetVisible(false)

			So(el.Paused(), ShouldBeFalse)
		})

		Convey("Trigger bursts coalesce into one refresh request", func() {
			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()
			el.Pause()

			So(doc.Refreshes, ShouldEqual, 0)
			clk.Add(notify.RefreshDebounce)
			So(doc.Refreshes, ShouldEqual, 1)
		})
	})
}

func TestEngineAutoplayRejection(t *testing.T) {
	Convey("Given a video whose play attempts are rejected", t, func() {
		Convey("A rejection arriving after the playing signal suppresses nothing retroactively", func() {
			eng, _, doc, sc, el := newStage(media.PlayManual)

			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()

			Convey("Rejection then a late playing signal yields no started trigger", func() {
				el.RejectPendingPlay()
				el.BeginPlayback()

				So(lo.Count(doc.Triggers, notify.VideoStarted), ShouldEqual, 0)

				Convey("The flag is consumed: the next attempt notifies normally", func() {
					el.Policy = media.PlayGranted
					eng.Play(doc, "intro")
					So(lo.Count(doc.Triggers, notify.VideoStarted), ShouldEqual, 1)
				})
			})

			Convey("A granted attempt notifies normally", func() {
				el.GrantPendingPlay()
				So(lo.Count(doc.Triggers, notify.VideoStarted), ShouldEqual, 1)
			})
		})

		Convey("With EndOnAutoplayFail, the rejection synthesizes failure and end", func() {
			eng, _, doc, sc, _ := newStage(media.PlayRejected)
			eng.Table().Set(settings.EndOnAutoplayFail, true)

			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()

			So(doc.Triggers, ShouldResemble, []string{
				"Video Autoplay Failed",
				"Video Autoplay Failed intro",
				"Video Ended",
				"Video Ended intro",
			})
		})

		Convey("Without EndOnAutoplayFail, the rejection stays silent", func() {
			eng, _, doc, sc, _ := newStage(media.PlayRejected)

			eng.SceneWillShow(doc, sc)
			sc.SetVisible(true)
			doc.RunFrames()

			So(doc.Triggers, ShouldBeEmpty)
		})
	})
}

func TestEngineStallDetection(t *testing.T) {
	Convey("Given a video with stall detection enabled", t, func() {
		eng, clk, doc, sc, el := newStage(media.PlayGranted)
		eng.Table().Set(settings.EndOnStall, true)
		eng.Table().Set(settings.StallTimeout, 2*time.Second)

		eng.SceneWillShow(doc, sc)
		sc.SetVisible(true)
		doc.RunFrames()
		So(el.Paused(), ShouldBeFalse)

		Convey("A frozen position fires one stalled and one synthetic end", func() {
			el.FreezeAt = time.Nanosecond
			el.Advance(time.Second)
			clk.Add(2 * time.Second)
			clk.Add(2 * time.Second)

			So(lo.Count(doc.Triggers, notify.VideoStalled), ShouldEqual, 1)
			So(lo.Count(doc.Triggers, notify.VideoEnded), ShouldEqual, 1)

			Convey("A late native end does not fire a second ended trigger", func() {
				el.FinishPlayback()
				So(lo.Count(doc.Triggers, notify.VideoEnded), ShouldEqual, 1)
			})
		})

		Convey("An advancing position never trips the detector", func() {
			for i := 0; i < 4; i++ {
				el.Advance(time.Second)
				clk.Add(2 * time.Second)
			}

			So(lo.Count(doc.Triggers, notify.VideoStalled), ShouldEqual, 0)
		})

		Convey("Pausing disarms the detector", func() {
			el.Pause()
			clk.Add(10 * time.Second)

			So(lo.Count(doc.Triggers, notify.VideoStalled), ShouldEqual, 0)
		})
	})

	Convey("Given a video playing under factory defaults", t, func() {
		eng, clk, doc, sc, el := newStage(media.PlayGranted)

		eng.SceneWillShow(doc, sc)
		sc.SetVisible(true)
		doc.RunFrames()
		So(el.Paused(), ShouldBeFalse)

		Convey("A frozen position fires the stalled trigger without a synthetic end", func() {
			el.FreezeAt = time.Nanosecond
			el.Advance(time.Second)
			clk.Add(5 * time.Second)
			clk.Add(5 * time.Second)

			So(lo.Count(doc.Triggers, notify.VideoStalled), ShouldEqual, 1)
			So(lo.Count(doc.Triggers, notify.VideoStalled+" intro"), ShouldEqual, 1)
			So(lo.Count(doc.Triggers, notify.VideoEnded), ShouldEqual, 0)
		})
	})
}
