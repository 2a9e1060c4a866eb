package autoplay

import (
	"testing"
	"time"

	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
	"github.com/slideplay/slideplay/settings"
	. "github.com/smartystreets/goconvey/convey"
)

func newWorld() (*scene.MemDocument, *scene.MemScene, *media.SimElement) {
	doc := scene.NewMemDocument("doc")
	sc := scene.NewMemScene("sc")
	doc.AddScene(sc)
	el := media.NewSim(10 * time.Second)
	sc.AddVideo(el)
	sc.SetVisible(true)
	return doc, sc, el
}

func TestDriver(t *testing.T) {
	Convey("Given a driver with factory defaults", t, func() {
		table := settings.NewTable()
		flags := NewFlags()
		driver := NewDriver(table, flags)

		doc, _, el := newWorld()

		Convey("Mute and inline flags are applied before the frame boundary", func() {
			driver.Start(doc, el)

			So(el.Muted(), ShouldBeTrue)
			So(el.PlaysInline(), ShouldBeTrue)
			So(el.Paused(), ShouldBeTrue)
		})

		Convey("The play attempt runs at the frame boundary", func() {
			el.SetAttr("autoplay", "")
			el.SetPosition(4 * time.Second)

			driver.Start(doc, el)
			doc.RunFrames()

			So(el.Paused(), ShouldBeFalse)
			So(el.Position(), ShouldEqual, 0)
			_, hasMarker := el.Attr("autoplay")
			So(hasMarker, ShouldBeFalse)
		})

		Convey("AutoPlay disabled per video skips the attempt entirely", func() {
			el.SetAttr(settings.AttrFor(settings.AutoPlay), "false")

			driver.Start(doc, el)
			doc.RunFrames()

			So(el.Paused(), ShouldBeTrue)
		})

		Convey("AutoMute disabled per video leaves the element unmuted", func() {
			el.SetAttr(settings.AttrFor(settings.AutoMute), "false")

			driver.Start(doc, el)

			So(el.Muted(), ShouldBeFalse)
		})

		Convey("A rejected attempt marks the flag and reports the rejection", func() {
			el.Policy = media.PlayRejected

			var rejected int
			driver.OnReject = func(scene.Document, media.Element) { rejected++ }

			driver.Start(doc, el)
			doc.RunFrames()

			So(rejected, ShouldEqual, 1)
			So(flags.Consume(el), ShouldBeTrue)
			So(flags.Consume(el), ShouldBeFalse)
		})
	})
}

func TestFlags(t *testing.T) {
	Convey("Flags", t, func() {
		flags := NewFlags()
		el := media.NewSim(time.Second)

		Convey("Consume clears on read", func() {
			flags.Mark(el)
			So(flags.Consume(el), ShouldBeTrue)
			So(flags.Consume(el), ShouldBeFalse)
		})

		Convey("Forget drops without consulting", func() {
			flags.Mark(el)
			flags.Forget(el)
			So(flags.Consume(el), ShouldBeFalse)
		})
	})
}
