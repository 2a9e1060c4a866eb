package settings

import (
	"testing"
	"time"

	"github.com/slideplay/slideplay/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a defaults table and a video", t, func() {
		table := NewTable()
		el := media.NewSim(10 * time.Second)

		Convey("Absent override falls back to the current default", func() {
			So(table.Resolve(el, AutoPlay), ShouldBeTrue)

			table.Set(AutoPlay, false)
			So(table.Resolve(el, AutoPlay), ShouldBeFalse)
		})

		Convey("A present override wins regardless of the default", func() {
			el.SetAttr(AttrFor(AutoPlay), "false")
			So(table.Resolve(el, AutoPlay), ShouldBeFalse)

			table.Set(AutoPlay, false)
			el.SetAttr(AttrFor(AutoPlay), "true")
			So(table.Resolve(el, AutoPlay), ShouldBeTrue)
		})

		Convey("Anything other than \"true\" parses as false", func() {
			el.SetAttr(AttrFor(EndOnStall), "yes")
			So(table.Resolve(el, EndOnStall), ShouldBeFalse)
		})

		Convey("Resolution is not cached across default mutations", func() {
			So(table.Resolve(el, EndOnStall), ShouldBeFalse)
			table.Set(EndOnStall, true)
			So(table.Resolve(el, EndOnStall), ShouldBeTrue)
			table.Set(EndOnStall, false)
			So(table.Resolve(el, EndOnStall), ShouldBeFalse)
		})

		Convey("Resolution never mutates the video's attributes", func() {
			_ = table.Resolve(el, AutoMute)
			_, ok := el.Attr(AttrFor(AutoMute))
			So(ok, ShouldBeFalse)
		})

		Convey("Unknown setting names resolve to disabled", func() {
			So(table.Resolve(el, "NoSuchSetting"), ShouldBeFalse)
		})
	})
}

func TestResolveDuration(t *testing.T) {
	Convey("Given a defaults table and a video", t, func() {
		table := NewTable()
		el := media.NewSim(10 * time.Second)

		Convey("Defaults to the table's stall timeout", func() {
			So(table.ResolveDuration(el, StallTimeout), ShouldEqual, 5*time.Second)
		})

		Convey("Duration-string override wins", func() {
			el.SetAttr(AttrFor(StallTimeout), "7s")
			So(table.ResolveDuration(el, StallTimeout), ShouldEqual, 7*time.Second)
		})

		Convey("Bare milliseconds override wins", func() {
			el.SetAttr(AttrFor(StallTimeout), "1500")
			So(table.ResolveDuration(el, StallTimeout), ShouldEqual, 1500*time.Millisecond)
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Given a defaults table", t, func() {
		table := NewTable()

		Convey("Merge applies a bulk mapping", func() {
			table.Merge(map[string]any{
				AutoPlay:   false,
				EndOnStall: true,
			})
			So(table.GetBool(AutoPlay), ShouldBeFalse)
			So(table.GetBool(EndOnStall), ShouldBeTrue)
		})

		Convey("Snapshot returns a copy, not the live table", func() {
			snap := table.Snapshot()
			So(len(snap), ShouldEqual, len(Names()))

			snap[AutoPlay] = false
			So(table.GetBool(AutoPlay), ShouldBeTrue)
		})

		Convey("Attribute keys are lowercased and namespaced", func() {
			So(AttrFor(EndOnAutoplayFail), ShouldEqual, "data-video-endonautoplayfail")
		})
	})
}
