package stall

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/slideplay/slideplay/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDetector(t *testing.T) {
	Convey("Given a playing video under watch", t, func() {
		mock := clock.NewMock()
		el := media.NewSim(60 * time.Second)
		el.Play(nil)

		var stalls int
		d := Watch(mock, el, 5*time.Second, func() { stalls++ })

		Convey("An advancing position never trips the detector", func() {
			for i := 0; i < 4; i++ {
				el.Advance(5 * time.Second)
				mock.Add(5 * time.Second)
			}
			So(stalls, ShouldEqual, 0)
			So(d.Active(), ShouldBeTrue)
		})

		Convey("A frozen position while playing fires exactly once", func() {
			mock.Add(5 * time.Second)
			So(stalls, ShouldEqual, 1)
			So(d.Active(), ShouldBeFalse)

			// Detector has stopped; further time changes nothing.
			mock.Add(30 * time.Second)
			So(stalls, ShouldEqual, 1)
		})

		Convey("A frozen position while paused does not fire", func() {
			el.Pause()
			mock.Add(5 * time.Second)
			So(stalls, ShouldEqual, 0)
		})

		Convey("Cancel makes a scheduled tick a no-op", func() {
			d.Cancel()
			mock.Add(30 * time.Second)
			So(stalls, ShouldEqual, 0)
			So(d.Active(), ShouldBeFalse)

			// Idempotent.
			d.Cancel()
		})

		Convey("Position advance then freeze fires on the freezing tick", func() {
			el.Advance(5 * time.Second)
			mock.Add(5 * time.Second)
			So(stalls, ShouldEqual, 0)

			mock.Add(5 * time.Second)
			So(stalls, ShouldEqual, 1)
		})
	})
}
