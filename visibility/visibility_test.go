package visibility

import (
	"testing"
	"time"

	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/scene"
	. "github.com/smartystreets/goconvey/convey"
)

func TestActive(t *testing.T) {
	Convey("Given a video inside a scene", t, func() {
		doc := scene.NewMemDocument("doc")
		sc := scene.NewMemScene("sc")
		doc.AddScene(sc)

		el := media.NewSim(time.Second)
		sc.AddVideo(el)

		Convey("Hidden scene means inactive", func() {
			So(Active(doc, el), ShouldBeFalse)
		})

		Convey("Visible scene means active", func() {
			sc.SetVisible(true)
			So(Active(doc, el), ShouldBeTrue)
		})

		Convey("Visibility is re-read on every call", func() {
			sc.SetVisible(true)
			So(Active(doc, el), ShouldBeTrue)
			sc.SetVisible(false)
			So(Active(doc, el), ShouldBeFalse)
		})

		Convey("An orphaned element is never active", func() {
			orphan := media.NewSim(time.Second)
			So(Active(doc, orphan), ShouldBeFalse)
		})
	})
}
