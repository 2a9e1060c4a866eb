package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("intro:scene?.toml"), ShouldEqual, "intro_scene_.toml")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("intro__scene.toml"), ShouldEqual, "intro_scene.toml")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-intro-scene-"), ShouldEqual, "intro-scene")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "trigger", "triggers"), ShouldEqual, "1 trigger")
		So(Quantify(2, "trigger", "triggers"), ShouldEqual, "2 triggers")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/scenario.toml"), ShouldEqual, "scenario")
		So(FileStem("scenario"), ShouldEqual, "scenario")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		item := s.Pop()
		So(item, ShouldEqual, 2)
		item = s.Pop()
		So(item, ShouldEqual, 1)
		item = s.Pop()
		So(item, ShouldEqual, 0)
	})
}
