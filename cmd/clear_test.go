package cmd

import (
	"path/filepath"
	"testing"

	"github.com/slideplay/slideplay/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClear(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Given a populated cache directory", t, func() {
		dir := clearTargets[0].location()
		path := filepath.Join(dir, "history.json")
		So(filesystem.API().WriteFile(path, []byte("{}"), 0655), ShouldBeNil)

		Convey("Clearing the cache removes it", func() {
			So(clearCmd.Flags().Set("cache", "true"), ShouldBeNil)
			defer func() {
				So(clearCmd.Flags().Set("cache", "false"), ShouldBeNil)
			}()

			clearCmd.Run(clearCmd, nil)

			exists, err := filesystem.API().DirExists(dir)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})
}
