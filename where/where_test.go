package where

import (
	"os"
	"strings"
	"testing"

	"github.com/slideplay/slideplay/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestConfig(t *testing.T) {
	Convey("Config", t, func() {
		Convey("Should honor the environment override", func() {
			So(os.Setenv(EnvConfigPath, "/custom/config"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, "/custom/config")
		})
	})
}

func TestDerivedPaths(t *testing.T) {
	Convey("Derived paths", t, func() {
		So(os.Setenv(EnvConfigPath, "/custom/config"), ShouldBeNil)
		defer os.Unsetenv(EnvConfigPath)

		Convey("Logs should live under the config directory", func() {
			So(strings.HasPrefix(Logs(), Config()), ShouldBeTrue)
		})

		Convey("Scenarios should live under the config directory", func() {
			So(strings.HasPrefix(Scenarios(), Config()), ShouldBeTrue)
		})

		Convey("History should live under the cache directory", func() {
			So(strings.HasPrefix(History(), Cache()), ShouldBeTrue)
		})
	})
}
