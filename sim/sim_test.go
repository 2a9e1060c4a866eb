package sim

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/samber/mo"
	"github.com/slideplay/slideplay/filesystem"
	"github.com/slideplay/slideplay/key"
	"github.com/slideplay/slideplay/notify"
	"github.com/slideplay/slideplay/scenario"
	"github.com/slideplay/slideplay/settings"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func stallScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name: "stall-demo",
		Defaults: map[string]any{
			settings.EndOnStall:   true,
			settings.StallTimeout: "2s",
		},
		Scenes: []scenario.Scene{{
			ID: "intro",
			Videos: []scenario.Video{{
				Name:       "opener",
				DurationMs: 10000,
				FreezeAtMs: 3000,
				Sources:    []string{"opener.mp4"},
			}},
		}},
		Timeline: []scenario.Step{
			{Verb: scenario.VerbShow, Scene: "intro"},
			{Verb: scenario.VerbAdvance, Ms: 4000},
			{Verb: scenario.VerbTick, Ms: 2000},
		},
	}
}

func triggerNames(result *Result) []string {
	names := make([]string, len(result.Triggers))
	for i, entry := range result.Triggers {
		names[i] = entry.Name
	}
	return names
}

func TestRun(t *testing.T) {
	Convey("Given a scenario whose video stalls mid-playback", t, func() {
		Convey("The replay reports start, stall, and synthetic end in order", func() {
			result, err := Run(stallScenario(), &Options{Out: io.Discard})
			So(err, ShouldBeNil)

			So(result.Scenario, ShouldEqual, "stall-demo")
			So(result.Steps, ShouldEqual, 3)
			So(triggerNames(result), ShouldResemble, []string{
				"Video Started",
				"Video Started opener",
				"Video Stalled",
				"Video Stalled opener",
				"Video Ended",
				"Video Ended opener",
			})

			So(result.Triggers[0].AtMs, ShouldEqual, 0)
			So(result.Triggers[2].AtMs, ShouldEqual, 4000)
		})

		Convey("Until stops the replay once the named trigger fires", func() {
			result, err := Run(stallScenario(), &Options{
				Out:   io.Discard,
				Until: mo.Some(notify.VideoStalled),
			})
			So(err, ShouldBeNil)
			So(result.Steps, ShouldEqual, 2)
		})

		Convey("MaxSteps truncates the timeline", func() {
			result, err := Run(stallScenario(), &Options{
				Out:      io.Discard,
				MaxSteps: mo.Some(1),
			})
			So(err, ShouldBeNil)
			So(result.Steps, ShouldEqual, 1)
			So(triggerNames(result), ShouldResemble, []string{
				"Video Started",
				"Video Started opener",
			})
		})

		Convey("Json output encodes the full result", func() {
			var buf bytes.Buffer
			_, err := Run(stallScenario(), &Options{Out: &buf, Json: true})
			So(err, ShouldBeNil)

			var decoded Result
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded.Scenario, ShouldEqual, "stall-demo")
			So(len(decoded.Triggers), ShouldEqual, 6)
		})

		Convey("OnTrigger receives split events", func() {
			var events, videos []string
			_, err := Run(stallScenario(), &Options{
				Out: io.Discard,
				OnTrigger: func(event, video string) {
					events = append(events, event)
					videos = append(videos, video)
				},
			})
			So(err, ShouldBeNil)
			So(events[0], ShouldEqual, notify.VideoStarted)
			So(videos[0], ShouldEqual, "")
			So(events[1], ShouldEqual, notify.VideoStarted)
			So(videos[1], ShouldEqual, "opener")
		})
	})

	Convey("Given a scenario whose play attempts are rejected", t, func() {
		s := &scenario.Scenario{
			Name: "rejected-demo",
			Defaults: map[string]any{
				settings.EndOnAutoplayFail: true,
			},
			Scenes: []scenario.Scene{{
				ID: "intro",
				Videos: []scenario.Video{{
					Name:       "opener",
					DurationMs: 5000,
					Policy:     scenario.PolicyRejected,
				}},
			}},
			Timeline: []scenario.Step{
				{Verb: scenario.VerbShow, Scene: "intro"},
			},
		}

		result, err := Run(s, &Options{Out: io.Discard})
		So(err, ShouldBeNil)
		So(triggerNames(result), ShouldResemble, []string{
			"Video Autoplay Failed",
			"Video Autoplay Failed opener",
			"Video Ended",
			"Video Ended opener",
		})
	})

	Convey("Given timeline steps without an explicit duration", t, func() {
		viper.Set(key.SimStepMs, 100)

		world, err := NewWorld(stallScenario(), nil)
		So(err, ShouldBeNil)

		So(world.Apply(scenario.Step{Verb: scenario.VerbTick}), ShouldBeNil)
		So(world.ElapsedMs(), ShouldEqual, 100)

		So(world.Apply(scenario.Step{Verb: scenario.VerbAdvance}), ShouldBeNil)
		So(world.ElapsedMs(), ShouldEqual, 200)
	})

	Convey("Given a scenario with manually resolved play attempts", t, func() {
		s := &scenario.Scenario{
			Name: "manual-demo",
			Scenes: []scenario.Scene{{
				ID: "intro",
				Videos: []scenario.Video{{
					Name:       "opener",
					DurationMs: 5000,
					Policy:     scenario.PolicyManual,
				}},
			}},
			Timeline: []scenario.Step{
				{Verb: scenario.VerbShow, Scene: "intro"},
				{Verb: scenario.VerbGrant, Video: "opener"},
			},
		}

		result, err := Run(s, &Options{Out: io.Discard})
		So(err, ShouldBeNil)
		So(triggerNames(result), ShouldResemble, []string{
			"Video Started",
			"Video Started opener",
		})
	})
}

func TestRunWithScript(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	chain := `
function OnTrigger(event, video)
    if event == "Video Ended" and video == "opener" then
        show_scene("outro")
    end
end
`
	path := "/scripts/chain.lua"
	if err := filesystem.API().WriteFile(path, []byte(chain), 0655); err != nil {
		t.Fatal(err)
	}

	Convey("Given a scenario with a scene-chaining trigger handler", t, func() {
		s := &scenario.Scenario{
			Name:   "chain-demo",
			Script: path,
			Scenes: []scenario.Scene{
				{ID: "intro", Videos: []scenario.Video{{Name: "opener", DurationMs: 5000}}},
				{ID: "outro", Videos: []scenario.Video{{Name: "closer", DurationMs: 10000}}},
			},
			Timeline: []scenario.Step{
				{Verb: scenario.VerbShow, Scene: "intro"},
				{Verb: scenario.VerbAdvance, Ms: 5000},
			},
		}

		result, err := Run(s, &Options{Out: io.Discard})
		So(err, ShouldBeNil)

		Convey("Finishing the opener chains into the next scene's video", func() {
			So(triggerNames(result), ShouldResemble, []string{
				"Video Started",
				"Video Started opener",
				"Video Ended",
				"Video Ended opener",
				"Video Started",
				"Video Started closer",
			})
		})
	})
}

func TestSplitTrigger(t *testing.T) {
	Convey("Trigger names split into event and identity", t, func() {
		event, video := SplitTrigger("Video Started")
		So(event, ShouldEqual, notify.VideoStarted)
		So(video, ShouldEqual, "")

		event, video = SplitTrigger("Video Started opener")
		So(event, ShouldEqual, notify.VideoStarted)
		So(video, ShouldEqual, "opener")

		event, video = SplitTrigger("Custom Trigger")
		So(event, ShouldEqual, "Custom Trigger")
		So(video, ShouldEqual, "")
	})
}
