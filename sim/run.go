// Package sim provides the implementation for the application's non-interactive scenario replay mode.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/mo"

	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/notify"
	"github.com/slideplay/slideplay/scenario"
	"github.com/slideplay/slideplay/script"
	"github.com/slideplay/slideplay/settings"
)

type Options struct {
	Out   io.Writer
	Json  bool
	Table *settings.Table

	// MaxSteps truncates the timeline after this many steps.
	MaxSteps mo.Option[int]

	// Until stops the replay once a trigger with this exact name has fired.
	Until mo.Option[string]

	// OnTrigger, when set, receives every fired trigger split into its base
	// event and the video identity, empty for unqualified triggers.
	OnTrigger func(event, video string)
}

// Run replays a scenario's timeline and reports the fired triggers.
func Run(s *scenario.Scenario, options *Options) (*Result, error) {
	if options == nil {
		options = &Options{}
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}

	world, err := NewWorld(s, options.Table)
	if err != nil {
		return nil, err
	}

	var handler *script.Handler
	if s.Script != "" {
		handler, err = script.Load(s.Script, world.Controls())
		if err != nil {
			return nil, err
		}
		defer handler.Close()
	}

	result := &Result{Scenario: s.Name}

	done := false
	world.Doc.OnTrigger = func(name string) {
		result.Triggers = append(result.Triggers, Entry{
			AtMs: world.ElapsedMs(),
			Name: name,
		})

		event, video := SplitTrigger(name)
		if handler != nil {
			if err := handler.OnTrigger(event, video); err != nil {
				log.Warnf("trigger handler failed on %q: %v", name, err)
			}
		}
		if options.OnTrigger != nil {
			options.OnTrigger(event, video)
		}

		if until, ok := options.Until.Get(); ok && name == until {
			done = true
		}
	}

	for i, step := range s.Timeline {
		if max, ok := options.MaxSteps.Get(); ok && i >= max {
			break
		}
		if done {
			break
		}

		if err := world.Apply(step); err != nil {
			return nil, fmt.Errorf("timeline step %d: %w", i, err)
		}
		result.Steps++
	}

	if options.Json {
		return result, writeJson(options.Out, result)
	}

	for _, entry := range result.Triggers {
		fmt.Fprintf(options.Out, "%6dms  %s\n", entry.AtMs, entry.Name)
	}
	return result, nil
}

var baseTriggers = []string{
	notify.VideoStarted,
	notify.VideoPaused,
	notify.VideoEnded,
	notify.VideoStalled,
	notify.VideoAutoplayFailed,
}

// SplitTrigger decomposes a fired trigger name into its base event and the
// qualifying video identity, empty when the trigger is unqualified.
func SplitTrigger(name string) (event, video string) {
	for _, base := range baseTriggers {
		if name == base {
			return base, ""
		}
		if strings.HasPrefix(name, base+" ") {
			return base, strings.TrimPrefix(name, base+" ")
		}
	}
	return name, ""
}
