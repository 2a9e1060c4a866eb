// Package scenario defines declarative playback scenarios: scene layouts, scripted videos, and a timeline of host actions.
package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/slideplay/slideplay/media"
	"github.com/slideplay/slideplay/settings"
)

// Timeline verbs. Each Step carries one verb plus the fields it consumes.
const (
	VerbShow       = "show"
	VerbHide       = "hide"
	VerbAdvance    = "advance"
	VerbTick       = "tick"
	VerbPlay       = "play"
	VerbPause      = "pause"
	VerbStop       = "stop"
	VerbSeekPct    = "seek_pct"
	VerbVolume     = "volume"
	VerbMuteToggle = "mute_toggle"
	VerbMuteAll    = "mute_all"
	VerbUnmuteAll  = "unmute_all"
	VerbGrant      = "grant"
	VerbReject     = "reject"
	VerbFinish     = "finish"
	VerbUnload     = "unload"
)

// Play resolution policies accepted in a Video definition.
const (
	PolicyGranted  = "granted"
	PolicyRejected = "rejected"
	PolicyManual   = "manual"
)

// Scenario is a complete simulation input: a document layout plus the
// timeline of host actions to replay against it.
type Scenario struct {
	Name        string `mapstructure:"name" json:"name" jsonschema:"description=Display name of the scenario."`
	Description string `mapstructure:"description" json:"description,omitempty" jsonschema:"description=Free-form description of what the scenario demonstrates."`

	// Defaults overrides entries of the playback defaults table, keyed by
	// canonical setting name.
	Defaults map[string]any `mapstructure:"defaults" json:"defaults,omitempty" jsonschema:"description=Playback defaults table overrides keyed by canonical setting name."`

	// Script is an optional path to a Lua trigger handler, relative to the
	// scenario file.
	Script string `mapstructure:"script" json:"script,omitempty" jsonschema:"description=Path to a Lua trigger handler relative to the scenario file."`

	Scenes   []Scene `mapstructure:"scenes" json:"scenes" jsonschema:"description=Scene containers making up the document."`
	Timeline []Step  `mapstructure:"timeline" json:"timeline" jsonschema:"description=Ordered host actions to replay."`
}

// Scene is one scene container and its videos. Scenes start hidden; the
// timeline makes them visible.
type Scene struct {
	ID     string  `mapstructure:"id" json:"id" jsonschema:"description=Unique scene identifier."`
	Videos []Video `mapstructure:"videos" json:"videos,omitempty" jsonschema:"description=Videos embedded in the scene."`
}

// Video describes one scripted video element.
type Video struct {
	Name       string            `mapstructure:"name" json:"name,omitempty" jsonschema:"description=Stable identity used to qualify triggers and target control operations. Optional."`
	DurationMs int               `mapstructure:"duration_ms" json:"duration_ms" jsonschema:"description=Total duration in milliseconds."`
	Policy     string            `mapstructure:"policy" json:"policy,omitempty" jsonschema:"description=Play attempt resolution: granted (default) resolves successfully and rejected resolves with a rejection. Manual leaves attempts pending for grant and reject timeline verbs."`
	FreezeAtMs int               `mapstructure:"freeze_at_ms" json:"freeze_at_ms,omitempty" jsonschema:"description=Position in milliseconds past which playback stops advancing while still reporting itself as playing. Simulates a stall."`
	Sources    []string          `mapstructure:"sources" json:"sources,omitempty" jsonschema:"description=Source descriptor URLs."`
	Attrs      map[string]string `mapstructure:"attrs" json:"attrs,omitempty" jsonschema:"description=Per-video override attributes merged onto the element."`
}

// Step is one timeline entry.
type Step struct {
	Verb   string  `mapstructure:"verb" json:"verb" jsonschema:"description=Action to perform."`
	Scene  string  `mapstructure:"scene" json:"scene,omitempty" jsonschema:"description=Target scene identifier for show and hide."`
	Video  string  `mapstructure:"video" json:"video,omitempty" jsonschema:"description=Target video identity. Empty targets the first video of the active scene."`
	Ms     int     `mapstructure:"ms" json:"ms,omitempty" jsonschema:"description=Duration in milliseconds for advance and tick. Zero or omitted uses the configured default step."`
	Pct    float64 `mapstructure:"pct" json:"pct,omitempty" jsonschema:"description=Percentage for seek_pct."`
	Volume float64 `mapstructure:"volume" json:"volume,omitempty" jsonschema:"description=Volume for the volume verb."`
}

// Duration returns the video's total duration.
func (v Video) Duration() time.Duration {
	return time.Duration(v.DurationMs) * time.Millisecond
}

// PlayPolicy maps the declared policy onto the media layer's enumeration.
// An empty policy means granted.
func (v Video) PlayPolicy() (media.PlayPolicy, error) {
	switch v.Policy {
	case "", PolicyGranted:
		return media.PlayGranted, nil
	case PolicyRejected:
		return media.PlayRejected, nil
	case PolicyManual:
		return media.PlayManual, nil
	default:
		return 0, fmt.Errorf("unknown play policy %q", v.Policy)
	}
}

var verbs = map[string]struct{}{
	VerbShow:       {},
	VerbHide:       {},
	VerbAdvance:    {},
	VerbTick:       {},
	VerbPlay:       {},
	VerbPause:      {},
	VerbStop:       {},
	VerbSeekPct:    {},
	VerbVolume:     {},
	VerbMuteToggle: {},
	VerbMuteAll:    {},
	VerbUnmuteAll:  {},
	VerbGrant:      {},
	VerbReject:     {},
	VerbFinish:     {},
	VerbUnload:     {},
}

// Validate checks the scenario for structural errors before it is handed to
// the simulator.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Scenes) == 0 {
		return fmt.Errorf("scenario %q defines no scenes", s.Name)
	}

	sceneIDs := make(map[string]struct{}, len(s.Scenes))
	for _, sc := range s.Scenes {
		if sc.ID == "" {
			return fmt.Errorf("scenario %q contains a scene without an id", s.Name)
		}
		if _, dup := sceneIDs[sc.ID]; dup {
			return fmt.Errorf("duplicate scene id %q", sc.ID)
		}
		sceneIDs[sc.ID] = struct{}{}

		for _, v := range sc.Videos {
			if v.DurationMs <= 0 {
				return fmt.Errorf("video %q in scene %q needs a positive duration", v.Name, sc.ID)
			}
			if _, err := v.PlayPolicy(); err != nil {
				return fmt.Errorf("video %q in scene %q: %w", v.Name, sc.ID, err)
			}
		}
	}

	// The TOML layer lowercases keys; the defaults table resolves them
	// case-insensitively too, so matching here follows suit.
	for name := range s.Defaults {
		known := false
		for _, canonical := range settings.Names() {
			if strings.EqualFold(name, canonical) {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown setting %q in defaults", name)
		}
	}

	for i, step := range s.Timeline {
		if _, ok := verbs[step.Verb]; !ok {
			return fmt.Errorf("timeline step %d: unknown verb %q", i, step.Verb)
		}
		switch step.Verb {
		case VerbShow, VerbHide:
			if _, ok := sceneIDs[step.Scene]; !ok {
				return fmt.Errorf("timeline step %d: unknown scene %q", i, step.Scene)
			}
		case VerbAdvance, VerbTick:
			if step.Ms < 0 {
				return fmt.Errorf("timeline step %d: %s needs a non-negative ms", i, step.Verb)
			}
		}
	}

	return nil
}
