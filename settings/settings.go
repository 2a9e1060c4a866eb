// Package settings implements the defaults table and per-video effective configuration resolution.
package settings

import (
	"time"

	"github.com/slideplay/slideplay/key"
	"github.com/spf13/viper"
)

// Canonical setting names. The lowercased name doubles as the suffix of the
// per-video override attribute.
const (
	AutoPlay          = "AutoPlay"
	AutoMute          = "AutoMute"
	AutoPlaysInline   = "AutoPlaysInline"
	RemoveSources     = "RemoveSources"
	AutoObserver      = "AutoObserver"
	EndOnStall        = "EndOnStall"
	StallTimeout      = "StallTimeout"
	EndOnAutoplayFail = "EndOnAutoplayFail"
)

// Names returns the fixed initial key set of the defaults table.
func Names() []string {
	return []string{
		AutoPlay,
		AutoMute,
		AutoPlaysInline,
		RemoveSources,
		AutoObserver,
		EndOnStall,
		StallTimeout,
		EndOnAutoplayFail,
	}
}

// Table is the mutable defaults table consulted by every settings resolution.
//
// It is an explicit configuration object: one instance is handed to the
// engine at construction, and the engine never reaches for ambient global
// state. Mutation happens only through Set and Merge; reads of the full
// table always receive a copy.
type Table struct {
	v *viper.Viper
}

// NewTable constructs a Table carrying the factory defaults.
func NewTable() *Table {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault(AutoPlay, true)
	v.SetDefault(AutoMute, true)
	v.SetDefault(AutoPlaysInline, true)
	v.SetDefault(RemoveSources, false)
	v.SetDefault(AutoObserver, true)
	v.SetDefault(EndOnStall, false)
	v.SetDefault(StallTimeout, 5*time.Second)
	v.SetDefault(EndOnAutoplayFail, false)

	return &Table{v: v}
}

// FromGlobal constructs a Table seeded from the application-level
// configuration engine, so CLI flags, config file, and environment bindings
// flow through to per-document defaults.
func FromGlobal() *Table {
	t := NewTable()

	t.Set(AutoPlay, viper.GetBool(key.VideoAutoPlay))
	t.Set(AutoMute, viper.GetBool(key.VideoAutoMute))
	t.Set(AutoPlaysInline, viper.GetBool(key.VideoAutoPlaysInline))
	t.Set(RemoveSources, viper.GetBool(key.VideoRemoveSources))
	t.Set(AutoObserver, viper.GetBool(key.VideoAutoObserver))
	t.Set(EndOnStall, viper.GetBool(key.VideoEndOnStall))
	t.Set(StallTimeout, time.Duration(viper.GetInt(key.VideoStallTimeoutMs))*time.Millisecond)
	t.Set(EndOnAutoplayFail, viper.GetBool(key.VideoEndOnAutoplayFail))

	return t
}

// Get returns the current default for a single setting name.
// An unknown name yields nil, which boolean readers treat as disabled.
func (t *Table) Get(name string) any {
	return t.v.Get(name)
}

// GetBool returns the current boolean default for a setting name.
func (t *Table) GetBool(name string) bool {
	return t.v.GetBool(name)
}

// GetDuration returns the current duration default for a setting name.
func (t *Table) GetDuration(name string) time.Duration {
	return t.v.GetDuration(name)
}

// Set updates a single default. Settings resolved before the mutation are
// not retroactively updated.
func (t *Table) Set(name string, value any) {
	t.v.Set(name, value)
}

// Merge applies a bulk mapping of defaults.
func (t *Table) Merge(values map[string]any) {
	for name, value := range values {
		t.v.Set(name, value)
	}
}

// Snapshot returns a copy of the entire table keyed by canonical names.
// Callers never receive the live table by reference.
func (t *Table) Snapshot() map[string]any {
	out := make(map[string]any, len(Names()))
	for _, name := range Names() {
		out[name] = t.v.Get(name)
	}
	return out
}
