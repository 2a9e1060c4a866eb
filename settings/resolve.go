// Package settings implements the defaults table and per-video effective configuration resolution.
package settings

import (
	"strconv"
	"strings"
	"time"

	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/media"
)

// AttrFor returns the per-video override attribute key for a setting name.
func AttrFor(name string) string {
	return constant.AttrPrefix + strings.ToLower(name)
}

// Resolve computes the effective boolean value of a setting for one video:
// a present override attribute wins ("true" parses true, anything else
// false); otherwise the table's current default applies. Resolution is pure
// and uncached; it never mutates the video or the table.
func (t *Table) Resolve(el media.Element, name string) bool {
	if raw, ok := el.Attr(AttrFor(name)); ok {
		return raw == "true"
	}
	return t.v.GetBool(name)
}

// ResolveDuration computes the effective duration value of a setting for one
// video. Override attributes accept a Go duration string ("7s") or a bare
// millisecond count ("7000").
func (t *Table) ResolveDuration(el media.Element, name string) time.Duration {
	if raw, ok := el.Attr(AttrFor(name)); ok {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		if ms, err := strconv.Atoi(raw); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return t.v.GetDuration(name)
}
