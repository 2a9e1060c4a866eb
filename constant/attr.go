// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Markup attribute surface consumed from scene documents.
const (
	// AttrPrefix is the namespace for per-video setting overrides
	// (e.g. "data-video-autoplay", "data-video-endonstall").
	AttrPrefix = "data-video-"

	// AttrVideoName carries the optional stable identity of a video.
	// Not guaranteed unique; first match wins.
	AttrVideoName = "data-video-name"

	// AttrNativeAutoplay is the platform-level autoplay marker. It is
	// stripped on scene load so playback timing stays under engine control.
	AttrNativeAutoplay = "autoplay"
)
