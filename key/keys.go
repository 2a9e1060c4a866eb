// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Video Lifecycle Defaults - these keys seed the engine's defaults table for every new document.
const (
	VideoAutoPlay          = "video.autoplay"
	VideoAutoMute          = "video.automute"
	VideoAutoPlaysInline   = "video.autoplaysinline"
	VideoRemoveSources     = "video.removesources"
	VideoAutoObserver      = "video.autoobserver"
	VideoEndOnStall        = "video.endonstall"
	VideoStallTimeoutMs    = "video.stalltimeout_ms"
	VideoEndOnAutoplayFail = "video.endonautoplayfail"
)

// Simulation - these keys configure the headless and interactive scenario runners.
const (
	SimStepMs = "sim.step_ms"
)

// History Tracking - these keys configure the persistence of simulation run summaries.
const (
	HistorySaveOnRun = "history.save_on_run"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive simulator's styling and logic.
const (
	TUILogLines       = "tui.log_lines"
	TUIShowAttributes = "tui.show_attributes"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
