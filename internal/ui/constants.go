package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconPrev     = "⏮"
	IconNext     = "⏭"
	IconFolder   = "📁"
	IconMusic    = "🎵"
	IconDelete   = "🗑"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	PositionLabelFormat = "%s / %s"
)

// Layout sizing
const (
	RowMinHeight float32 = 48
)

// Ticker durations
const (
	PositionTickInterval = 500 * time.Millisecond
)
