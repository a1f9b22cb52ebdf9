package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconMic      = "🎤"
	IconSpeak    = "🔊"
	IconCopy     = "📋"
	IconImage    = "🖼"
	IconClose    = "×"
	IconOnline   = "●"
	IconOffline  = "○"
)

// Toast notification constants
const (
	ToastWidth    = 320
	ToastHeight   = 130
	ToastMargin   = 20
	ToastAutoHide = 5 * time.Second
)

// Voice capture constants
const (
	// VoiceTimeoutGrace is added on top of the configured listen window when
	// racing recognition against the timeout, leaving room for transcription.
	VoiceTimeoutGrace = 10 * time.Second
)

// Preview sizing
const (
	PreviewMinWidth  = 280
	PreviewMinHeight = 200
)
