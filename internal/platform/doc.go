package platform

// Package platform contains OS integration glue: filesystem helpers, image
// upload validation, report saving, audio playback via the system player, and
// open/reveal of saved files.
