package ui

// Package ui contains the Fyne-based desktop user interface: the two-tab
// question-answering layout (text/voice and image), the notification panel,
// toast popups, the settings dialog, and localization. Handlers wire user
// interactions to the API client and the speech service and render results.
