package speech

// Package speech provides single-shot voice capture and transcription: a
// microphone recorder (pw-record/arecord subprocess, no CGo), a whisper-style
// HTTP transcriber, and a Service that guards against concurrent sessions and
// races recognition against a timeout. Failures are categorized so the UI can
// tell "no speech" from "no microphone" from "permission denied".
