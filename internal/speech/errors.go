package speech

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes recognition failures.
type ErrorKind string

const (
	// KindUnsupported means no recorder tooling is available on this host.
	KindUnsupported ErrorKind = "unsupported"

	// KindAlreadyListening means a recognition session is already active.
	KindAlreadyListening ErrorKind = "already-listening"

	// KindNoSpeech means the session completed but produced no transcript.
	KindNoSpeech ErrorKind = "no-speech"

	// KindNoMicrophone means no capture device could be opened.
	KindNoMicrophone ErrorKind = "no-microphone"

	// KindPermissionDenied means the microphone is blocked for this process.
	KindPermissionDenied ErrorKind = "permission-denied"

	// KindTimeout means recognition exceeded the caller's deadline.
	KindTimeout ErrorKind = "timeout"

	// KindOther covers transcription service and transport failures.
	KindOther ErrorKind = "other"
)

// Error is a categorized recognition failure.
type Error struct {
	Kind  ErrorKind
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindUnsupported:
		return "speech recognition is not supported on this system"
	case KindAlreadyListening:
		return "already listening"
	case KindNoSpeech:
		return "no speech detected"
	case KindNoMicrophone:
		return "no microphone available"
	case KindPermissionDenied:
		return "microphone access denied"
	case KindTimeout:
		return "speech recognition timed out"
	}
	if e.Cause != nil {
		return fmt.Sprintf("speech recognition failed: %v", e.Cause)
	}
	return "speech recognition failed"
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError wraps a cause with a category.
func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// KindOf returns the category of err, or KindOther for foreign errors.
func KindOf(err error) ErrorKind {
	var speechErr *Error
	if errors.As(err, &speechErr) {
		return speechErr.Kind
	}
	return KindOther
}
