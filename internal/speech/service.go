package speech

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

// Recognizer performs one capture-and-transcribe session. Implementations
// must honor ctx cancellation.
type Recognizer interface {
	// Recognize captures audio and returns the best transcript.
	Recognize(ctx context.Context) (string, error)

	// Supported reports whether recognition can work on this host.
	Supported() bool
}

// AudioSource captures one bounded window of audio. Recorder is the real
// implementation; tests supply fakes.
type AudioSource interface {
	Record(ctx context.Context, window time.Duration) ([]byte, error)
	Supported() bool
}

// MicRecognizer is the default recognizer: subprocess microphone capture
// followed by HTTP transcription.
type MicRecognizer struct {
	recorder    AudioSource
	transcriber Transcriber
	window      time.Duration
}

// NewMicRecognizer wires a recorder and transcriber into a single-shot
// recognizer with the given capture window.
func NewMicRecognizer(recorder AudioSource, transcriber Transcriber, window time.Duration) *MicRecognizer {
	return &MicRecognizer{
		recorder:    recorder,
		transcriber: transcriber,
		window:      window,
	}
}

// Supported reports whether capture tooling exists on this host.
func (m *MicRecognizer) Supported() bool {
	return m.recorder.Supported()
}

// Recognize captures one window of audio and transcribes it.
func (m *MicRecognizer) Recognize(ctx context.Context) (string, error) {
	wav, err := m.recorder.Record(ctx, m.window)
	if err != nil {
		return "", err
	}

	transcript, err := m.transcriber.Transcribe(ctx, wav)
	if err != nil {
		return "", newError(KindOther, err)
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", newError(KindNoSpeech, nil)
	}
	return transcript, nil
}

// Service exposes recognition to the UI with a single-session guard: at most
// one recognition session is active at a time.
type Service struct {
	recognizer Recognizer
	listening  atomic.Bool
}

// NewService creates a speech service around the given recognizer.
func NewService(recognizer Recognizer) *Service {
	return &Service{recognizer: recognizer}
}

// IsListening reports whether a recognition session is currently active.
func (s *Service) IsListening() bool {
	return s.listening.Load()
}

// Recognize runs a single recognition session. It fails immediately when
// recognition is unsupported or a session is already active.
func (s *Service) Recognize(ctx context.Context) (string, error) {
	if !s.recognizer.Supported() {
		return "", newError(KindUnsupported, nil)
	}
	if !s.listening.CompareAndSwap(false, true) {
		return "", newError(KindAlreadyListening, nil)
	}
	defer s.listening.Store(false)

	log.Printf("Recognition session started")
	transcript, err := s.recognizer.Recognize(ctx)
	if err != nil {
		log.Printf("Recognition session failed: %v", err)
		return "", err
	}
	log.Printf("Recognition session finished: %d chars", len(transcript))
	return transcript, nil
}

// RecognizeWithTimeout races a recognition session against the given
// duration. On timeout the session context is cancelled so the capture
// subprocess is actually stopped, not just abandoned.
func (s *Service) RecognizeWithTimeout(ctx context.Context, timeout time.Duration) (string, error) {
	recognizeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		transcript string
		err        error
	}

	done := make(chan outcome, 1)
	go func() {
		transcript, err := s.Recognize(recognizeCtx)
		done <- outcome{transcript: transcript, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-done:
		return result.transcript, result.err
	case <-timer.C:
		cancel()
		<-done // wait for the session to wind down and release the guard
		return "", newError(KindTimeout, nil)
	case <-ctx.Done():
		cancel()
		<-done
		return "", ctx.Err()
	}
}

// MicrophoneAvailable is a best-effort probe: capture tooling present on this
// host. Never returns an error; degrades to false.
func (s *Service) MicrophoneAvailable() bool {
	return s.recognizer.Supported()
}
