package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Capture format: 16 kHz mono signed 16-bit PCM, what whisper-style servers expect.
const (
	SampleRate     = 16000
	BytesPerSample = 2
)

// Recorder command names
const (
	PipeWireRecordCommand = "pw-record"
	ALSARecordCommand     = "arecord"
)

// Recorder captures microphone audio as raw PCM via a pw-record or arecord
// subprocess piped to stdout. No CGo needed.
type Recorder struct {
	device string
}

// NewRecorder creates a recorder for the given capture device. An empty
// device uses the system default.
func NewRecorder(device string) *Recorder {
	return &Recorder{device: device}
}

// Supported reports whether any capture tooling is present on this host.
func (r *Recorder) Supported() bool {
	return recordCommand() != ""
}

// recordCommand returns the first available capture binary, preferring
// PipeWire over ALSA.
func recordCommand() string {
	if _, err := exec.LookPath(PipeWireRecordCommand); err == nil {
		return PipeWireRecordCommand
	}
	if _, err := exec.LookPath(ALSARecordCommand); err == nil {
		return ALSARecordCommand
	}
	return ""
}

// Record captures up to window of audio and returns it as a WAV payload.
// The session stops early when ctx is cancelled; audio captured before the
// cancellation is still returned.
func (r *Recorder) Record(ctx context.Context, window time.Duration) ([]byte, error) {
	command := recordCommand()
	if command == "" {
		return nil, newError(KindUnsupported, fmt.Errorf("neither %s nor %s found on PATH", PipeWireRecordCommand, ALSARecordCommand))
	}

	recordCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	args := r.buildArgs(command)
	cmd := exec.CommandContext(recordCtx, command, args...)

	var pcm bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &pcm
	cmd.Stderr = &stderr

	log.Printf("Recording via %s (%d Hz, window=%s)", command, SampleRate, window)
	err := cmd.Run()

	// Hitting the window deadline is the normal way a session ends. Only a
	// failure before any audio was captured is a real error.
	if err != nil && recordCtx.Err() == nil && pcm.Len() == 0 {
		return nil, classifyRecorderFailure(err, stderr.String())
	}
	if ctx.Err() != nil && pcm.Len() == 0 {
		return nil, ctx.Err()
	}

	if pcm.Len() == 0 {
		return nil, newError(KindNoSpeech, nil)
	}

	return encodeWAV(pcm.Bytes()), nil
}

// buildArgs assembles capture arguments for the chosen binary.
func (r *Recorder) buildArgs(command string) []string {
	if command == PipeWireRecordCommand {
		args := []string{
			"--format=s16",
			fmt.Sprintf("--rate=%d", SampleRate),
			"--channels=1",
			"-",
		}
		if r.device != "" {
			args = append([]string{"--target=" + r.device}, args...)
		}
		return args
	}

	args := []string{
		"-f", "S16_LE",
		"-r", fmt.Sprintf("%d", SampleRate),
		"-c", "1",
		"-t", "raw",
		"-q",
		"-",
	}
	if r.device != "" {
		args = append([]string{"-D", r.device}, args...)
	}
	return args
}

// classifyRecorderFailure maps subprocess stderr onto error categories.
func classifyRecorderFailure(err error, stderr string) error {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "permission denied") || strings.Contains(lower, "access denied"):
		return newError(KindPermissionDenied, err)
	case strings.Contains(lower, "no such device") ||
		strings.Contains(lower, "no such file") ||
		strings.Contains(lower, "cannot open") ||
		strings.Contains(lower, "device or resource busy"):
		return newError(KindNoMicrophone, err)
	default:
		return newError(KindOther, fmt.Errorf("recorder: %w (%s)", err, strings.TrimSpace(stderr)))
	}
}

// encodeWAV wraps raw s16le mono PCM in a RIFF/WAVE header.
func encodeWAV(pcm []byte) []byte {
	const headerSize = 44
	byteRate := SampleRate * BytesPerSample

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // fmt chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1))  // mono
	binary.Write(buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(BytesPerSample))   // block align
	binary.Write(buf, binary.LittleEndian, uint16(8*BytesPerSample)) // bits per sample
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
