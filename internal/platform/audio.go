package platform

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// Players tried in order on Linux for MP3 playback
var linuxAudioPlayers = []string{"mpv", "mpg123", "ffplay", "paplay", "aplay"}

// AudioPlayer plays TTS audio through an external system player. Audio bytes
// are staged in a uniquely named temp file; at most one staged file is live
// at a time, staging a new one removes the previous file first.
type AudioPlayer struct {
	mu      sync.Mutex
	current string // path of the live temp file, empty when none
}

// NewAudioPlayer creates an audio player.
func NewAudioPlayer() *AudioPlayer {
	return &AudioPlayer{}
}

// CurrentFile returns the path of the live staged audio file, or "".
func (p *AudioPlayer) CurrentFile() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Stage writes audio bytes to a fresh temp file and returns its path. The
// previously staged file, if any, is removed so only one is ever live.
func (p *AudioPlayer) Stage(audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio data to play")
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("rag-desk-tts-%s.mp3", uuid.NewString()))
	if err := os.WriteFile(path, audio, DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to stage audio: %w", err)
	}

	p.mu.Lock()
	previous := p.current
	p.current = path
	p.mu.Unlock()

	if previous != "" {
		if err := os.Remove(previous); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove previous audio file %s: %v", previous, err)
		}
	}

	return path, nil
}

// Play stages the audio and plays it with the system player, blocking until
// playback ends.
func (p *AudioPlayer) Play(audio []byte) error {
	path, err := p.Stage(audio)
	if err != nil {
		return err
	}

	command, args, err := playerCommand(path)
	if err != nil {
		return err
	}

	log.Printf("Playing %d audio bytes via %s", len(audio), command)
	if err := exec.Command(command, args...).Run(); err != nil {
		return fmt.Errorf("audio playback failed: %w", err)
	}
	return nil
}

// Release removes the staged audio file. Called on shutdown so no temp file
// outlives the process.
func (p *AudioPlayer) Release() {
	p.mu.Lock()
	path := p.current
	p.current = ""
	p.mu.Unlock()

	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove audio file %s: %v", path, err)
		}
	}
}

// playerCommand picks a playback command for the current OS.
func playerCommand(path string) (string, []string, error) {
	switch runtime.GOOS {
	case OSDarwin:
		return "afplay", []string{path}, nil
	case OSWindows:
		return CmdCommand, []string{WindowsCmdFlag, StartCommand, "/wait", "", path}, nil
	case OSLinux:
		for _, player := range linuxAudioPlayers {
			if _, err := exec.LookPath(player); err == nil {
				switch player {
				case "mpv":
					return player, []string{"--no-video", "--really-quiet", path}, nil
				case "ffplay":
					return player, []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}, nil
				default:
					return player, []string{path}, nil
				}
			}
		}
		return "", nil, fmt.Errorf("no audio player found (tried %v)", linuxAudioPlayers)
	default:
		return "", nil, fmt.Errorf("audio playback not supported on %s", runtime.GOOS)
	}
}
