package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/BurntSushi/toml"

	"github.com/videorag/rag-desk/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL       = "api_base_url"
	KeyTopK             = "top_k"
	KeySTTEndpoint      = "stt_endpoint"
	KeyListenSeconds    = "listen_seconds"
	KeyLanguage         = "app_language"
	KeyAutoSpeakAnswers = "auto_speak_answers"
	KeyReportsDir       = "reports_directory"
)

// EnvAPIBaseURL overrides every other base URL source when set.
const EnvAPIBaseURL = "RAG_DESK_API_URL"

// Default values
const (
	DefaultBaseURL          = "http://localhost:5000"
	DefaultTopK             = 5
	MinTopK                 = 1
	MaxTopK                 = 20
	DefaultSTTEndpoint      = "http://localhost:9000/inference"
	DefaultListenSeconds    = 6
	MaxListenSeconds        = 30
	DefaultLanguage         = "system"
	DefaultAutoSpeakAnswers = false
)

// ErrEmptyBaseURL is returned when a caller tries to persist a blank API URL.
var ErrEmptyBaseURL = errors.New("API base URL must be a non-empty string")

// fileConfig mirrors the optional config.toml dropped next to the user config
// directory. It covers deployments where the app ships preconfigured.
type fileConfig struct {
	Server struct {
		URL string `toml:"url"`
	} `toml:"server"`
	Speech struct {
		Endpoint string `toml:"endpoint"`
	} `toml:"speech"`
}

// Settings manages application configuration backed by Fyne preferences.
type Settings struct {
	app fyne.App

	// fromFile caches values read from config.toml at startup.
	fromFile fileConfig
}

// NewSettings creates a new settings manager and loads the optional config
// file once.
func NewSettings(app fyne.App) *Settings {
	s := &Settings{app: app}
	s.loadConfigFile()
	return s
}

// loadConfigFile reads config.toml if present. A broken file is logged and
// ignored so the app still starts.
func (s *Settings) loadConfigFile() {
	path := configFilePath()
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if _, err := toml.DecodeFile(path, &s.fromFile); err != nil {
		log.Printf("Ignoring unreadable config file %s: %v", path, err)
		s.fromFile = fileConfig{}
	}
}

// configFilePath returns the expected config.toml location, honoring an
// explicit RAG_DESK_CONFIG override.
func configFilePath() string {
	if path := os.Getenv("RAG_DESK_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rag-desk", "config.toml")
}

// NormalizeBaseURL trims whitespace and strips a single trailing slash.
func NormalizeBaseURL(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}

// GetAPIBaseURL resolves the backend base URL. Priority: environment
// override, persisted preference, config file, local-development default.
func (s *Settings) GetAPIBaseURL() string {
	if url := NormalizeBaseURL(os.Getenv(EnvAPIBaseURL)); url != "" {
		return url
	}
	if url := NormalizeBaseURL(s.app.Preferences().String(KeyAPIBaseURL)); url != "" {
		return url
	}
	if url := NormalizeBaseURL(s.fromFile.Server.URL); url != "" {
		return url
	}
	return DefaultBaseURL
}

// SetAPIBaseURL validates, normalizes, and persists the backend base URL.
func (s *Settings) SetAPIBaseURL(url string) error {
	normalized := NormalizeBaseURL(url)
	if normalized == "" {
		return ErrEmptyBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, normalized)
	return nil
}

// GetTopK returns the retrieval depth for queries, clamped to the backend's
// accepted range.
func (s *Settings) GetTopK() int {
	value := s.app.Preferences().Int(KeyTopK)
	if value == 0 {
		return DefaultTopK
	}
	return clampTopK(value)
}

// SetTopK persists the retrieval depth, clamping out-of-range values.
func (s *Settings) SetTopK(topK int) {
	s.app.Preferences().SetInt(KeyTopK, clampTopK(topK))
}

func clampTopK(topK int) int {
	if topK < MinTopK {
		return MinTopK
	}
	if topK > MaxTopK {
		return MaxTopK
	}
	return topK
}

// GetSTTEndpoint returns the speech-to-text service URL used by voice input.
func (s *Settings) GetSTTEndpoint() string {
	if url := NormalizeBaseURL(s.app.Preferences().String(KeySTTEndpoint)); url != "" {
		return url
	}
	if url := NormalizeBaseURL(s.fromFile.Speech.Endpoint); url != "" {
		return url
	}
	return DefaultSTTEndpoint
}

// SetSTTEndpoint persists the speech-to-text service URL.
func (s *Settings) SetSTTEndpoint(url string) {
	s.app.Preferences().SetString(KeySTTEndpoint, NormalizeBaseURL(url))
}

// GetListenSeconds returns the microphone capture window for voice input.
func (s *Settings) GetListenSeconds() int {
	value := s.app.Preferences().Int(KeyListenSeconds)
	if value <= 0 {
		return DefaultListenSeconds
	}
	if value > MaxListenSeconds {
		return MaxListenSeconds
	}
	return value
}

// SetListenSeconds persists the microphone capture window.
func (s *Settings) SetListenSeconds(seconds int) {
	if seconds < 1 {
		seconds = 1
	}
	if seconds > MaxListenSeconds {
		seconds = MaxListenSeconds
	}
	s.app.Preferences().SetInt(KeyListenSeconds, seconds)
}

// GetLanguage returns the configured UI language.
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language.
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoSpeakAnswers returns whether answers are spoken automatically.
func (s *Settings) GetAutoSpeakAnswers() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoSpeakAnswers, DefaultAutoSpeakAnswers)
}

// SetAutoSpeakAnswers sets whether answers are spoken automatically.
func (s *Settings) SetAutoSpeakAnswers(auto bool) {
	s.app.Preferences().SetBool(KeyAutoSpeakAnswers, auto)
}

// GetReportsDirectory returns where analysis reports are saved.
func (s *Settings) GetReportsDirectory() string {
	dir := s.app.Preferences().String(KeyReportsDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), "rag-desk")
		}
		s.SetReportsDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetReportsDirectory sets where analysis reports are saved.
func (s *Settings) SetReportsDirectory(dir string) {
	s.app.Preferences().SetString(KeyReportsDir, dir)
}

// GetLanguageOptions returns available language options.
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
		"ru":     "Русский",
	}
}
