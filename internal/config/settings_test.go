package config

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"http://x/", "http://x"},
		{"http://x", "http://x"},
		{"  http://backend:5000/  ", "http://backend:5000"},
		{"", ""},
		{"   ", ""},
	}

	for _, test := range tests {
		result := NormalizeBaseURL(test.input)
		if result != test.expected {
			t.Errorf("NormalizeBaseURL(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestAPIBaseURL_SetAndGet(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Default when nothing configured
	if url := settings.GetAPIBaseURL(); url != DefaultBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultBaseURL, url)
	}

	// Persisted value is normalized
	if err := settings.SetAPIBaseURL("http://x/"); err != nil {
		t.Fatalf("SetAPIBaseURL failed: %v", err)
	}
	if url := settings.GetAPIBaseURL(); url != "http://x" {
		t.Errorf("Expected normalized URL http://x, got %s", url)
	}
}

func TestAPIBaseURL_RejectsEmpty(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if err := settings.SetAPIBaseURL(""); err != ErrEmptyBaseURL {
		t.Errorf("Expected ErrEmptyBaseURL for empty input, got %v", err)
	}
	if err := settings.SetAPIBaseURL("   /"); err != ErrEmptyBaseURL {
		t.Errorf("Expected ErrEmptyBaseURL for blank input, got %v", err)
	}
}

func TestAPIBaseURL_EnvOverrideWins(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetAPIBaseURL("http://persisted:5000")
	t.Setenv(EnvAPIBaseURL, "http://override:8080/")

	if url := settings.GetAPIBaseURL(); url != "http://override:8080" {
		t.Errorf("Expected env override to win, got %s", url)
	}
}

func TestAPIBaseURL_ConfigFileTier(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[server]\nurl = \"http://from-file:5000/\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("RAG_DESK_CONFIG", path)

	app := test.NewApp()
	settings := NewSettings(app)

	// File tier applies when no env override or preference is set
	if url := settings.GetAPIBaseURL(); url != "http://from-file:5000" {
		t.Errorf("Expected config file URL, got %s", url)
	}

	// A persisted preference outranks the file
	settings.SetAPIBaseURL("http://persisted:5000")
	if url := settings.GetAPIBaseURL(); url != "http://persisted:5000" {
		t.Errorf("Expected preference to outrank config file, got %s", url)
	}
}

func TestTopK(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if topK := settings.GetTopK(); topK != DefaultTopK {
		t.Errorf("Expected default top_k %d, got %d", DefaultTopK, topK)
	}

	settings.SetTopK(8)
	if topK := settings.GetTopK(); topK != 8 {
		t.Errorf("Expected top_k 8, got %d", topK)
	}

	// Boundary values are clamped
	settings.SetTopK(0)
	if settings.GetTopK() != MinTopK {
		t.Error("top_k should be clamped to minimum")
	}

	settings.SetTopK(100)
	if settings.GetTopK() != MaxTopK {
		t.Error("top_k should be clamped to maximum")
	}
}

func TestListenSeconds(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if secs := settings.GetListenSeconds(); secs != DefaultListenSeconds {
		t.Errorf("Expected default listen window %d, got %d", DefaultListenSeconds, secs)
	}

	settings.SetListenSeconds(0)
	if settings.GetListenSeconds() != 1 {
		t.Error("Listen window should be clamped to minimum 1")
	}

	settings.SetListenSeconds(120)
	if settings.GetListenSeconds() != MaxListenSeconds {
		t.Error("Listen window should be clamped to maximum")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("es")
	if lang := settings.GetLanguage(); lang != "es" {
		t.Errorf("Expected language es, got %s", lang)
	}
}

func TestAutoSpeakAnswers(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoSpeakAnswers() != DefaultAutoSpeakAnswers {
		t.Error("Unexpected default for auto-speak answers")
	}

	settings.SetAutoSpeakAnswers(true)
	if !settings.GetAutoSpeakAnswers() {
		t.Error("Expected auto-speak answers to be enabled")
	}
}

func TestReportsDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if dir := settings.GetReportsDirectory(); dir == "" {
		t.Error("Reports directory should not be empty")
	}

	custom := "/custom/reports"
	settings.SetReportsDirectory(custom)
	if dir := settings.GetReportsDirectory(); dir != custom {
		t.Errorf("Expected reports directory %s, got %s", custom, dir)
	}
}
