package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestValidateImageFile(t *testing.T) {
	tempDir := t.TempDir()

	goodImage := filepath.Join(tempDir, "photo.png")
	if err := os.WriteFile(goodImage, []byte("fake png"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if err := ValidateImageFile(goodImage); err != nil {
		t.Errorf("Expected valid image to pass, got: %v", err)
	}
}

func TestValidateImageFile_Rejections(t *testing.T) {
	tempDir := t.TempDir()

	textFile := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", "no image file provided"},
		{"missing file", filepath.Join(tempDir, "ghost.png"), "does not exist"},
		{"wrong extension", textFile, "invalid file type"},
		{"directory", tempDir, "directory"},
	}

	for _, test := range tests {
		err := ValidateImageFile(test.path)
		if err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: expected error containing %q, got %q", test.name, test.want, err.Error())
		}
	}
}

func TestValidateImageFile_SizeCap(t *testing.T) {
	tempDir := t.TempDir()
	bigImage := filepath.Join(tempDir, "huge.jpg")

	// Create a sparse file just over the cap without writing 16 MiB
	f, err := os.Create(bigImage)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := f.Truncate(MaxImageSizeBytes + 1); err != nil {
		f.Close()
		t.Fatalf("Failed to grow test file: %v", err)
	}
	f.Close()

	err = ValidateImageFile(bigImage)
	if err == nil {
		t.Fatal("Expected oversized image to be rejected")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected size error, got: %v", err)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{16 * 1024 * 1024, "16.0 MiB"},
	}

	for _, test := range tests {
		result := FormatFileSize(test.size)
		if result != test.expected {
			t.Errorf("FormatFileSize(%d) = %s, expected %s", test.size, result, test.expected)
		}
	}
}

func TestSaveReportFile(t *testing.T) {
	tempDir := t.TempDir()
	reportsDir := filepath.Join(tempDir, "reports")

	path, err := SaveReportFile(reportsDir, "analysis.txt", "report body")
	if err != nil {
		t.Fatalf("Failed to save report: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved report: %v", err)
	}
	if string(content) != "report body" {
		t.Errorf("Unexpected report content: %q", string(content))
	}

	if filepath.Dir(path) != reportsDir {
		t.Errorf("Report saved outside the reports directory: %s", path)
	}
}
