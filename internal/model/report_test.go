package model

import (
	"strings"
	"testing"
	"time"
)

func TestReport_Render(t *testing.T) {
	report := NewReport("screenshot.png", ImageAnalysis{
		ExtractedText: "chapter 3: indexing",
		Answer:        "The chapter covers inverted indexes.",
		ChunksUsed:    4,
	})

	body := report.Render()

	for _, want := range []string{
		ReportTitle,
		"Image: screenshot.png",
		"chapter 3: indexing",
		"The chapter covers inverted indexes.",
		"Knowledge base chunks used: 4",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Rendered report missing %q", want)
		}
	}
}

func TestReport_Render_EmptySections(t *testing.T) {
	report := NewReport("blank.jpg", ImageAnalysis{})
	body := report.Render()

	if !strings.Contains(body, NoTextFound) {
		t.Error("Expected placeholder for empty extracted text")
	}
	if !strings.Contains(body, "No answer generated.") {
		t.Error("Expected placeholder for empty answer")
	}
	if strings.Contains(body, "chunks used") {
		t.Error("Chunk count should be omitted when zero")
	}
}

func TestReport_SuggestedFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		imageName string
		prefix    string
	}{
		{"slide.png", "slide-report-"},
		{"my photo.jpeg", "my photo-report-"},
		{"bad/name:*.png", "bad_name__-report-"},
		{"", "analysis-report-"},
	}

	for _, test := range tests {
		report := &Report{ImageName: test.imageName, GeneratedAt: at}
		name := report.SuggestedFilename()
		if !strings.HasPrefix(name, test.prefix) {
			t.Errorf("SuggestedFilename() for %q = %q, expected prefix %q", test.imageName, name, test.prefix)
		}
		if !strings.HasSuffix(name, ".txt") {
			t.Errorf("SuggestedFilename() for %q = %q, expected .txt suffix", test.imageName, name)
		}
	}
}
