package model

import (
	"testing"
)

func TestOCRResult_HasText(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"Some extracted text", true},
		{"", false},
		{"   ", false},
		{NoTextFound, false},
		{"  " + NoTextFound + "  ", false},
		{"No text found", true}, // partial sentinel is real text
	}

	for _, test := range tests {
		result := &OCRResult{ExtractedText: test.text}
		if result.HasText() != test.expected {
			t.Errorf("HasText() with text=%q = %v, expected %v", test.text, result.HasText(), test.expected)
		}
	}
}

func TestImageAnalysis_HasText(t *testing.T) {
	analysis := &ImageAnalysis{ExtractedText: "invoice total 42.00", Answer: "The total is 42.00"}
	if !analysis.HasText() {
		t.Error("Expected HasText to be true for real extracted text")
	}

	empty := &ImageAnalysis{ExtractedText: NoTextFound}
	if empty.HasText() {
		t.Error("Expected HasText to be false for the no-text sentinel")
	}
}

func TestHealth_Healthy(t *testing.T) {
	healthy := &Health{Status: "healthy"}
	if !healthy.Healthy() {
		t.Error("Expected healthy status to report Healthy()")
	}

	unhealthy := &Health{Status: "unhealthy"}
	if unhealthy.Healthy() {
		t.Error("Expected unhealthy status to not report Healthy()")
	}
}

func TestHealth_ServiceAvailable(t *testing.T) {
	health := &Health{
		Status:   "healthy",
		Services: map[string]bool{"llm": true, "ocr": false},
	}

	if !health.ServiceAvailable("llm") {
		t.Error("Expected llm service to be available")
	}
	if health.ServiceAvailable("ocr") {
		t.Error("Expected ocr service to be unavailable")
	}
	if health.ServiceAvailable("tts") {
		t.Error("Expected unknown service to be unavailable")
	}
}
