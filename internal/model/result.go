package model

import "strings"

// NoTextFound is the sentinel answer the backend returns when OCR succeeds
// but the image contains no readable text.
const NoTextFound = "No text found in image"

// QueryResult represents the backend's answer to a text query.
type QueryResult struct {
	Answer     string `json:"answer"`
	ChunksUsed int    `json:"chunks_used"`
}

// OCRResult represents the text extracted from an uploaded image.
type OCRResult struct {
	ExtractedText string `json:"extracted_text"`
}

// HasText returns true if the extraction produced usable text.
func (r *OCRResult) HasText() bool {
	text := strings.TrimSpace(r.ExtractedText)
	return text != "" && text != NoTextFound
}

// ImageAnalysis represents the combined OCR + retrieval answer for an image query.
type ImageAnalysis struct {
	ExtractedText string `json:"extracted_text"`
	Answer        string `json:"answer"`
	VideoContext  string `json:"video_context"`
	ChunksUsed    int    `json:"chunks_used"`
}

// HasText returns true if OCR found readable text in the image.
func (a *ImageAnalysis) HasText() bool {
	text := strings.TrimSpace(a.ExtractedText)
	return text != "" && text != NoTextFound
}

// Health represents the backend health snapshot from GET /health.
type Health struct {
	Status          string          `json:"status"`
	CollectionCount int             `json:"collection_count"`
	Collection      string          `json:"collection"`
	Services        map[string]bool `json:"services"`
}

// Healthy returns true when the backend reports itself operational.
func (h *Health) Healthy() bool {
	return h.Status == "healthy"
}

// ServiceAvailable reports whether a named backend service (llm, ocr, tts,
// embeddings, vector_db) is up. Unknown names report false.
func (h *Health) ServiceAvailable(name string) bool {
	return h.Services[name]
}
