package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type fakeStore struct {
	saved string
	err   error
}

func (f *fakeStore) SetAPIBaseURL(url string) error {
	if f.err != nil {
		return f.err
	}
	f.saved = url
	return nil
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.png")
	if err := os.WriteFile(path, []byte("\x89PNG fake image bytes"), 0644); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}
	return path
}

func TestSetBaseURL(t *testing.T) {
	store := &fakeStore{}
	client := NewClient("http://initial:5000", store)

	if err := client.SetBaseURL("http://x/"); err != nil {
		t.Fatalf("SetBaseURL failed: %v", err)
	}
	if client.BaseURL() != "http://x" {
		t.Errorf("Expected normalized base URL http://x, got %s", client.BaseURL())
	}
	if store.saved != "http://x" {
		t.Errorf("Expected normalized URL persisted, got %s", store.saved)
	}
}

func TestSetBaseURL_RejectsEmpty(t *testing.T) {
	client := NewClient("http://initial:5000", nil)

	if err := client.SetBaseURL(""); !errors.Is(err, ErrEmptyBaseURL) {
		t.Errorf("Expected ErrEmptyBaseURL, got %v", err)
	}
	if err := client.SetBaseURL("  /  "); !errors.Is(err, ErrEmptyBaseURL) {
		t.Errorf("Expected ErrEmptyBaseURL for blank input, got %v", err)
	}
	if client.BaseURL() != "http://initial:5000" {
		t.Error("Base URL should be unchanged after rejected update")
	}
}

func TestSetBaseURL_StoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	client := NewClient("http://initial:5000", &fakeStore{err: storeErr})

	if err := client.SetBaseURL("http://x"); !errors.Is(err, storeErr) {
		t.Errorf("Expected store error to propagate, got %v", err)
	}
	if client.BaseURL() != "http://initial:5000" {
		t.Error("Base URL should be unchanged when persistence fails")
	}
}

func TestQueryText_RequestShape(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointQuery {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"answer": "42", "chunks_used": 3},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.QueryText(context.Background(), "  what is the answer  ", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured["query"] != "what is the answer" {
		t.Errorf("Expected trimmed query in body, got %v", captured["query"])
	}
	if captured["top_k"] != float64(5) {
		t.Errorf("Expected top_k 5 in body, got %v", captured["top_k"])
	}
	if len(captured) != 2 {
		t.Errorf("Expected exactly query and top_k fields, got %v", captured)
	}

	if result.Answer != "42" || result.ChunksUsed != 3 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestQueryText_ClampsTopK(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"answer": "ok"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	if _, err := client.QueryText(context.Background(), "q", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured["top_k"] != float64(maxTopK) {
		t.Errorf("Expected top_k clamped to %d, got %v", maxTopK, captured["top_k"])
	}

	if _, err := client.QueryText(context.Background(), "q", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured["top_k"] != float64(minTopK) {
		t.Errorf("Expected top_k clamped to %d, got %v", minTopK, captured["top_k"])
	}
}

func TestQueryText_EmptyQuery(t *testing.T) {
	client := NewClient("http://unused:5000", nil)

	if _, err := client.QueryText(context.Background(), "   ", 5); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}

func TestQueryText_ServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "bad input"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.QueryText(context.Background(), "hello", 5)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Message != "bad input" {
		t.Errorf("Expected server error message surfaced exactly, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.StatusCode)
	}
}

func TestQueryText_GenericErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.QueryText(context.Background(), "hello", 5)

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Error() != "server error (HTTP 502)" {
		t.Errorf("Expected generic status message, got %q", apiErr.Error())
	}
}

func TestQueryText_EnvelopeFailure(t *testing.T) {
	// success=false inside a 200 response still normalizes to an error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "LLM service is unavailable"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.QueryText(context.Background(), "hello", 5)

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != "LLM service is unavailable" {
		t.Errorf("Unexpected message: %q", apiErr.Message)
	}
}

func TestQueryText_NetworkFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)

	_, err := client.QueryText(context.Background(), "hello", 5)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := AsError(err); ok {
		t.Error("Transport failures should not be normalized into *api.Error")
	}
}

func TestExtractOCR(t *testing.T) {
	imagePath := writeTestImage(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointOCR {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		file, header, err := r.FormFile(FieldImage)
		if err != nil {
			t.Fatalf("missing image part: %v", err)
		}
		file.Close()
		if header.Filename != "sample.png" {
			t.Errorf("unexpected filename: %s", header.Filename)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"extracted_text": "hello ocr"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.ExtractOCR(context.Background(), imagePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExtractedText != "hello ocr" {
		t.Errorf("Unexpected extracted text: %q", result.ExtractedText)
	}
}

func TestExtractOCR_MissingImage(t *testing.T) {
	client := NewClient("http://unused:5000", nil)

	if _, err := client.ExtractOCR(context.Background(), ""); !errors.Is(err, ErrNoImage) {
		t.Errorf("Expected ErrNoImage, got %v", err)
	}
}

func TestImageQuery(t *testing.T) {
	imagePath := writeTestImage(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointImageQuery {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue(FieldQuery); got != "what is this" {
			t.Errorf("unexpected query field: %q", got)
		}
		if got := r.FormValue(FieldTopK); got != "7" {
			t.Errorf("unexpected top_k field: %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"extracted_text": "slide text",
				"answer":         "a slide about caching",
				"video_context":  "lecture 4",
				"chunks_used":    2,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	analysis, err := client.ImageQuery(context.Background(), imagePath, "what is this", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Answer != "a slide about caching" || analysis.ChunksUsed != 2 {
		t.Errorf("Unexpected analysis: %+v", analysis)
	}
}

func TestImageQuery_OmitsEmptyQueryField(t *testing.T) {
	imagePath := writeTestImage(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		if _, ok := r.MultipartForm.Value[FieldQuery]; ok {
			t.Error("Empty query field should be omitted from the form")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"extracted_text": "text only"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.ImageQuery(context.Background(), imagePath, "   ", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTextToSpeech(t *testing.T) {
	audio := []byte("ID3 fake mp3 bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointTTS {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["text"] != "read this aloud" {
			t.Errorf("unexpected text field: %q", body["text"])
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	got, err := client.TextToSpeech(context.Background(), " read this aloud ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(audio) {
		t.Error("Expected raw audio bytes returned unchanged")
	}
}

func TestTextToSpeech_EmptyText(t *testing.T) {
	client := NewClient("http://unused:5000", nil)

	if _, err := client.TextToSpeech(context.Background(), ""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
}

func TestTextToSpeech_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "TTS service is unavailable"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.TextToSpeech(context.Background(), "hello")

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != "TTS service is unavailable" {
		t.Errorf("Unexpected message: %q", apiErr.Message)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointHealth {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":           "healthy",
			"collection_count": 128,
			"collection":       "video_chunks",
			"services":         map[string]bool{"llm": true, "ocr": true, "tts": false},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !health.Healthy() {
		t.Error("Expected healthy backend")
	}
	if health.CollectionCount != 128 {
		t.Errorf("Unexpected collection count: %d", health.CollectionCount)
	}
	if health.ServiceAvailable("tts") {
		t.Error("Expected tts service to be reported down")
	}
}

func TestIsOnline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "healthy"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if !client.IsOnline(context.Background()) {
		t.Error("Expected backend to be online")
	}

	offline := NewClient("http://127.0.0.1:1", nil)
	if offline.IsOnline(context.Background()) {
		t.Error("Expected unreachable backend to be offline")
	}
}

func TestCheckConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"status": "unhealthy", "error": "Services not initialized"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.CheckConnection(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != "Services not initialized" {
		t.Errorf("Unexpected message: %q", apiErr.Message)
	}
}
