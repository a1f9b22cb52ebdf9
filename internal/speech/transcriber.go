package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Transcriber converts captured audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// HTTPTranscriber posts WAV audio to a whisper-style HTTP inference endpoint
// (multipart field "file", JSON response carrying the transcript).
type HTTPTranscriber struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPTranscriber creates a transcriber for the given inference endpoint.
func NewHTTPTranscriber(endpoint string) *HTTPTranscriber {
	return &HTTPTranscriber{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Transcribe uploads the audio and returns the transcript text.
func (t *HTTPTranscriber) Transcribe(ctx context.Context, wav []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "capture.wav")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(wav); err != nil {
		return "", err
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("stt response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("stt service returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// Whisper servers answer {"text": ...}; some builds use {"transcript": ...}.
	var parsed struct {
		Text       string `json:"text"`
		Transcript string `json:"transcript"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode stt response: %w", err)
	}

	if parsed.Text != "" {
		return strings.TrimSpace(parsed.Text), nil
	}
	return strings.TrimSpace(parsed.Transcript), nil
}
