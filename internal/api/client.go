package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/videorag/rag-desk/internal/model"
)

// Backend endpoints
const (
	EndpointHealth     = "/health"
	EndpointQuery      = "/api/query"
	EndpointOCR        = "/api/ocr"
	EndpointImageQuery = "/api/image-query"
	EndpointTTS        = "/api/tts"
)

// Multipart and JSON field names expected by the backend
const (
	FieldImage = "image"
	FieldQuery = "query"
	FieldTopK  = "top_k"
)

// URLStore persists a validated base URL across sessions. Settings satisfies
// this; tests supply a fake.
type URLStore interface {
	SetAPIBaseURL(url string) error
}

// Client talks to the RAG backend. Safe for concurrent use; the base URL is
// the only mutable field and is guarded.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	store      URLStore
}

// NewClient creates a backend client rooted at baseURL. store may be nil when
// persistence is not wanted (tests, one-shot probes).
func NewClient(baseURL string, store URLStore) *Client {
	return &Client{
		baseURL:    normalizeURL(baseURL),
		httpClient: &http.Client{},
		store:      store,
	}
}

// BaseURL returns the current backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL validates, normalizes, persists, and applies a new base URL.
func (c *Client) SetBaseURL(url string) error {
	normalized := normalizeURL(url)
	if normalized == "" {
		return ErrEmptyBaseURL
	}
	if c.store != nil {
		if err := c.store.SetAPIBaseURL(normalized); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.baseURL = normalized
	c.mu.Unlock()
	log.Printf("API base URL set to %s", normalized)
	return nil
}

func normalizeURL(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}

// Health fetches the backend health snapshot.
func (c *Client) Health(ctx context.Context) (*model.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+EndpointHealth, nil)
	if err != nil {
		return nil, err
	}

	var health model.Health
	if err := c.do(req, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// IsOnline reports whether the backend is reachable and healthy. Best effort;
// never returns an error.
func (c *Client) IsOnline(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Healthy()
}

// CheckConnection probes the backend and returns the normalized failure, or
// nil when it is reachable.
func (c *Client) CheckConnection(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}

// Retrieval depth bounds accepted by the backend
const (
	minTopK = 1
	maxTopK = 20
)

// clampTopK bounds the retrieval depth to what the backend accepts so an
// out-of-range value never reaches the wire.
func clampTopK(topK int) int {
	if topK < minTopK {
		return minTopK
	}
	if topK > maxTopK {
		return maxTopK
	}
	return topK
}

// QueryText sends a text query and returns the generated answer.
func (c *Client) QueryText(ctx context.Context, query string, topK int) (*model.QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	payload, err := json.Marshal(map[string]any{
		FieldQuery: query,
		FieldTopK:  clampTopK(topK),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+EndpointQuery, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result model.QueryResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	log.Printf("Text query answered: %d chars, %d chunks used", len(result.Answer), result.ChunksUsed)
	return &result, nil
}

// ExtractOCR uploads an image and returns the extracted text.
func (c *Client) ExtractOCR(ctx context.Context, imagePath string) (*model.OCRResult, error) {
	if strings.TrimSpace(imagePath) == "" {
		return nil, ErrNoImage
	}

	req, err := c.newImageRequest(ctx, EndpointOCR, imagePath, nil)
	if err != nil {
		return nil, err
	}

	var result model.OCRResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	log.Printf("OCR extracted %d chars from %s", len(result.ExtractedText), filepath.Base(imagePath))
	return &result, nil
}

// ImageQuery uploads an image plus an optional question and returns the
// combined OCR + retrieval answer.
func (c *Client) ImageQuery(ctx context.Context, imagePath, query string, topK int) (*model.ImageAnalysis, error) {
	if strings.TrimSpace(imagePath) == "" {
		return nil, ErrNoImage
	}

	fields := map[string]string{
		FieldQuery: strings.TrimSpace(query),
		FieldTopK:  strconv.Itoa(clampTopK(topK)),
	}
	req, err := c.newImageRequest(ctx, EndpointImageQuery, imagePath, fields)
	if err != nil {
		return nil, err
	}

	var analysis model.ImageAnalysis
	if err := c.do(req, &analysis); err != nil {
		return nil, err
	}
	log.Printf("Image query answered: %d chars extracted, %d chunks used",
		len(analysis.ExtractedText), analysis.ChunksUsed)
	return &analysis, nil
}

// TextToSpeech converts text into MP3 audio bytes.
func (c *Client) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+EndpointTTS, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, normalizeError(resp.StatusCode, body)
	}

	log.Printf("TTS generated %d audio bytes", len(body))
	return body, nil
}

// newImageRequest builds a multipart POST with the image file and extra form
// fields. Empty field values are omitted, matching what the web form sends.
func (c *Client) newImageRequest(ctx context.Context, endpoint, imagePath string, fields map[string]string) (*http.Request, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(FieldImage, filepath.Base(imagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// envelope is the backend's response wrapper. Some endpoints return a bare
// payload instead; Success stays nil in that case.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// do issues the request and decodes either a bare payload or a
// {success, data, error} envelope into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("response %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}

	if env.Success != nil {
		if !*env.Success {
			return &Error{StatusCode: resp.StatusCode, Message: env.Error}
		}
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return fmt.Errorf("decode %s data: %w", req.URL.Path, err)
			}
		}
		return nil
	}

	// Bare payload (health endpoint)
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s: %w", req.URL.Path, err)
		}
	}
	return nil
}

// normalizeError prefers the server-provided error message over a generic
// status-based one.
func normalizeError(statusCode int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			return &Error{StatusCode: statusCode, Message: env.Error}
		}
		if env.Message != "" {
			return &Error{StatusCode: statusCode, Message: env.Message}
		}
	}
	return &Error{StatusCode: statusCode}
}
