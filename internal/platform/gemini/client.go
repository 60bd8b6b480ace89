package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DocumentInput is an image, video or document artifact attached to a
// generation request, sent inline as base64.
type DocumentInput struct {
	Bytes    []byte
	MimeType string
}

// Client is the hosted multimodal model used for structured extraction.
//
// GenerateJSON returns the raw model text. It performs no retry: a single
// failed call fails the enclosing request, and the caller decides how a
// failure or an unparsable body is surfaced.
type Client interface {
	GenerateJSON(ctx context.Context, instruction string, schemaName string, schema map[string]any, doc *DocumentInput) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeoutSec := cfg.TimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 120
	}
	return &client{
		log:        log.With("service", "GeminiClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

func (c *client) GenerateJSON(ctx context.Context, instruction string, schemaName string, schema map[string]any, doc *DocumentInput) (string, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "", errors.New("instruction required")
	}

	parts := make([]map[string]any, 0, 2)
	if doc != nil && len(doc.Bytes) > 0 {
		mimeType := strings.TrimSpace(doc.MimeType)
		if mimeType == "" {
			mimeType = http.DetectContentType(doc.Bytes)
		}
		parts = append(parts, map[string]any{
			"inline_data": map[string]string{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(doc.Bytes),
			},
		})
	}
	parts = append(parts, map[string]any{"text": instruction})

	generationConfig := map[string]any{
		"responseMimeType": "application/json",
	}
	if schema != nil {
		generationConfig["responseSchema"] = schema
	}

	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": generationConfig,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", fmt.Errorf("read response: %w", readErr)
	}

	c.log.Debug("Gemini generateContent finished",
		"schema", schemaName,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w; raw=%s", err, string(raw))
	}
	if parsed.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt: %s", parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var out strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	return text, nil
}
