// Package openai is a hand-rolled client for the OpenAI REST API,
// covering structured generation and image generation.
package openai

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

	apperrors "github.com/yungbote/contentforge-backend/internal/pkg/errors"
	"github.com/yungbote/contentforge-backend/internal/pkg/httpx"
	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/envutil"
)

// ImageRequest describes one image generation call. Style and palette
// hints are folded into the prompt; the images API has no dedicated
// fields for them.
type ImageRequest struct {
	Prompt string
	Size   string
	Style  string
	Colors []string
}

// ImageResult carries either raw bytes (b64 responses) or a short-lived
// download URL, whichever the API returned.
type ImageResult struct {
	Bytes    []byte
	MimeType string
	URL      string
}

// Client is the model-facing surface the services depend on.
type Client interface {
	// GenerateJSON asks for a response constrained to a strict JSON
	// schema and decodes it into out.
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error

	// GenerateText returns plain output text with no schema.
	GenerateText(ctx context.Context, system, user string) (string, error)

	// GenerateImage produces one raster image.
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	imageModel string
	imageSize  string
	httpClient *http.Client

	maxRetries  int
	temperature *float64
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := envutil.Str("OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	var temperature *float64
	if !envutil.Bool("OPENAI_DISABLE_TEMPERATURE", false) {
		t := envutil.Float("OPENAI_TEMPERATURE", 0.2)
		temperature = &t
	}

	return &client{
		log:         log.With("service", "OpenAIClient"),
		baseURL:     strings.TrimRight(envutil.Str("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		apiKey:      apiKey,
		model:       envutil.Str("OPENAI_MODEL", "gpt-4o"),
		imageModel:  envutil.Str("OPENAI_IMAGE_MODEL", "dall-e-3"),
		imageSize:   envutil.Str("OPENAI_IMAGE_SIZE", "1024x1024"),
		httpClient:  &http.Client{Timeout: envutil.Duration("OPENAI_TIMEOUT", 180*time.Second)},
		maxRetries:  envutil.Int("OPENAI_MAX_RETRIES", 4),
		temperature: temperature,
	}, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpx.Error{Service: "openai", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, method, path string, body any, out any) error {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w; raw=%s", uErr, string(raw))
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("OpenAI request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

// -------------------- Responses API --------------------

type responsesRequest struct {
	Model string `json:"model"`

	Input []responseInput `json:"input"`

	Text struct {
		Format map[string]any `json:"format,omitempty"`
	} `json:"text,omitempty"`

	Temperature *float64 `json:"temperature,omitempty"`
}

type responseInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func extractOutputText(resp responsesResponse) string {
	var out strings.Builder
	for _, item := range resp.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && c.Text != "" {
					out.WriteString(c.Text)
				}
			}
		}
	}
	return out.String()
}

func (c *client) generate(ctx context.Context, system, user string, format map[string]any) (string, error) {
	req := responsesRequest{
		Model: c.model,
		Input: []responseInput{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}
	req.Text.Format = format

	var resp responsesResponse
	if err := c.do(ctx, "POST", "/v1/responses", &req, &resp); err != nil {
		return "", err
	}
	if resp.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", resp.Refusal)
	}

	text := extractOutputText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no output_text found in response")
	}
	return text, nil
}

func (c *client) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error {
	if schemaName == "" {
		return errors.New("schemaName required")
	}
	if schema == nil {
		return errors.New("schema required")
	}

	text, err := c.generate(ctx, system, user, map[string]any{
		"type":   "json_schema",
		"name":   schemaName,
		"schema": schema,
		"strict": true,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse model JSON (%v): %w", err, apperrors.ErrSchemaMismatch)
	}
	return nil
}

func (c *client) GenerateText(ctx context.Context, system, user string) (string, error) {
	return c.generate(ctx, system, user, nil)
}

// -------------------- Images API --------------------

type imagesGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"` // b64_json|url
}

type imagesGenerationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

func (c *client) GenerateImage(ctx context.Context, in ImageRequest) (ImageResult, error) {
	var out ImageResult

	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return out, errors.New("image prompt required")
	}
	if in.Style != "" {
		prompt += ". Style: " + in.Style
	}
	if len(in.Colors) > 0 {
		prompt += ". Color palette: " + strings.Join(in.Colors, ", ")
	}

	size := strings.TrimSpace(in.Size)
	if size == "" {
		size = c.imageSize
	}
	responseFormat := "b64_json"
	if strings.HasPrefix(strings.ToLower(c.imageModel), "gpt-image-") {
		responseFormat = ""
	}

	req := imagesGenerationRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           size,
		ResponseFormat: responseFormat,
	}

	var resp imagesGenerationResponse
	if err := c.do(ctx, "POST", "/v1/images/generations", req, &resp); err != nil {
		return out, err
	}
	if len(resp.Data) == 0 {
		return out, errors.New("no image returned")
	}

	item := resp.Data[0]
	if b64 := strings.TrimSpace(item.B64JSON); b64 != "" {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil || len(raw) == 0 {
			return out, fmt.Errorf("decode image base64: %w", err)
		}
		out.Bytes = raw
		out.MimeType = "image/png"
		return out, nil
	}
	if u := strings.TrimSpace(item.URL); u != "" {
		out.URL = u
		return out, nil
	}
	return out, errors.New("image response missing b64_json and url")
}
