package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/luvit/moodfit/internal/domain/recommend"
	apperrors "github.com/luvit/moodfit/pkg/errors"
	"github.com/luvit/moodfit/pkg/metrics"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config carries the OpenAI connection and model selection.
type Config struct {
	APIKey       string
	BaseURL      string
	ModelGeneral string
	ModelStyle   string
	ImageModel   string
	Temperature  float32
}

// Client calls the OpenAI chat completions and image APIs. Without an API
// key every method fails closed before touching the network.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs the client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger.With("component", "llm.openai"),
	}
}

func (c *Client) configured() error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return apperrors.Wrap(apperrors.CodeNotConfigured, "openai api key is not set", nil)
	}
	return nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateStructured implements recommend.ProviderClient. The JSON shape
// hint is appended to the prompt because json_object mode guarantees valid
// JSON but not the expected fields.
func (c *Client) GenerateStructured(ctx context.Context, req recommend.StructuredRequest) ([]byte, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}

	payload := chatCompletionRequest{
		Model: c.modelFor(req.Kind),
		Messages: []message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt + "\n\n" + shapeHint(req.Kind)},
		},
		Temperature:    c.cfg.Temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := c.post(ctx, "/chat/completions", payload)
	if err != nil {
		return nil, err
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	usage := metrics.TokenUsage{
		PromptTokens:     out.Usage.PromptTokens,
		CompletionTokens: out.Usage.CompletionTokens,
		TotalTokens:      out.Usage.TotalTokens,
	}
	if !usage.IsZero() {
		c.logger.Info("chat completion usage",
			"model", payload.Model,
			"kind", string(req.Kind),
			"promptTokens", usage.PromptTokens,
			"completionTokens", usage.CompletionTokens,
			"totalTokens", usage.TotalTokens)
	}

	return []byte(out.Choices[0].Message.Content), nil
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

// GenerateImage implements recommend.ProviderClient. Returns a data URI for
// base64 payloads, or the hosted URL when the API responds with one.
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspect recommend.AspectRatio) (string, error) {
	if err := c.configured(); err != nil {
		return "", err
	}

	payload := imageRequest{
		Model:  c.cfg.ImageModel,
		Prompt: prompt,
		N:      1,
		Size:   sizeFor(aspect),
	}
	body, err := c.post(ctx, "/images/generations", payload)
	if err != nil {
		return "", err
	}

	var out imageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if len(out.Data) == 0 {
		return "", fmt.Errorf("image response contained no data")
	}
	if out.Data[0].B64JSON != "" {
		return "data:image/png;base64," + out.Data[0].B64JSON, nil
	}
	if out.Data[0].URL != "" {
		return out.Data[0].URL, nil
	}
	return "", fmt.Errorf("image response contained neither payload nor url")
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("openai request failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) modelFor(kind recommend.RequestKind) string {
	if kind == recommend.KindStyle {
		return c.cfg.ModelStyle
	}
	return c.cfg.ModelGeneral
}

func sizeFor(aspect recommend.AspectRatio) string {
	switch aspect {
	case recommend.AspectPortrait:
		return "1024x1536"
	case recommend.AspectLandscape:
		return "1536x1024"
	default:
		return "1024x1024"
	}
}

func shapeHint(kind recommend.RequestKind) string {
	switch kind {
	case recommend.KindStyle:
		return `Return a single JSON object of this exact shape: {"outfit": {"title": string, "description": string, "proTip": string, "hashtags": [string], "items": [{"name": string, "type": string}]}}`
	case recommend.KindRecipe:
		return `Return a single JSON object of this exact shape: {"title": string, "calories": number, "protein": string, "time": string, "badge": string, "ingredients": [{"name": string, "amount": string}], "steps": [string]}`
	default:
		return `Return a single JSON object of this exact shape: {"quote": {"text": string, "author": string}, "recipe": {"title": string, "calories": number, "protein": string, "time": string, "badge": string, "ingredients": [{"name": string, "amount": string}], "steps": [string]}, "workout": {"title": string, "duration": string, "intensity": "Low"|"Med"|"High", "exercises": [{"name": string, "reps": string, "description": string}]}}`
	}
}

var _ recommend.ProviderClient = (*Client)(nil)
