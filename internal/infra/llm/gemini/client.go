package gemini

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

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Config carries the Gemini connection and model selection.
type Config struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

// Client calls the Gemini generateContent API. Without an API key every
// method fails closed before touching the network.
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
		logger: logger.With("component", "llm.gemini"),
	}
}

func (c *Client) configured() error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return apperrors.Wrap(apperrors.CodeNotConfigured, "gemini api key is not set", nil)
	}
	return nil
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// GenerateStructured implements recommend.ProviderClient. The response
// schema pins the expected fields so the model cannot drop sections.
func (c *Client) GenerateStructured(ctx context.Context, req recommend.StructuredRequest) ([]byte, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema(req.Kind),
		},
	}
	if req.System != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: req.System}}}
	}

	out, err := c.generate(ctx, c.cfg.TextModel, payload)
	if err != nil {
		return nil, err
	}

	usage := metrics.TokenUsage{
		PromptTokens:     out.UsageMetadata.PromptTokenCount,
		CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      out.UsageMetadata.TotalTokenCount,
	}
	if !usage.IsZero() {
		c.logger.Info("generate content usage",
			"model", c.cfg.TextModel,
			"kind", string(req.Kind),
			"promptTokens", usage.PromptTokens,
			"completionTokens", usage.CompletionTokens,
			"totalTokens", usage.TotalTokens)
	}

	for _, candidate := range out.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				return []byte(p.Text), nil
			}
		}
	}
	return nil, fmt.Errorf("generate content returned no text part")
}

// GenerateImage implements recommend.ProviderClient. The image arrives as
// an inline base64 part and is returned as a data URI. The aspect ratio is
// expressed in the prompt; the image endpoint takes no size parameter.
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspect recommend.AspectRatio) (string, error) {
	if err := c.configured(); err != nil {
		return "", err
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{
			Text: prompt + " Aspect ratio: " + string(aspect) + ".",
		}}}},
	}
	out, err := c.generate(ctx, c.cfg.ImageModel, payload)
	if err != nil {
		return "", err
	}

	for _, candidate := range out.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				mimeType := p.InlineData.MimeType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return "data:" + mimeType + ";base64," + p.InlineData.Data, nil
			}
		}
	}
	return "", fmt.Errorf("generate content returned no inline image")
}

func (c *Client) generate(ctx context.Context, model string, payload generateRequest) (generateResponse, error) {
	var out generateResponse
	encoded, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return out, fmt.Errorf("request gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return out, fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func responseSchema(kind recommend.RequestKind) map[string]any {
	switch kind {
	case recommend.KindStyle:
		return objectSchema(map[string]any{
			"outfit": outfitSchema(),
		}, "outfit")
	case recommend.KindRecipe:
		return recipeSchema()
	default:
		return objectSchema(map[string]any{
			"quote": objectSchema(map[string]any{
				"text":   stringSchema(),
				"author": stringSchema(),
			}, "text"),
			"recipe":  recipeSchema(),
			"workout": workoutSchema(),
		}, "quote", "recipe", "workout")
	}
}

func recipeSchema() map[string]any {
	return objectSchema(map[string]any{
		"title":    stringSchema(),
		"calories": map[string]any{"type": "NUMBER"},
		"protein":  stringSchema(),
		"time":     stringSchema(),
		"badge":    stringSchema(),
		"ingredients": arraySchema(objectSchema(map[string]any{
			"name":   stringSchema(),
			"amount": stringSchema(),
		}, "name")),
		"steps": arraySchema(stringSchema()),
	}, "title", "time", "ingredients", "steps")
}

func outfitSchema() map[string]any {
	return objectSchema(map[string]any{
		"title":       stringSchema(),
		"description": stringSchema(),
		"proTip":      stringSchema(),
		"hashtags":    arraySchema(stringSchema()),
		"items": arraySchema(objectSchema(map[string]any{
			"name": stringSchema(),
			"type": stringSchema(),
		}, "name")),
	}, "title", "items")
}

func workoutSchema() map[string]any {
	return objectSchema(map[string]any{
		"title":     stringSchema(),
		"duration":  stringSchema(),
		"intensity": map[string]any{"type": "STRING", "enum": []string{"Low", "Med", "High"}},
		"exercises": arraySchema(objectSchema(map[string]any{
			"name":        stringSchema(),
			"reps":        stringSchema(),
			"description": stringSchema(),
		}, "name")),
	}, "title", "exercises")
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "OBJECT",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func arraySchema(items map[string]any) map[string]any {
	return map[string]any{"type": "ARRAY", "items": items}
}

func stringSchema() map[string]any {
	return map[string]any{"type": "STRING"}
}

var _ recommend.ProviderClient = (*Client)(nil)
