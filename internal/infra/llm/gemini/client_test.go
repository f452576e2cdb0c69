package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luvit/moodfit/internal/domain/recommend"
	apperrors "github.com/luvit/moodfit/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		APIKey:     "gm-test",
		BaseURL:    server.URL,
		TextModel:  "gemini-3-flash-preview",
		ImageModel: "gemini-2.5-flash-image",
	}, testLogger())
}

func TestGenerateStructuredSendsSchema(t *testing.T) {
	var captured generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		require.Equal(t, "gm-test", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{{"text": `{"outfit":{"title":"Breezy Linen"}}`}}},
			}},
			"usageMetadata": map[string]int{"promptTokenCount": 90, "candidatesTokenCount": 60, "totalTokenCount": 150},
		})
	})

	raw, err := client.GenerateStructured(context.Background(), recommend.StructuredRequest{
		System: "system text",
		Prompt: "user text",
		Kind:   recommend.KindStyle,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"outfit":{"title":"Breezy Linen"}}`, string(raw))

	require.NotNil(t, captured.SystemInstruction)
	require.Equal(t, "system text", captured.SystemInstruction.Parts[0].Text)
	require.Equal(t, "user text", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.GenerationConfig)
	require.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
	require.Contains(t, captured.GenerationConfig.ResponseSchema["properties"], "outfit")
}

func TestGenerateStructuredLifestyleSchemaCoversAllSections(t *testing.T) {
	var captured generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"content": map[string]any{"parts": []map[string]any{{"text": `{}`}}}}},
		})
	})

	_, err := client.GenerateStructured(context.Background(), recommend.StructuredRequest{Kind: recommend.KindLifestyle})
	require.NoError(t, err)

	props, ok := captured.GenerationConfig.ResponseSchema["properties"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, props, "quote")
	require.Contains(t, props, "recipe")
	require.Contains(t, props, "workout")
	require.NotContains(t, props, "outfit")
}

func TestGenerateStructuredUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := client.GenerateStructured(context.Background(), recommend.StructuredRequest{Kind: recommend.KindLifestyle})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateStructuredNoTextPart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := client.GenerateStructured(context.Background(), recommend.StructuredRequest{Kind: recommend.KindLifestyle})
	require.Error(t, err)
}

func TestFailsClosedWithoutKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, TextModel: "m", ImageModel: "m"}, testLogger())

	_, err := client.GenerateStructured(context.Background(), recommend.StructuredRequest{Kind: recommend.KindLifestyle})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotConfigured))

	_, err = client.GenerateImage(context.Background(), "prompt", recommend.AspectSquare)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotConfigured))

	require.False(t, called, "no network call may happen without credentials")
}

func TestGenerateImageInlineData(t *testing.T) {
	var captured generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{
					{"text": "here is your image"},
					{"inlineData": map[string]string{"mimeType": "image/png", "data": "cGl4ZWxz"}},
				}},
			}},
		})
	})

	url, err := client.GenerateImage(context.Background(), "an outfit", recommend.AspectPortrait)
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,cGl4ZWxz", url)
	require.Contains(t, captured.Contents[0].Parts[0].Text, "3:4")
	require.Nil(t, captured.GenerationConfig)
}

func TestGenerateImageMissingInlineData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{{"text": "sorry, no image"}}},
			}},
		})
	})

	_, err := client.GenerateImage(context.Background(), "an outfit", recommend.AspectSquare)
	require.Error(t, err)
}
