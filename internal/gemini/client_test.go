package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/genconfig"
	"github.com/HartBrook/promptwizard/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) genconfig.Config {
	return genconfig.Default().With(genconfig.Changes{
		BaseURL: genconfig.String(baseURL),
		APIKey:  genconfig.String("test-key"),
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient()

	require.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.Zero(t, client.httpClient.Timeout)
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{}
	client := NewClient(WithHTTPClient(customClient))

	assert.Equal(t, customClient, client.httpClient)
}

func TestEndpoint(t *testing.T) {
	cfg := genconfig.Default().With(genconfig.Changes{
		BaseURL: genconfig.String("https://example.com/v1beta/models/"),
		APIKey:  genconfig.String("a b&c"),
	})

	assert.Equal(t,
		"https://example.com/v1beta/models/gemini-1.5-flash:generateContent?key=a+b%26c",
		Endpoint(cfg))
}

func TestClient_GenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "optimize this", req.Contents[0].Parts[0].Text)
		assert.Equal(t, 0.7, req.GenerationConfig.Temperature)
		assert.Equal(t, 40, req.GenerationConfig.TopK)
		assert.Equal(t, 0.95, req.GenerationConfig.TopP)
		assert.Equal(t, 2048, req.GenerationConfig.MaxOutputTokens)
		assert.NotNil(t, req.GenerationConfig.StopSequences)
		require.Len(t, req.SafetySettings, 4)
		assert.Equal(t, genconfig.HarmHarassment, req.SafetySettings[0].Category)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  優化後的提示詞\n"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	text, err := NewClient().GenerateContent(context.Background(), "optimize this", testConfig(server.URL))

	require.NoError(t, err)
	assert.Equal(t, "  優化後的提示詞\n", text)
}

func TestClient_GenerateContent_RawBodyShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(body, &doc))
		assert.Contains(t, doc, "contents")
		assert.Contains(t, doc, "generationConfig")
		assert.Contains(t, doc, "safetySettings")

		gen := doc["generationConfig"].(map[string]any)
		for _, k := range []string{"temperature", "topK", "topP", "maxOutputTokens", "stopSequences"} {
			assert.Contains(t, gen, k)
		}

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	_, err := NewClient().GenerateContent(context.Background(), "x", testConfig(server.URL))
	require.NoError(t, err)
}

func TestClient_GenerateContent_NoKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := testConfig(server.URL).With(genconfig.Changes{APIKey: genconfig.String("")})
	_, err := NewClient().GenerateContent(context.Background(), "x", cfg)

	assert.True(t, errors.Is(err, errors.ErrAuthMissing))
	assert.False(t, called, "no request without a key")
}

func TestClient_GenerateContent_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer server.Close()

	_, err := NewClient().GenerateContent(context.Background(), "x", testConfig(server.URL))

	require.Error(t, err)
	var we *errors.WizardError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, errors.ErrAPIFailed, we.Code)
	assert.Equal(t, 400, we.Status)
	assert.Contains(t, we.Body, "API key not valid")
}

func TestClient_GenerateContent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"no candidates", `{"candidates":[]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"no text", `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`},
		{"blocked", `{"promptFeedback":{"blockReason":"SAFETY"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient().GenerateContent(context.Background(), "x", testConfig(server.URL))
			assert.True(t, errors.Is(err, errors.ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestClient_GenerateContent_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient().GenerateContent(context.Background(), "x", testConfig(url))

	assert.True(t, errors.Is(err, errors.ErrTransportFailed))
	assert.NotContains(t, err.Error(), "test-key")
}

func TestClient_GenerateContent_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().GenerateContent(ctx, "x", testConfig(server.URL))
	assert.True(t, errors.Is(err, errors.ErrTransportFailed))
}

func TestClient_DebugLogOmitsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	client := NewClient(WithLogger(logging.New(&buf, zerolog.DebugLevel)))

	_, err := client.GenerateContent(context.Background(), "x", testConfig(server.URL))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Calling Gemini generateContent")
	assert.NotContains(t, buf.String(), "test-key")
}
