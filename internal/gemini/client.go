// Package gemini calls the Google Gemini generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/genconfig"
	"github.com/rs/zerolog"
)

// Client handles communication with the Gemini API. Endpoint, model and
// key come from the genconfig.Config passed to each call.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Gemini client. The default HTTP client has no
// timeout; cancel through the context instead.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64  `json:"temperature"`
	TopK            int      `json:"topK"`
	TopP            float64  `json:"topP"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
	StopSequences   []string `json:"stopSequences"`
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents         []content                 `json:"contents"`
	GenerationConfig generationConfig          `json:"generationConfig"`
	SafetySettings   []genconfig.SafetySetting `json:"safetySettings"`
}

// generateResponse holds the fields read from a generateContent reply.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Endpoint returns the generateContent URL for cfg.
func Endpoint(cfg genconfig.Config) string {
	return strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Model +
		":generateContent?key=" + url.QueryEscape(cfg.APIKey)
}

func newRequest(instruction string, cfg genconfig.Config) generateRequest {
	stops := cfg.StopSequences
	if stops == nil {
		stops = []string{}
	}
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
		GenerationConfig: generationConfig{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
			StopSequences:   stops,
		},
		SafetySettings: cfg.SafetySettings(),
	}
}

// GenerateContent sends instruction as a single-turn request and returns
// the first candidate's text unmodified. No retries are attempted.
func (c *Client) GenerateContent(ctx context.Context, instruction string, cfg genconfig.Config) (string, error) {
	if !cfg.HasAPIKey() {
		return "", errors.AuthMissing()
	}

	body, err := json.Marshal(newRequest(instruction, cfg))
	if err != nil {
		return "", errors.TransportFailed(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, Endpoint(cfg), bytes.NewReader(body))
	if err != nil {
		return "", errors.TransportFailed(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Debug().
		Str("model", cfg.Model).
		Int("instruction_runes", len([]rune(instruction))).
		Msg("Calling Gemini generateContent")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.TransportFailed(redactURLError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.TransportFailed(err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Gemini responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.APIFailed(resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", errors.MalformedResponse("body is not JSON", err)
	}
	if len(result.Candidates) == 0 {
		return "", errors.MalformedResponse("no candidates", nil)
	}
	parts := result.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", errors.MalformedResponse("first candidate has no text", nil)
	}

	return *parts[0].Text, nil
}

// redactURLError drops the request URL, which carries the key, from
// transport errors.
func redactURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return &url.Error{Op: ue.Op, URL: "(redacted)", Err: ue.Err}
	}
	return err
}
