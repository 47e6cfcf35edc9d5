package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	elevenLabsDefaultBaseURL = "https://api.elevenlabs.io/v1"
	elevenLabsDefaultModel   = "eleven_multilingual_v2"
	// DefaultVoice is the ElevenLabs "Rachel" voice.
	DefaultVoice = "21m00Tcm4TlvDq8ikWAM"
)

// Synthesizer turns text into speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (Media, error)
}

// ElevenLabsClient implements Synthesizer using the ElevenLabs text-to-speech API.
type ElevenLabsClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// Ensure ElevenLabsClient implements Synthesizer.
var _ Synthesizer = (*ElevenLabsClient)(nil)

// NewElevenLabsClient creates a new ElevenLabs API client.
func NewElevenLabsClient(apiKey string) *ElevenLabsClient {
	return &ElevenLabsClient{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		model:      elevenLabsDefaultModel,
		baseURL:    elevenLabsDefaultBaseURL,
	}
}

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to MPEG audio with the given voice id, or
// DefaultVoice when voice is empty.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, voice string) (Media, error) {
	if voice == "" {
		voice = DefaultVoice
	}

	bodyBytes, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: c.model})
	if err != nil {
		return Media{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/text-to-speech/" + url.PathEscape(voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return Media{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Media{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Media{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Media{}, fmt.Errorf("elevenlabs API error (status %d): %s", resp.StatusCode, string(respBytes))
	}
	if len(respBytes) == 0 {
		return Media{}, ErrEmptyResponse
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}
	return Media{MIMEType: mimeType, Data: respBytes}, nil
}
