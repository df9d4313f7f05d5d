// Package elevenlabs implements the voice.Cloner and voice.Synthesizer
// interfaces against the ElevenLabs HTTP API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/remnant-app/remnant-api/internal/config"
	"github.com/remnant-app/remnant-api/internal/voice"
)

const (
	// requestTimeout bounds every provider call; synthesis of long texts is
	// the slowest operation we make.
	requestTimeout = 60 * time.Second

	// maxErrorBodyLen limits how much of a provider error body is carried
	// into our error messages and logs.
	maxErrorBodyLen = 200

	voiceSettingsStability       = 0.5
	voiceSettingsSimilarityBoost = 0.75
)

// Client talks to the ElevenLabs voice-cloning and text-to-speech API.
type Client struct {
	baseURL    string
	apiKey     string
	modelID    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure Client implements the provider interfaces
var (
	_ voice.Cloner      = (*Client)(nil)
	_ voice.Synthesizer = (*Client)(nil)
)

// NewClient creates an ElevenLabs client from the voice configuration.
// Returns voice.ErrInvalidConfig when the API key or base URL is missing, so
// a misconfigured deployment fails at startup rather than on first use.
func NewClient(cfg config.VoiceConfig, log *slog.Logger) (*Client, error) {
	if cfg.ElevenLabsAPIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", voice.ErrInvalidConfig)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", voice.ErrInvalidConfig)
	}

	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%w: model ID cannot be empty", voice.ErrInvalidConfig)
	}

	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.ElevenLabsAPIKey,
		modelID:    cfg.ModelID,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     log.With(slog.String("component", "elevenlabs")),
	}, nil
}

// addVoiceResponse is the subset of the provider's voice-add response we use.
type addVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

// ttsRequest is the JSON body of a text-to-speech call.
type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// CloneVoice implements voice.Cloner. It submits the sample as a multipart
// upload to the provider's voice-add endpoint and returns the issued voice
// identifier. A single attempt is made; failures surface as ErrUpstream.
func (c *Client) CloneVoice(
	ctx context.Context,
	name, description string,
	sample []byte,
	mimeType string,
) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("name", name); err != nil {
		return "", fmt.Errorf("failed to write multipart field: %w", err)
	}

	if err := writer.WriteField("description", description); err != nil {
		return "", fmt.Errorf("failed to write multipart field: %w", err)
	}

	part, err := writer.CreateFormFile("files", sampleFileName(mimeType))
	if err != nil {
		return "", fmt.Errorf("failed to create multipart file: %w", err)
	}

	if _, err := part.Write(sample); err != nil {
		return "", fmt.Errorf("failed to write sample bytes: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/voices/add", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", voice.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.upstreamError("voice clone", resp)
	}

	var decoded addVoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: failed to decode voice-add response: %v", voice.ErrUpstream, err)
	}

	if decoded.VoiceID == "" {
		return "", fmt.Errorf("%w: no voice ID in provider response", voice.ErrUpstream)
	}

	c.logger.InfoContext(ctx, "voice clone created",
		slog.String("voice_id", decoded.VoiceID))
	return decoded.VoiceID, nil
}

// Synthesize implements voice.Synthesizer. It posts the text to the
// provider's text-to-speech endpoint for the given voice and returns the
// audio bytes with their content type.
func (c *Client) Synthesize(ctx context.Context, voiceID, text string) ([]byte, string, error) {
	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       voiceSettingsStability,
			SimilarityBoost: voiceSettingsSimilarityBoost,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	url := c.baseURL + "/v1/text-to-speech/" + voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", voice.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", c.upstreamError("synthesis", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to read audio response: %v", voice.ErrUpstream, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	return audio, contentType, nil
}

// upstreamError builds an ErrUpstream from a non-2xx provider response,
// carrying the status code and a truncated body.
func (c *Client) upstreamError(operation string, resp *http.Response) error {
	detail, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil {
		detail = nil
	}

	c.logger.Error("provider request failed",
		slog.String("operation", operation),
		slog.Int("status", resp.StatusCode),
		slog.String("detail", string(detail)))

	return fmt.Errorf("%w: %s returned status %d: %s",
		voice.ErrUpstream, operation, resp.StatusCode, string(detail))
}

// sampleFileName picks a filename whose extension matches the sample's MIME
// type; the provider uses the extension to sniff the container format.
func sampleFileName(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"):
		return "voice-sample.webm"
	case strings.Contains(mimeType, "mpeg"), strings.Contains(mimeType, "mp3"):
		return "voice-sample.mp3"
	case strings.Contains(mimeType, "wav"):
		return "voice-sample.wav"
	default:
		return "voice-sample"
	}
}
