package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
)

// maxResponseBytes caps how much of the inference body is read
const maxResponseBytes = 1 << 20

var ErrRemoteUnavailable = errors.New("remote inference unavailable")

type (
	// Generator is the remote stage of the fallback chain.
	Generator interface {
		Generate(ctx context.Context, input string) (string, error)
	}

	// InferenceClient calls a hosted text-generation endpoint.
	InferenceClient struct {
		url        string
		token      string
		timeout    time.Duration
		httpClient *http.Client
	}
)

// NewGenerator returns the configured remote stage, or nil when INFERENCE_URL is empty.
func NewGenerator(cfg *config.Config) Generator {
	if !cfg.RemoteEnabled() {
		return nil
	}
	return NewInferenceClient(cfg.InferenceURL, cfg.InferenceToken, cfg.InferenceTimeout)
}

func NewInferenceClient(url, token string, timeout time.Duration) *InferenceClient {
	return &InferenceClient{
		url:        url,
		token:      token,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate makes a single attempt. Every failure mode wraps ErrRemoteUnavailable.
func (c *InferenceClient) Generate(ctx context.Context, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(inferenceRequest{Inputs: input})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %s", ErrRemoteUnavailable, resp.Status)
	}

	var results []inferenceResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("%w: failed to unmarshal response: %v", ErrRemoteUnavailable, err)
	}
	if len(results) == 0 || results[0].GeneratedText == nil {
		return "", fmt.Errorf("%w: response has no generated_text", ErrRemoteUnavailable)
	}

	return *results[0].GeneratedText, nil
}
