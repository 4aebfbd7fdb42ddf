package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Responder produces assistant replies for the non-persisted side-channel
type Responder interface {
	Reply(ctx context.Context, prompt string, history []ContextEntry) (string, error)
}

// NewResponder picks a responder for the configured assistant backend:
// an HTTP proxy when a URL is set, otherwise a canned fallback.
func NewResponder(assistantURL string) Responder {
	if assistantURL != "" {
		return &httpResponder{
			url:    assistantURL,
			client: &http.Client{Timeout: 25 * time.Second},
		}
	}
	return staticResponder{}
}

// httpResponder forwards the prompt and visible context to an upstream
// chatbot service and relays its reply
type httpResponder struct {
	url    string
	client *http.Client
}

type assistantRequest struct {
	Message string         `json:"message"`
	Context []ContextEntry `json:"context"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

func (r *httpResponder) Reply(ctx context.Context, prompt string, history []ContextEntry) (string, error) {
	body, err := json.Marshal(assistantRequest{Message: prompt, Context: history})
	if err != nil {
		return "", fmt.Errorf("failed to encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var parsed assistantResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode assistant reply: %w", err)
	}
	return parsed.Reply, nil
}

// staticResponder answers with a fixed line when no backend is configured
type staticResponder struct{}

func (staticResponder) Reply(_ context.Context, _ string, _ []ContextEntry) (string, error) {
	return "The assistant is not available right now, please try again later.", nil
}
