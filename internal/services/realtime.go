package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultRealtimeBaseURL = "https://api.openai.com/v1"

// RealtimeService mints ephemeral session tokens for the realtime voice
// provider. The provider's JSON payload (including client_secret.value) is
// passed through to the caller untouched; the client uses it to establish a
// separate audio connection that never touches this process.
type RealtimeService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewRealtimeService(apiKey, model string) *RealtimeService {
	return &RealtimeService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultRealtimeBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *RealtimeService) CreateSession(ctx context.Context) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{
		"model": s.model,
		"voice": "alloy",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/realtime/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "Realtime session request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: "Failed to read realtime session response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Message: fmt.Sprintf("Realtime session endpoint returned %d", resp.StatusCode),
		}
	}

	return json.RawMessage(body), nil
}
