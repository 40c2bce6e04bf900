package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSession_PassesPayloadThrough(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"sess_123","client_secret":{"value":"ek_abc","expires_at":1735689600}}`))
	}))
	defer upstream.Close()

	svc := NewRealtimeService("test-key", "gpt-4o-realtime-preview")
	svc.baseURL = upstream.URL

	payload, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotPath != "/realtime/sessions" {
		t.Errorf("Expected /realtime/sessions, got %q", gotPath)
	}
	if gotBody["model"] != "gpt-4o-realtime-preview" {
		t.Errorf("Expected model in request body, got %v", gotBody)
	}

	var decoded struct {
		ClientSecret struct {
			Value string `json:"value"`
		} `json:"client_secret"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if decoded.ClientSecret.Value != "ek_abc" {
		t.Errorf("Expected client_secret.value 'ek_abc', got %q", decoded.ClientSecret.Value)
	}
}

func TestCreateSession_UpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer upstream.Close()

	svc := NewRealtimeService("bad-key", "gpt-4o-realtime-preview")
	svc.baseURL = upstream.URL

	_, err := svc.CreateSession(context.Background())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
}

func TestCreateSession_ConnectionFailure(t *testing.T) {
	svc := NewRealtimeService("key", "model")
	svc.baseURL = "http://127.0.0.1:1"

	_, err := svc.CreateSession(context.Background())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
}
