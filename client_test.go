package aarogyam

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected baseURL %q, got %q", DefaultBaseURL, client.baseURL)
	}

	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}

	if client.Auth == nil {
		t.Error("expected Auth service to be initialized")
	}
	if client.Hospitals == nil {
		t.Error("expected Hospitals service to be initialized")
	}
	if client.Records == nil {
		t.Error("expected Records service to be initialized")
	}
	if client.Resources == nil {
		t.Error("expected Resources service to be initialized")
	}
	if client.Appointments == nil {
		t.Error("expected Appointments service to be initialized")
	}
	if client.Practitioners == nil {
		t.Error("expected Practitioners service to be initialized")
	}
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{Timeout: 60 * time.Second}
	customURL := "https://aarogyam.example.org"

	client := NewClient(
		WithBaseURL(customURL),
		WithHTTPClient(customClient),
		WithToken("tok-1"),
	)

	if client.BaseURL() != customURL {
		t.Errorf("expected baseURL %q, got %q", customURL, client.BaseURL())
	}
	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be set")
	}
	if client.Token() != "tok-1" {
		t.Errorf("expected token to be set, got %q", client.Token())
	}
}

func TestNewClient_WithTimeout(t *testing.T) {
	client := NewClient(WithTimeout(5 * time.Second))

	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", client.httpClient.Timeout)
	}
}

func TestClient_SetToken(t *testing.T) {
	client := NewClient()
	if client.Token() != "" {
		t.Errorf("expected empty token, got %q", client.Token())
	}

	client.SetToken("abc")
	if client.Token() != "abc" {
		t.Errorf("expected token %q, got %q", "abc", client.Token())
	}

	client.SetToken("")
	if client.Token() != "" {
		t.Error("expected SetToken to clear the token")
	}
}

// newTestServer creates a test server and a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(WithBaseURL(server.URL), WithToken("test-token"))
	t.Cleanup(server.Close)
	return server, client
}
