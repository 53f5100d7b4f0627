package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reminderapi/model"
)

func TestTestConnection_Succeeds(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result, err := TestConnection(context.Background(), model.PlatformSlack, server.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success, got %+v", result)
	}
	if result.HTTPStatus != http.StatusOK {
		t.Errorf("expected status 200, got %d", result.HTTPStatus)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}
}

func TestTestConnection_Non2xxIsFailureNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	result, err := TestConnection(context.Background(), model.PlatformDingtalk, server.URL, nil)
	if err != nil {
		t.Fatalf("delivery problems must not surface as errors, got %v", err)
	}
	if result.Success {
		t.Error("expected failure for 403 response")
	}
	if result.HTTPStatus != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", result.HTTPStatus)
	}
	if result.Message == "" {
		t.Error("expected a human-readable failure message")
	}
}

func TestTestConnection_NetworkErrorIsFailureNotError(t *testing.T) {
	// Nothing listens here.
	result, err := TestConnection(context.Background(), model.PlatformFeishu, "http://127.0.0.1:1/hook", nil)
	if err != nil {
		t.Fatalf("network errors must not surface as errors, got %v", err)
	}
	if result.Success {
		t.Error("expected failure for unreachable endpoint")
	}
}

func TestTestConnection_SendsCustomHeaders(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := map[string]string{
		"bodyTemplate":         `{"text": "{{message}}"}`,
		"header.Authorization": "Bearer secret",
	}
	result, err := TestConnection(context.Background(), model.PlatformCustom, server.URL, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	// The test must hit the endpoint exactly as delivery would, custom
	// headers included, or an auth-protected endpoint fails the test while
	// real delivery succeeds.
	if gotAuth != "Bearer secret" {
		t.Errorf("expected custom header on connection test, got %q", gotAuth)
	}
}

func TestTestConnection_UnknownPlatform(t *testing.T) {
	if _, err := TestConnection(context.Background(), "telegram", "http://example.com", nil); err == nil {
		t.Fatal("expected error for unknown platform")
	}
}
