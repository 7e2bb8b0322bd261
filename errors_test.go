package aarogyam

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestParseError_StructuredBody(t *testing.T) {
	err := parseError(http.StatusBadRequest, []byte(`{"message":"email already registered"}`))

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "email already registered" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Code != "bad_request" {
		t.Errorf("unexpected code %q", apiErr.Code)
	}
}

func TestParseError_ErrorField(t *testing.T) {
	err := parseError(http.StatusUnauthorized, []byte(`{"error":"token is invalid"}`))

	apiErr, _ := AsAPIError(err)
	if apiErr.Message != "token is invalid" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if !apiErr.IsUnauthorized() {
		t.Error("expected unauthorized predicate to hold")
	}
}

func TestParseError_UnstructuredBody(t *testing.T) {
	body := strings.Repeat("x", 200)
	err := parseError(http.StatusBadGateway, []byte(body))

	apiErr, _ := AsAPIError(err)
	if apiErr.Code != "server_error" {
		t.Errorf("unexpected code %q", apiErr.Code)
	}
	if !strings.HasSuffix(apiErr.RawResponse, "...") {
		t.Error("expected raw response to be truncated")
	}
	if len(apiErr.RawResponse) > 160 {
		t.Errorf("snippet too long: %d bytes", len(apiErr.RawResponse))
	}
}

func TestErrorPredicates(t *testing.T) {
	cases := []struct {
		status int
		check  func(*Error) bool
	}{
		{http.StatusUnauthorized, (*Error).IsUnauthorized},
		{http.StatusForbidden, (*Error).IsForbidden},
		{http.StatusNotFound, (*Error).IsNotFound},
	}
	for _, tc := range cases {
		e := &Error{StatusCode: tc.status}
		if !tc.check(e) {
			t.Errorf("predicate failed for status %d", tc.status)
		}
	}

	htmlErr := &Error{Code: CodeHTMLResponse}
	if !htmlErr.IsInvalidResponse() {
		t.Error("expected html_response to count as invalid response")
	}
	jsonErr := &Error{Code: CodeInvalidResponse}
	if !jsonErr.IsInvalidResponse() {
		t.Error("expected invalid_response to count as invalid response")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("date", "is required")
	if err.Error() != "validation error: date - is required" {
		t.Errorf("unexpected error string %q", err.Error())
	}

	var vErr *ValidationError
	if !errors.As(error(err), &vErr) {
		t.Error("expected errors.As to match *ValidationError")
	}
}

func TestClient_ConnectionError(t *testing.T) {
	// Point at a port nothing listens on.
	client := NewClient(WithBaseURL("http://127.0.0.1:1"))

	_, err := client.Hospitals.List(context.Background())
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Code != CodeConnection {
		t.Errorf("expected code %q, got %q", CodeConnection, apiErr.Code)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("expected no status code, got %d", apiErr.StatusCode)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	htmlBodies := []string{
		"<!DOCTYPE html><html></html>",
		"  <html lang=\"en\">",
		"<HTML>",
	}
	for _, body := range htmlBodies {
		if !looksLikeHTML([]byte(body)) {
			t.Errorf("expected %q to look like HTML", body)
		}
	}

	jsonBodies := []string{`{"a":1}`, `[1,2,3]`, `"<html>"`}
	for _, body := range jsonBodies {
		if looksLikeHTML([]byte(body)) {
			t.Errorf("expected %q not to look like HTML", body)
		}
	}
}
