package aarogyam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	headerToken       = "x-access-token"
	headerRequestID   = "X-Request-ID"
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
	clientUserAgent   = "aarogyam-go/1.0.0"
)

// doRequest performs an HTTP request and normalizes every failure mode
// into an *Error: transport failures, non-2xx statuses, HTML error pages
// and unparseable JSON bodies all come back as the same shape.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	respBody, _, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeBody(respBody, result)
}

// doRaw performs the request and returns the body of a 2xx response
// without attempting to parse it. Used by the handful of endpoints that
// answer with plain text on success.
func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	var bodyReader io.Reader
	var contentType string
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &Error{Code: CodeConnection, Message: fmt.Sprintf("failed to marshal request body: %v", err)}
		}
		bodyReader = bytes.NewReader(bodyBytes)
		contentType = contentTypeJSON
	}
	return c.send(ctx, method, path, bodyReader, contentType)
}

// send builds and executes one request against the configured origin.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, int, error) {
	reqURL, err := joinURL(c.baseURL, path)
	if err != nil {
		return nil, 0, &Error{Code: CodeConnection, Message: fmt.Sprintf("failed to build URL: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, 0, &Error{Code: CodeConnection, Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set(headerToken, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &Error{Code: CodeConnection, Message: "failed to connect to the server: " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{
			StatusCode: resp.StatusCode,
			Code:       CodeConnection,
			Message:    "failed to read response body: " + err.Error(),
		}
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, parseError(resp.StatusCode, respBody)
	}

	return respBody, resp.StatusCode, nil
}

// decodeBody applies the normalizing parse: HTML error pages and invalid
// JSON become structured errors instead of decode panics at call sites.
func decodeBody(body []byte, result interface{}) error {
	if result == nil || len(body) == 0 {
		return nil
	}
	if looksLikeHTML(body) {
		return &Error{
			Code:        CodeHTMLResponse,
			Message:     "server returned an error page instead of JSON",
			RawResponse: snippet(body),
		}
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &Error{
			Code:        CodeInvalidResponse,
			Message:     "invalid JSON response from server",
			RawResponse: snippet(body),
		}
	}
	return nil
}

// joinURL joins the origin and path, leaving already-encoded query
// strings untouched.
func joinURL(baseURL, path string) (string, error) {
	if strings.Contains(path, "?") {
		return strings.TrimSuffix(baseURL, "/") + path, nil
	}
	return url.JoinPath(baseURL, path)
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, result)
}

// postForm performs a POST with a multipart form body and returns the
// raw 2xx response body. Hospital registration is the one endpoint that
// takes form data and may answer with plain text.
func (c *Client) postForm(ctx context.Context, path, contentType string, form *bytes.Buffer) ([]byte, int, error) {
	return c.send(ctx, http.MethodPost, path, form, contentType)
}
