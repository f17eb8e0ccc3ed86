package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"github.com/ollama/ollama/api"
	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "http://localhost:11434"

// Client issues raw requests against the two contract endpoints. Unlike
// api.Client it never turns a status code into an error, so callers can
// inspect exactly what the server returned.
type Client struct {
	http    *http.Client
	base    *url.URL
	baseURL string
}

// GenerateRequest is the body of POST /api/generate. Options is omitted
// when nil so the default body is exactly {model, prompt, stream}.
type GenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// Response is an unparsed HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid Ollama URL %q: scheme and host are required", baseURL)
	}

	return &Client{
		http:    httpClient,
		base:    parsedURL,
		baseURL: baseURL,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithHTTPClient returns a copy of c that sends requests through httpClient.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	clone := *c
	clone.http = httpClient
	return &clone
}

// Tags issues GET /api/tags.
func (c *Client) Tags(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/api/tags", nil)
}

// Generate issues POST /api/generate with req as the JSON body.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/generate", body)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// IsJSON reports whether the body parses as JSON.
func (r *Response) IsJSON() bool {
	return gjson.ValidBytes(r.Body)
}

// Has reports whether the body is a JSON object carrying the top-level key.
func (r *Response) Has(key string) bool {
	if !r.IsJSON() {
		return false
	}
	root := gjson.ParseBytes(r.Body)
	return root.IsObject() && root.Get(key).Exists()
}

// ModelNames decodes a /api/tags body and returns the model names in order.
func (r *Response) ModelNames() ([]string, error) {
	var list api.ListResponse
	if err := json.Unmarshal(r.Body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	names := make([]string, len(list.Models))
	for i, model := range list.Models {
		names[i] = model.Name
	}
	return names, nil
}

// Text decodes a non-streamed /api/generate body and returns its response text.
func (r *Response) Text() (string, error) {
	var gen api.GenerateResponse
	if err := json.Unmarshal(r.Body, &gen); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	return gen.Response, nil
}

// StatusError describes a response in the form the Ollama API package uses
// for non-success statuses, picking up the server's {"error": ...} message.
func (r *Response) StatusError() api.StatusError {
	return api.StatusError{
		StatusCode:   r.StatusCode,
		Status:       fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode)),
		ErrorMessage: gjson.GetBytes(r.Body, "error").String(),
	}
}

// IsUnreachable reports whether err means the server could not be reached:
// refused or dropped connections, DNS failures, dial errors and timeouts.
// A cancelled context is never unreachable, even when it interrupts a dial.
func IsUnreachable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
