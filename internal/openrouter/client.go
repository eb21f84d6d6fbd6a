// Package openrouter is a minimal client for the OpenRouter chat-completions
// endpoint. It makes exactly one synchronous request per call, traces the
// full wire exchange for operability, and never retries.
package openrouter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

const (
	// Endpoint is the fixed chat-completions URL.
	Endpoint = "https://openrouter.ai/api/v1/chat/completions"

	// DefaultModel is used when no model is configured.
	DefaultModel = "google/palm-2-chat-bison"

	requestTimeout = 60 * time.Second
	maxTokens      = 800
	temperature    = 0.7

	// OpenRouter ranking headers, fixed for this application.
	refererHeader = "https://github.com/raybo/nyla-sprint-99thDragon"
	titleHeader   = "Fundraising Email Generator"

	maxBodyBytes = 10 << 20
)

// Kind classifies a completion failure. Every kind is terminal for the
// invocation.
type Kind int

const (
	KindConfig    Kind = iota + 1 // credential missing, nothing was sent
	KindTransport                 // connection, timeout, or request setup failure
	KindDecode                    // response body is not valid JSON
	KindAPI                       // response carries an error object
	KindStatus                    // non-200 status with a parseable body
	KindMalformed                 // body lacks choices[0].message.content
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindAPI:
		return "api"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// Error is a failed completion attempt.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Message is a single chat message in the request envelope.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completions request envelope.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Client issues chat-completion requests. The API key is supplied by the
// caller; the client never reads the environment itself.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	trace      io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the completion endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithTrace redirects the wire trace away from stderr.
func WithTrace(w io.Writer) Option {
	return func(c *Client) { c.trace = w }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   Endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
		trace:      os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChatCompletion sends prompt as a single user message and returns the first
// candidate's content. Failure checks run in a fixed order — JSON validity,
// then the error field (even on a 200), then the status code, then candidate
// presence — which callers and operators rely on.
func (c *Client) ChatCompletion(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &Error{Kind: KindConfig, Message: "OPENROUTER_API_KEY environment variable is not set"}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	payload := Request{
		Model:       model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "failed to marshal request", Err: err}
	}

	fmt.Fprintf(c.trace, "\nSending request to OpenRouter API...\n")
	fmt.Fprintf(c.trace, "Using model: %s\n", model)
	if pretty, perr := sonic.MarshalIndent(payload, "", "  "); perr == nil {
		fmt.Fprintf(c.trace, "Request payload: %s\n", pretty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "failed to connect to OpenRouter API", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "failed to read response", Err: err}
	}
	elapsed := time.Since(start)

	fmt.Fprintf(c.trace, "Status code: %d\n", resp.StatusCode)
	fmt.Fprintf(c.trace, "Response headers: %v\n", resp.Header)

	if !gjson.ValidBytes(raw) {
		fmt.Fprintf(c.trace, "Failed to decode JSON. Raw response: %s\n", raw)
		return "", &Error{Kind: KindDecode, Message: fmt.Sprintf("response is not valid JSON (status %d)", resp.StatusCode)}
	}

	// The error field wins over the status code: OpenRouter reports some
	// failures with a 200 status and an error object.
	if errField := gjson.GetBytes(raw, "error"); errField.Exists() {
		msg := errField.Get("message").String()
		fmt.Fprintf(c.trace, "API Error: %s\n", msg)
		return "", &Error{Kind: KindAPI, Message: fmt.Sprintf("API error: %s", msg)}
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(c.trace, "Error response: %s\n", raw)
		return "", &Error{Kind: KindStatus, Message: fmt.Sprintf("API request failed with status %d", resp.StatusCode)}
	}

	fmt.Fprintf(c.trace, "Request completed in %.2fs\n", elapsed.Seconds())
	fmt.Fprintf(c.trace, "Full response: %s\n", gjson.GetBytes(raw, "@pretty").String())

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		fmt.Fprintf(c.trace, "Failed to extract content from response\n")
		fmt.Fprintf(c.trace, "Response structure: %s\n", raw)
		return "", &Error{Kind: KindMalformed, Message: "response has no choices[0].message.content"}
	}

	return content.String(), nil
}
