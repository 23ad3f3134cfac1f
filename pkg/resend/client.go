// Package resend provides a client for the Resend transactional email API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the Resend email operations.
type Client interface {
	// Send delivers a single email and returns the provider's email ID.
	Send(ctx context.Context, req SendRequest) (*SendResponse, error)
}

// SendRequest is the payload for the Resend send-email endpoint.
type SendRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is an inline file attached to an outgoing email. Content is the
// raw file bytes; Resend base64-encodes them on the wire via json.Marshal.
type Attachment struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// SendResponse is the parsed Resend API response.
type SendResponse struct {
	ID string `json:"id"`
}

// apiError is the error envelope Resend returns on non-2xx responses.
type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Option configures the Resend client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Resend client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.resend.com",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the email once. Notification delivery is best effort and the
// caller decides whether a failure matters, so there is no retry loop here.
func (c *httpClient) Send(ctx context.Context, sendReq SendRequest) (*SendResponse, error) {
	payload, err := json.Marshal(sendReq)
	if err != nil {
		return nil, eris.Wrap(err, "resend: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "resend: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "resend: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "resend: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, eris.Errorf("resend: status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, eris.Errorf("resend: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result SendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "resend: unmarshal response")
	}
	return &result, nil
}
