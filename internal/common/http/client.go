// internal/common/http/client.go
package http

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client sends requests with credentials (cookies) kept across calls, the
// way a browser session does.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	jar, _ := cookiejar.New(nil) // never errors with nil options
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		userAgent: userAgent,
	}
}

// NewClientWith wraps an existing *http.Client, e.g. httptest's.
func NewClientWith(c *http.Client, userAgent string) *Client {
	if c.Jar == nil {
		c.Jar, _ = cookiejar.New(nil)
	}
	return &Client{httpClient: c, userAgent: userAgent}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}

// Jar exposes the cookie jar so the session can be dropped on logout.
func (c *Client) Jar() http.CookieJar {
	return c.httpClient.Jar
}

// ResetCookies replaces the jar with an empty one.
func (c *Client) ResetCookies() {
	c.httpClient.Jar, _ = cookiejar.New(nil)
}
