// Package api is the client for the tracker REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hr-tracker/internal/common/config"
	apperrors "hr-tracker/internal/common/errors"
	commonhttp "hr-tracker/internal/common/http"
	"hr-tracker/internal/common/logger"
	"hr-tracker/internal/common/metrics"
	"hr-tracker/internal/common/validation"
)

// CallRecorder receives one event per API call.
type CallRecorder interface {
	RecordCall(ctx context.Context, operation string, duration time.Duration, status string)
}

// metaRequestID is the error metadata key holding the X-Request-ID sent.
const metaRequestID = "requestId"

// UnauthorizedHandler is invoked on every 401 before the error is returned.
type UnauthorizedHandler func(ctx context.Context) bool

type Client struct {
	baseURL        string
	http           *commonhttp.Client
	log            logger.Logger
	recorder       CallRecorder
	onUnauthorized UnauthorizedHandler
}

type Option func(*Client)

func WithHTTPClient(hc *commonhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithRecorder(r CallRecorder) Option {
	return func(c *Client) { c.recorder = r }
}

func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

func New(cfg config.APIConfig, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log.WithFields(map[string]interface{}{"component": "api"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = commonhttp.NewClient(config.GetDuration(cfg.Timeout), cfg.UserAgent)
	}
	return c
}

// OnUnauthorized sets the 401 hook after construction; the session guard
// needs the client before it exists.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	c.onUnauthorized = h
}

// HTTP exposes the underlying client, e.g. for its cookie jar.
func (c *Client) HTTP() *commonhttp.Client {
	return c.http
}

// envelope is the body of every JSON response.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type response struct {
	status  int
	header  http.Header
	body    []byte
	message string
	data    json.RawMessage
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// doJSON sends payload (if any) as JSON and decodes the envelope. When out is
// set the envelope's data is decoded into it after checking dataSchema.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, payload interface{}, dataSchema string, out interface{}) (*response, error) {
	resp, err := c.send(ctx, operation, method, path, payload, "application/json")
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(resp.body)) == 0 {
		if out != nil {
			return nil, apperrors.NewAPIResponseInvalidError(operation, "empty body")
		}
		return resp, nil
	}

	if err := checkSchema(envelopeSchema, resp.body); err != nil {
		return nil, apperrors.NewAPIResponseInvalidError(operation, err.Error())
	}
	var env envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, apperrors.NewAPIResponseInvalidError(operation, err.Error())
	}
	resp.message = env.Message
	resp.data = env.Data

	if out == nil {
		return resp, nil
	}
	if dataSchema != "" {
		if err := checkSchema(dataSchema, env.Data); err != nil {
			return nil, apperrors.NewAPIResponseInvalidError(operation, err.Error())
		}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, apperrors.NewAPIResponseInvalidError(operation, err.Error())
	}
	return resp, nil
}

// send performs one request and maps failures to StandardErrors.
func (c *Client) send(ctx context.Context, operation, method, path string, payload interface{}, accept string) (*response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		c.observe(ctx, operation, start, "error")
		c.log.Warn("request failed", map[string]interface{}{"operation": operation, "error": err})
		if isTimeout(err) {
			return nil, apperrors.NewAPITimeoutError(operation, err)
		}
		return nil, apperrors.NewAPITransportError(operation, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	c.observe(ctx, operation, start, strconv.Itoa(httpResp.StatusCode))
	if err != nil {
		return nil, apperrors.NewAPITransportError(operation, fmt.Errorf("read body: %w", err))
	}

	requestID := req.Header.Get(commonhttp.RequestIDHeader)
	c.log.Debug("request completed", map[string]interface{}{
		"operation": operation,
		"status":    httpResp.StatusCode,
		"requestId": requestID,
		"duration":  time.Since(start).String(),
	})

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, apperrors.NewAPIUnauthorizedError(operation, messageOf(raw)).
			WithMetadata(metaRequestID, requestID)
	case httpResp.StatusCode < 200 || httpResp.StatusCode > 299:
		return nil, apperrors.NewAPIRequestFailedError(operation, httpResp.StatusCode, messageOf(raw)).
			WithMetadata(metaRequestID, requestID)
	}

	return &response{status: httpResp.StatusCode, header: httpResp.Header, body: raw}, nil
}

func (c *Client) observe(ctx context.Context, operation string, start time.Time, status string) {
	d := time.Since(start)
	metrics.APIRequestsTotal.WithLabelValues(operation, status).Inc()
	metrics.APIRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
	if c.recorder != nil {
		c.recorder.RecordCall(ctx, operation, d, status)
	}
}

// messageOf extracts the server's "message" from an error body, if any.
func messageOf(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return strings.TrimSpace(env.Message)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

func checkSchema(schema string, doc []byte) error {
	if len(doc) == 0 {
		doc = []byte("null")
	}
	res, err := validation.ValidateDocument(schema, doc)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("schema mismatch: %s", strings.Join(res.GetErrorMessages(), "; "))
	}
	return nil
}
