// Package uidapi talks to the content manager's UID endpoints over HTTP.
package uidapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"uidfield/internal/logx"
	"uidfield/internal/uidfield"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout is the maximum time to wait for a UID endpoint.
const DefaultTimeout = 10 * time.Second

const (
	OpGenerate          = "generate"
	OpCheckAvailability = "check-availability"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("uid %s: server returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("uid %s: server returned status %d: %s", e.Op, e.Status, body)
}

type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Logger     logx.Logger
	HTTPClient *http.Client
}

// Client implements uidfield.Service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        logx.Logger
}

var _ uidfield.Service = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("uidapi: base url is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("uidapi: invalid base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		httpClient: hc,
		log:        opts.Logger.With(zap.String("component", "uidapi")),
	}, nil
}

// Generate asks the server for a UID derived from req.Data.
func (c *Client) Generate(ctx context.Context, req uidfield.GenerateRequest) (string, error) {
	if req.Data == nil {
		req.Data = uidfield.Record{}
	}
	var out struct {
		Data string `json:"data"`
	}
	if err := c.post(ctx, OpGenerate, req, &out); err != nil {
		return "", err
	}
	return out.Data, nil
}

// CheckAvailability reports whether req.Value is free, with a suggestion when it isn't.
func (c *Client) CheckAvailability(ctx context.Context, req uidfield.CheckRequest) (uidfield.Availability, error) {
	var out uidfield.Availability
	if err := c.post(ctx, OpCheckAvailability, req, &out); err != nil {
		return uidfield.Availability{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, op string, in, out any) error {
	endpoint, err := buildURL(c.baseURL, "content-manager", "explorer", "uid", op)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	requestID, ok := logx.RequestIDFrom(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = logx.WithRequestID(ctx, requestID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.log.WithContext(ctx)
	log.Debug("calling uid endpoint", zap.String("op", op), zap.String("url", endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call uid %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("uid endpoint returned error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", op, err)
	}
	log.Debug("uid endpoint responded",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// buildURL constructs a URL by parsing the base and joining path segments.
func buildURL(baseURL string, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}
