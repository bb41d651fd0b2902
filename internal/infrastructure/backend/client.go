// Package backend contains the typed wrappers around the library REST API.
// Each method issues exactly one HTTP request and returns the decoded body.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
	"github.com/librarydesk/console/internal/pkg/metrics"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// errorBody covers the envelopes the backend uses for failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Config captures the settings for the backend client.
type Config struct {
	BaseURL string
	// Timeout of zero means requests are bounded only by the caller's context.
	Timeout time.Duration
}

// Client performs the HTTP round trips shared by all resource wrappers.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: base url %q must be absolute", cfg.BaseURL)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

// NewBackend wires every resource wrapper onto one Client.
func NewBackend(c *Client) ports.Backend {
	return ports.Backend{
		Books:        NewBookService(c),
		Fines:        NewFineService(c),
		Admins:       NewAdminService(c),
		Reports:      NewReportService(c),
		Auth:         NewAuthService(c),
		Members:      NewMemberService(c),
		Borrow:       NewBorrowService(c),
		Reservations: NewReservationService(c),
	}
}

// Ping checks that the backend answers at all; any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// do sends one request and decodes a 2xx body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, query, in, out)

	outcome := "ok"
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		outcome = fmt.Sprintf("%dxx", apiErr.Status/100)
	case errors.Is(err, domain.ErrMalformedResponse):
		outcome = "malformed"
	case err != nil:
		outcome = "transport"
	}
	metrics.BackendRequestsTotal.WithLabelValues(resource, method, outcome).Inc()
	metrics.BackendRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())

	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := ports.BackendToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrMalformedResponse, err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Error != "" {
			return &APIError{Status: status, Message: eb.Error}
		}
		if eb.Message != "" {
			return &APIError{Status: status, Message: eb.Message}
		}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

// list fetches a set endpoint. A body that is not a JSON array is coerced to
// an empty set and reported as ErrMalformedResponse.
func list[T any](ctx context.Context, c *Client, resource, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, resource, http.MethodGet, path, query, nil, &raw); err != nil {
		return []T{}, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, fmt.Errorf("GET %s: %w: expected a list", path, domain.ErrMalformedResponse)
	}
	items := []T{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return []T{}, fmt.Errorf("GET %s: %w: %v", path, domain.ErrMalformedResponse, err)
	}
	return items, nil
}

// one decodes a single-object response.
func one[T any](ctx context.Context, c *Client, resource, method, path string, in any) (*T, error) {
	var out T
	if err := c.do(ctx, resource, method, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func idPath(base string, id int64, suffix ...string) string {
	p := fmt.Sprintf("%s/%d", base, id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
