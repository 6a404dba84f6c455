package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 15 * time.Second

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the events backend.
type Client struct {
	baseURL     string
	cookieName  string
	cookieValue string
	http        *http.Client
	logger      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSession forwards a session cookie on every request.
func WithSession(name, value string) Option {
	return func(c *Client) {
		c.cookieName = name
		c.cookieValue = value
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient returns a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSchedules returns the persisted schedules of an event.
func (c *Client) FetchSchedules(ctx context.Context, eventID string) ([]ScheduleRecord, error) {
	var records []ScheduleRecord
	if err := c.do(ctx, http.MethodGet, c.schedulesPath(eventID), nil, &records); err != nil {
		return nil, fmt.Errorf("fetch schedules of event %s: %w", eventID, err)
	}
	return records, nil
}

// SaveSchedules replaces the schedules of an existing event.
func (c *Client) SaveSchedules(ctx context.Context, eventID string, records []ScheduleRecord) error {
	if err := c.do(ctx, http.MethodPut, c.schedulesPath(eventID), records, nil); err != nil {
		return fmt.Errorf("save schedules of event %s: %w", eventID, err)
	}
	return nil
}

// CreateEvent sends an event-creation request and returns the new event's id.
func (c *Client) CreateEvent(ctx context.Context, payload EventPayload) (string, error) {
	var created CreatedEvent
	if err := c.do(ctx, http.MethodPost, "/events", payload, &created); err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create event: response carries no _id")
	}
	return created.ID, nil
}

func (c *Client) schedulesPath(eventID string) string {
	return "/events/" + url.PathEscape(eventID) + "/schedules"
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.cookieValue})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
