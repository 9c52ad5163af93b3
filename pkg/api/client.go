package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	aoa "github.com/unowned-ai/aoa/pkg"
	"github.com/unowned-ai/aoa/pkg/journal"
	"github.com/unowned-ai/aoa/pkg/logging"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	// Error bodies larger than this are cut when building Error.Detail.
	maxErrorBody = 4 << 10
)

// Client talks to the AOA users and daily logs API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetLogsForUser lists every log of a user. The API answers 404 when the user
// has none yet.
func (c *Client) GetLogsForUser(ctx context.Context, userID int64) ([]journal.DailyLog, error) {
	var logs []journal.DailyLog
	if err := c.do(ctx, http.MethodGet, logsPath(userID), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetLogByDate fetches the log of one day. A nil log with a nil error means
// there is no log for that date.
func (c *Client) GetLogByDate(ctx context.Context, userID int64, date string) (*journal.DailyLog, error) {
	var log *journal.DailyLog
	if err := c.do(ctx, http.MethodGet, logsPath(userID, date), nil, &log); err != nil {
		return nil, err
	}
	return log, nil
}

// CreateDailyLog records a check-in.
func (c *Client) CreateDailyLog(ctx context.Context, payload journal.DailyLogCreate, userID int64) (journal.DailyLog, error) {
	var log journal.DailyLog
	err := c.do(ctx, http.MethodPost, logsPath(userID), payload, &log)
	return log, err
}

// CreateCheckoutLog records the checkout of date. The API creates the log
// when the day has no check-in.
func (c *Client) CreateCheckoutLog(ctx context.Context, userID int64, date string, payload journal.DailyLogCheckout) (journal.DailyLog, error) {
	var log journal.DailyLog
	err := c.do(ctx, http.MethodPatch, logsPath(userID, date, "checkout"), payload, &log)
	return log, err
}

// EditDailyLog applies a partial update to the log of date.
func (c *Client) EditDailyLog(ctx context.Context, userID int64, date string, payload journal.DailyLogUpdate) (journal.DailyLog, error) {
	var log journal.DailyLog
	err := c.do(ctx, http.MethodPatch, logsPath(userID, date), payload, &log)
	return log, err
}

// CreateUserWithLog signs up a user together with their first check-in.
func (c *Client) CreateUserWithLog(ctx context.Context, payload journal.UserCreateWithLog) (journal.User, error) {
	var user journal.User
	err := c.do(ctx, http.MethodPost, "/users/create-with-log", payload, &user)
	return user, err
}

// CreateUser signs up a user without a log.
func (c *Client) CreateUser(ctx context.Context, payload journal.UserCreate) (journal.User, error) {
	var user journal.User
	err := c.do(ctx, http.MethodPost, "/users/", payload, &user)
	return user, err
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, userID int64) (journal.User, error) {
	var user journal.User
	err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(userID, 10), nil, &user)
	return user, err
}

func logsPath(userID int64, parts ...string) string {
	p := "/dailylogs/" + strconv.FormatInt(userID, 10)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "aoa/"+aoa.Version)
	req.Header.Set(requestIDHeader, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &Error{StatusCode: resp.StatusCode}

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil {
			apiErr.Detail = detail
		} else {
			apiErr.Detail = string(body.Detail)
		}
		return apiErr
	}
	apiErr.Detail = strings.TrimSpace(string(raw))
	return apiErr
}
