package topstories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/DeafMist/top-headlines/internal/logger"
	"github.com/DeafMist/top-headlines/internal/models"
)

const apiKeyParam = "api-key"

var (
	// ErrMissingAPIKey is returned when the client has no credential to send.
	ErrMissingAPIKey = errors.New("top stories api key is not configured")
	// ErrNoResults is returned when the response lacks the "results" array.
	ErrNoResults = errors.New("top stories response has no results")
)

// Client fetches the top stories feed.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	log     *slog.Logger
}

type response struct {
	Results *[]models.Story `json:"results"`
}

// New builds a Client for baseURL. A zero timeout leaves the transport
// defaults in place.
func New(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}

	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{log: log})

	return &Client{
		http:    rc,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// TopStories issues one GET against the feed and returns every result in
// upstream order. The body is decoded whatever the status; a non-success
// status only fails when the body has no usable results.
func (c *Client) TopStories(ctx context.Context) ([]models.Story, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(apiKeyParam, c.apiKey).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", redact(err, c.apiKey))
	}

	body := resp.Body()
	c.log.Debug("top stories fetched",
		slog.Int("status", resp.StatusCode()),
		slog.Int("bytes", len(body)),
		slog.Duration("took", time.Since(started)),
	)

	stories, err := decode(body)
	if !resp.IsSuccess() {
		if err != nil {
			return nil, fmt.Errorf("top stories returned status %d body: %s", resp.StatusCode(), snippet(body))
		}
		c.log.Warn("top stories returned results with non-success status", slog.Int("status", resp.StatusCode()))
	}
	return stories, err
}

func decode(body []byte) ([]models.Story, error) {
	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode top stories: %w", err)
	}
	if payload.Results == nil {
		return nil, ErrNoResults
	}
	return *payload.Results, nil
}

func snippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// redact strips the api key from transport errors, which embed the full
// request url.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e redactedError) Error() string { return e.msg }
func (e redactedError) Unwrap() error { return e.err }

// restyLogger routes resty's internal messages through slog.
type restyLogger struct {
	log *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}
