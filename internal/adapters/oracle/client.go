// Package oracle provides a resilient HTTP client for the external scoring oracle
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "openscout/internal/platform/errors"
	"openscout/internal/platform/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUA        = "openscout-fusion"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultMaxTokens = 1024

	completePath = "/v1/complete"
)

// Options configures the Client
type Options struct {
	// BaseURL of the oracle service, required
	BaseURL string

	// APIKey sent as a bearer token when set
	APIKey string

	UserAgent string

	// Timeout bounds one HTTP attempt including the body read
	Timeout time.Duration

	// MaxTokens caps the oracle completion length
	MaxTokens int

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client invokes the scoring oracle with one prompt per call.
// Transport failures, timeouts and non-2xx responses surface as coded
// errors; the caller decides whether to fall back
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("oracle"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

type completeRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completeResponse struct {
	Text string `json:"text"`
}

// Invoke sends prompt to the oracle and returns its free-form reply text.
// Each call carries its own timeout so one slow call cannot stall siblings
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completeRequest{Prompt: prompt, MaxTokens: c.opts.MaxTokens})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "oracle encode request failed")
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+completePath, bytes.NewReader(body))
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "oracle new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if !c.shouldRetry(attempts) {
				return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "oracle do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("oracle transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("oracle http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			var out completeResponse
			err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out)
			_ = resp.Body.Close()
			if err != nil {
				return "", perr.Wrapf(err, perr.ErrorCodeJSON, "oracle decode response failed")
			}
			return out.Text, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return "", perr.Newf(perr.ErrorCodeTooManyRequests, "oracle rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("oracle rate limited backing off")
			c.sleep(wait)
			attempts++
			continue

		case resp.StatusCode >= 500:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return "", perr.Newf(perr.ErrorCodeUnavailable, "oracle server error %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Int("status", resp.StatusCode).Msg("oracle transient error retrying")
			c.sleep(back)
			attempts++
			continue

		default:
			// client errors are not retryable; keep a small tail for diagnostics
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return "", perr.Newf(perr.ErrorCodeUnavailable, "oracle unexpected status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	capMs := int64(15 * time.Second / time.Millisecond)
	if ms > capMs {
		ms = capMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// retryAfter honors a Retry-After header in seconds when present
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<16))
	return rc.Close()
}
