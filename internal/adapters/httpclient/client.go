// Package httpclient provides the GET-with-retry transport shared by the catalog and archive adapters.
package httpclient

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrStalled is returned by a streaming response body that delivered no data for a full timeout period.
var ErrStalled = zerr.New("response body stalled")

// Client issues GET requests and retries transient failures with exponential backoff.
type Client struct {
	http     *http.Client
	attempts int
	backoff  time.Duration
	logger   ports.Logger

	// stall is the longest pause allowed between two body reads. Zero disables the guard.
	stall time.Duration
}

// New creates a Client from the HTTP settings of a run configuration.
func New(cfg domain.HTTPConfig, log ports.Logger) *Client {
	return NewWithClient(&http.Client{Timeout: cfg.Timeout}, cfg, log)
}

// NewStreaming creates a Client for large downloads. The configured timeout bounds
// connecting, waiting for response headers, and every pause while reading the body, but
// not the transfer as a whole.
func NewStreaming(cfg domain.HTTPConfig, log ports.Logger) *Client {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return New(cfg, log)
	}
	transport = transport.Clone()
	if cfg.Timeout > 0 {
		transport.DialContext = (&net.Dialer{Timeout: cfg.Timeout, KeepAlive: 30 * time.Second}).DialContext
		transport.TLSHandshakeTimeout = cfg.Timeout
		transport.ResponseHeaderTimeout = cfg.Timeout
	}

	c := NewWithClient(&http.Client{Transport: transport}, cfg, log)
	c.stall = cfg.Timeout
	return c
}

// NewWithClient creates a Client around an existing *http.Client.
func NewWithClient(client *http.Client, cfg domain.HTTPConfig, log ports.Logger) *Client {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		http:     client,
		attempts: attempts,
		backoff:  cfg.RetryBackoff,
		logger:   log,
	}
}

// Get requests url with the given extra headers.
//
// Connection errors, timeouts, and the statuses 429, 500, 502, 503 and 504 are retried.
// The response of the last attempt is returned even when its status is retryable;
// the caller owns its body. An error is returned only when no response was received.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	delay := c.backoff

	for attempt := 1; ; attempt++ {
		resp, err := c.do(ctx, url, header)

		if ctxErr := ctx.Err(); ctxErr != nil {
			closeBody(resp)
			return nil, ctxErr
		}

		retry := err != nil || Retryable(resp.StatusCode)
		if !retry || attempt == c.attempts {
			return resp, err
		}

		reason := "connection error"
		if err == nil {
			reason = "status " + strconv.Itoa(resp.StatusCode)
			closeBody(resp)
		}
		c.logger.Debug("Retrying " + url + " after " + reason + " in " + delay.String() +
			" (attempt " + strconv.Itoa(attempt+1) + "/" + strconv.Itoa(c.attempts) + ")")

		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}
}

func (c *Client) do(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	if c.stall <= 0 {
		return c.send(ctx, url, header)
	}

	ctx, cancel := context.WithCancel(ctx)
	resp, err := c.send(ctx, url, header)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = newStallGuard(resp.Body, c.stall, cancel)
	return resp, nil
}

func (c *Client) send(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return c.http.Do(req)
}

// stallGuard cancels its request when the body delivers no data for a full period.
type stallGuard struct {
	body   io.ReadCloser
	period time.Duration
	timer  *time.Timer
	fired  atomic.Bool
	cancel context.CancelFunc
}

func newStallGuard(body io.ReadCloser, period time.Duration, cancel context.CancelFunc) *stallGuard {
	g := &stallGuard{body: body, period: period, cancel: cancel}
	g.timer = time.AfterFunc(period, func() {
		g.fired.Store(true)
		cancel()
	})
	return g
}

func (g *stallGuard) Read(p []byte) (int, error) {
	n, err := g.body.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && g.fired.Load() {
		return n, errors.Join(ErrStalled, err)
	}
	if n > 0 {
		g.timer.Reset(g.period)
	}
	return n, err
}

func (g *stallGuard) Close() error {
	g.timer.Stop()
	err := g.body.Close()
	g.cancel()
	return err
}

// Retryable reports whether a response status is worth another attempt.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// IsContextError reports whether err stems from cancellation or deadline expiry of the caller's context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func closeBody(resp *http.Response) {
	if resp == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
