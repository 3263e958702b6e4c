// Package mediawiki implements the wiki ports on top of the MediaWiki action API.
package mediawiki

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
)

// maxResponseSize bounds the size of an API answer.
const maxResponseSize = 64 << 20

// Client is a session with one wiki. It implements ports.Wiki.
type Client struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	newBackOff func() backoff.BackOff
	now        func() time.Time

	mu        sync.Mutex
	csrfToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its cookie jar is replaced when unset.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithBackOff replaces the retry policy of idempotent requests.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = newBackOff
	}
}

// WithNow replaces the clock used to position an empty change feed.
func WithNow(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client for the API endpoint of settings. It does not log in.
func New(settings domain.WikiSettings, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(settings.APIURL); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid wiki API URL"), "api", settings.APIURL)
	}

	limit := rate.Inf
	if settings.RateLimit > 0 {
		limit = rate.Limit(settings.RateLimit)
	}

	c := &Client{
		apiURL:     settings.APIURL,
		userAgent:  settings.UserAgent,
		httpClient: &http.Client{Timeout: settings.Timeout},
		limiter:    rate.NewLimiter(limit, max(settings.Burst, 1)),
		maxRetries: max(settings.MaxRetries, 0),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = 2 * time.Minute
			return b
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to create cookie jar")
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// request describes one API call.
type request struct {
	params url.Values
	// post sends the parameters in the body. Writes and long texts are posted.
	post bool
	// idempotent requests are retried with backoff on transient failures.
	idempotent bool
}

// call runs req and decodes the answer into out.
func (c *Client) call(ctx context.Context, req request, out any) error {
	req.params.Set("format", "json")
	req.params.Set("formatversion", "2")

	attempt := func() error {
		err := c.do(ctx, req, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	if !req.idempotent || c.maxRetries == 0 {
		return c.do(ctx, req, out)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), ctx)
	return backoff.Retry(attempt, policy)
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var (
		httpReq *http.Request
		err     error
	)
	if req.post {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL,
			strings.NewReader(req.params.Encode()))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+req.params.Encode(), nil)
	}
	if err != nil {
		return zerr.Wrap(err, "failed to build request")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "request failed"), "action", req.params.Get("action"))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read response"), "action", req.params.Get("action"))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}

	var envelope struct {
		Error *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return zerr.With(zerr.Wrap(err, "invalid JSON answer"), "action", req.params.Get("action"))
	}
	if envelope.Error != nil {
		return &APIError{StatusCode: resp.StatusCode, Code: envelope.Error.Code, Info: envelope.Error.Info}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return zerr.With(zerr.Wrap(err, "unexpected answer"), "action", req.params.Get("action"))
	}
	return nil
}

func params(kv ...string) url.Values {
	v := make(url.Values, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}
