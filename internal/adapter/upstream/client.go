package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/metrics"
)

// CallOptions describes a single upstream request.
type CallOptions struct {
	Method string
	// Query values that are nil are omitted.
	Query map[string]any
	Body  any
	// Name labels logs and metrics; defaults to the request path.
	Name string
}

// Response is a successful upstream reply. Body holds validated JSON when JSON is true,
// raw text otherwise.
type Response struct {
	StatusCode int
	Body       []byte
	JSON       bool
}

// Caller issues JSON calls against the upstream API.
type Caller interface {
	Call(ctx context.Context, p string, opts CallOptions) (*Response, error)
}

// HTTPClient implements Caller with bounded retries.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Registry
	policy     RetryPolicy
	jitter     func(time.Duration) time.Duration
	sleep      func(context.Context, time.Duration) error
}

// Option customises HTTPClient.
type Option func(*HTTPClient)

// WithRetryPolicy overrides DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *HTTPClient) { c.policy = p }
}

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(c *HTTPClient) { c.sleep = fn }
}

// WithJitter replaces the jitter source.
func WithJitter(fn func(time.Duration) time.Duration) Option {
	return func(c *HTTPClient) { c.jitter = fn }
}

var _ Caller = (*HTTPClient)(nil)

// NewHTTPClient creates upstream client with per-attempt timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger, reg *metrics.Registry, opts ...Option) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("upstream url must be absolute")
	}
	c := &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		metrics: reg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		policy: DefaultRetryPolicy,
		jitter: randomJitter,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy.MaxAttempts < 1 {
		c.policy.MaxAttempts = 1
	}
	return c, nil
}

// Call performs the request, retrying 429/5xx and transport failures per the retry policy.
func (c *HTTPClient) Call(ctx context.Context, p string, opts CallOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	name := opts.Name
	if name == "" {
		name = p
	}

	var (
		payload []byte
		err     error
	)
	if opts.Body != nil {
		if payload, err = json.Marshal(opts.Body); err != nil {
			return nil, fmt.Errorf("encode %s body: %w", name, err)
		}
	}
	endpoint, err := c.endpoint(p, opts.Query)
	if err != nil {
		return nil, fmt.Errorf("build %s url: %w", name, err)
	}

	var lastErr *domainErrors.UpstreamError
	for attempt := 1; ; attempt++ {
		start := time.Now()
		resp, err := c.do(ctx, method, endpoint, payload)
		c.metrics.UpstreamLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var malformed *domainErrors.MalformedResponseError
			if errors.As(err, &malformed) {
				malformed.Path = p
				c.metrics.UpstreamRequests.WithLabelValues(name, "malformed").Inc()
				c.logger.Error("upstream returned malformed json",
					slog.String("endpoint", name),
					slog.Int("status", malformed.Status))
				return nil, malformed
			}
			c.metrics.UpstreamRequests.WithLabelValues(name, "network").Inc()
			lastErr = &domainErrors.UpstreamError{Path: p, Attempts: attempt, Retryable: true, Err: err}
		case resp.statusCode >= 200 && resp.statusCode < 300:
			c.metrics.UpstreamRequests.WithLabelValues(name, "ok").Inc()
			return &Response{StatusCode: resp.statusCode, Body: resp.body, JSON: resp.json}, nil
		default:
			retryable := Retryable(resp.statusCode)
			lastErr = &domainErrors.UpstreamError{
				Path:       p,
				Status:     resp.statusCode,
				StatusText: resp.status,
				Body:       resp.body,
				Attempts:   attempt,
				Retryable:  retryable,
			}
			if !retryable {
				c.metrics.UpstreamRequests.WithLabelValues(name, "terminal").Inc()
				c.logger.Error("upstream request failed",
					slog.String("endpoint", name),
					slog.Int("status", resp.statusCode),
					slog.Int("body_bytes", len(resp.body)))
				c.logger.Debug("upstream error body",
					slog.String("endpoint", name),
					slog.String("body", truncate(resp.body, maxLoggedBody)))
				return nil, lastErr
			}
			c.metrics.UpstreamRequests.WithLabelValues(name, "retryable").Inc()
		}

		if attempt >= c.policy.MaxAttempts {
			c.logger.Error("upstream retries exhausted",
				slog.String("endpoint", name),
				slog.Int("attempts", attempt),
				slog.String("error", lastErr.Error()))
			return nil, lastErr
		}

		delay := c.policy.Delay(attempt, c.jitter)
		c.metrics.UpstreamRetries.WithLabelValues(name).Inc()
		c.logger.Warn("upstream call failed, retrying",
			slog.String("endpoint", name),
			slog.Int("attempt", attempt),
			slog.Int("status", lastErr.Status),
			slog.Duration("backoff", delay))
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

type rawResponse struct {
	statusCode int
	status     string
	body       []byte
	json       bool
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload []byte) (*rawResponse, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	isJSON := strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "json") && len(bytes.TrimSpace(data)) > 0
	if isJSON && !gjson.ValidBytes(data) {
		return nil, &domainErrors.MalformedResponseError{Status: resp.StatusCode, Body: data}
	}

	return &rawResponse{statusCode: resp.StatusCode, status: resp.Status, body: data, json: isJSON}, nil
}

// maxLoggedBody bounds upstream bodies written to debug logs.
const maxLoggedBody = 512

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "...(truncated)"
}

// endpoint appends the already escaped path p to the base URL without cleaning dot
// segments. Nil values and nil pointers are left out of the query; other pointers are
// dereferenced.
func (c *HTTPClient) endpoint(p string, query map[string]any) (string, error) {
	endpoint := *c.baseURL
	raw := strings.TrimSuffix(endpoint.EscapedPath(), "/") + "/" + strings.TrimPrefix(p, "/")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	endpoint.Path = decoded
	endpoint.RawPath = raw
	if len(query) > 0 {
		values := endpoint.Query()
		for key, v := range query {
			value, ok := queryValue(v)
			if !ok {
				continue
			}
			values.Set(key, value)
		}
		endpoint.RawQuery = values.Encode()
	}
	return endpoint.String(), nil
}

func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}
