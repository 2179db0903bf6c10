// Package runner executes the declared HTTP test cases of a suite and
// records the raw responses for snapshotting.
//
// Execution is sequential: one request is awaited at a time, in declaration
// order. Transport-level failures are retried with capped exponential
// backoff; HTTP error statuses are not retried, the body is recorded as
// returned so that contract drift in error responses is visible too.
package runner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Request is one declared test case to execute.
type Request struct {
	// Name is the declared test case name, used as the snapshot file name
	Name string
	// Method is the HTTP method; empty defaults to GET
	Method string
	// URL is the absolute request URL
	URL string
	// Headers are added to the request verbatim
	Headers map[string]string
	// Body is the request body, sent as-is when non-empty
	Body string
}

// Response is the recorded outcome of one executed test case.
type Response struct {
	// Name is the test case name the response belongs to
	Name string
	// StatusCode is the HTTP status, 0 when the request never completed
	StatusCode int
	// Body is the raw response body; nil when the request failed
	Body []byte
	// Duration is the wall time of the final attempt
	Duration time.Duration
	// Err is the transport error that exhausted all retries, nil on success
	Err error
}

// Runner executes test case requests sequentially.
type Runner struct {
	// Timeout bounds each individual request attempt
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after a transport failure
	MaxRetries uint64
	// UserAgent is sent with every request when non-empty
	UserAgent string

	client *http.Client
	logger *zap.Logger
}

// New creates a Runner. A nil logger disables logging.
func New(timeout time.Duration, maxRetries uint64, logger *zap.Logger) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Timeout:    timeout,
		MaxRetries: maxRetries,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Run executes all requests in order and returns one response per request,
// in the same order. A failed request yields a Response with Err set; it
// never aborts the remaining requests. Run returns early only when the
// context is cancelled.
func (r *Runner) Run(ctx context.Context, requests []Request) ([]Response, error) {
	responses := make([]Response, 0, len(requests))
	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return responses, err
		}

		resp := r.execute(ctx, req)
		if resp.Err != nil {
			r.logger.Warn("test case request failed",
				zap.String("name", req.Name),
				zap.Error(resp.Err),
			)
		} else if resp.StatusCode >= 300 {
			r.logger.Warn("test case returned non-success status",
				zap.String("name", req.Name),
				zap.Int("status", resp.StatusCode),
			)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// execute performs one test case with retry on transport errors.
func (r *Runner) execute(ctx context.Context, req Request) Response {
	start := time.Now()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.MaxRetries),
		ctx,
	)

	httpResp, err := backoff.RetryWithData(func() (*http.Response, error) {
		return r.attempt(ctx, req)
	}, policy)
	if err != nil {
		return Response{Name: req.Name, Duration: time.Since(start), Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{
			Name:       req.Name,
			StatusCode: httpResp.StatusCode,
			Duration:   time.Since(start),
			Err:        fmt.Errorf("reading response body: %w", err),
		}
	}

	return Response{
		Name:       req.Name,
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Duration:   time.Since(start),
	}
}

// attempt builds and fires one HTTP request. The request is rebuilt on every
// attempt so the body reader is fresh.
func (r *Runner) attempt(ctx context.Context, req Request) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		// A malformed request will never succeed; stop retrying.
		return nil, backoff.Permanent(err)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if r.UserAgent != "" {
		httpReq.Header.Set("User-Agent", r.UserAgent)
	}

	return r.client.Do(httpReq)
}
