// file: internal/fetcher/httpclient.go
// version: 1.1.0
// guid: 3056f018-2ecf-4123-aa37-f19454fa837d

package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/ratelimit"
)

const defaultUserAgent = "bookwatch/1.0 (+https://github.com/jdfalk/bookwatch)"

// maxResponseBytes caps how much of a remote response we will read.
const maxResponseBytes = 8 << 20

// httpClient wraps the outbound HTTP path every fetcher shares: a per-call
// timeout, a per-source rate limiter, and exponential-backoff retry for
// transient failures. 4xx responses (except 429) are permanent and are not
// retried.
type httpClient struct {
	client    *http.Client
	limiter   ratelimit.Limiter
	userAgent string
	retries   uint64
}

func newHTTPClient(timeout time.Duration, perSecond int) *httpClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if perSecond <= 0 {
		perSecond = 1
	}
	return &httpClient{
		client:    &http.Client{Timeout: timeout},
		limiter:   ratelimit.New(perSecond),
		userAgent: defaultUserAgent,
		retries:   2,
	}
}

func (c *httpClient) do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	var result []byte

	operation := func() error {
		c.limiter.Take()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", c.userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("request to %s failed: %w", url, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			// ok
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
		default:
			return backoff.Permanent(fmt.Errorf("HTTP %d from %s", resp.StatusCode, url))
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("failed to read response from %s: %w", url, err)
		}
		result = data
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *httpClient) get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil, nil)
}

func (c *httpClient) getDocument(ctx context.Context, url string) (*goquery.Document, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}
	return doc, nil
}

func (c *httpClient) postJSON(ctx context.Context, url string, headers map[string]string, payload []byte) ([]byte, error) {
	merged := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		merged[k] = v
	}
	return c.do(ctx, http.MethodPost, url, merged, payload)
}
