// Package upstream implements the gateway-side HTTP client for the internal
// backend services. The gateway relays upstream status codes and bodies
// verbatim, so the client hands back the raw response rather than decoding
// it; dial failures are retried a bounded number of times and then surface
// as domain.ErrUpstreamUnavailable.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/profilehub/user-platform/internal/core/domain"
)

const retryBackoff = 100 * time.Millisecond

// Request describes one call to forward.
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          []byte
}

// Response carries the upstream result for verbatim relay.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

type Client struct {
	base    string
	http    *http.Client
	retries int
	log     zerolog.Logger
}

// New builds a client for one backend service. retries is the number of
// additional attempts after a failed transport call; timeout bounds each
// attempt.
func New(baseURL string, timeout time.Duration, retries int, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retries: retries,
		log:     log,
	}
}

// Do forwards the request and returns the upstream response unmodified.
// The body is buffered by the caller so every retry replays it identically.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	url := c.base + req.Path
	if req.RawQuery != "" {
		url += "?" + req.RawQuery
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
			c.log.Warn().Str("url", url).Int("attempt", attempt+1).Msg("retrying upstream call")
		}

		out, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.Body))
		if err != nil {
			return nil, fmt.Errorf("build upstream request: %w", err)
		}
		if req.Authorization != "" {
			out.Header.Set("Authorization", req.Authorization)
		}
		if req.ContentType != "" {
			out.Header.Set("Content-Type", req.ContentType)
		}

		resp, err := c.http.Do(out)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		return &Response{
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, lastErr)
}
