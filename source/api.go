package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"exchange-catalog/models"
	"exchange-catalog/utils"
)

const (
	// DefaultTimeout applies when the configured timeout is zero.
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize bounds how much of a response body is read.
	MaxResponseSize = 20 * 1024 * 1024

	userAgent = "exchange-catalog/1.0"
)

// APIClient fetches endpoints from the platform's JSON API. Concurrent
// fetches of the same URL share one request.
type APIClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	retry   *utils.RetryConfig
	logger  *utils.Logger
	group   singleflight.Group
}

// NewAPIClient creates a client. If timeout is 0, DefaultTimeout is used.
func NewAPIClient(baseURL string, timeout time.Duration, maxRetries int, logger *utils.Logger) *APIClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   500 * time.Millisecond,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Fetch performs a GET on the endpoint's path.
func (c *APIClient) Fetch(ctx context.Context, ep models.Endpoint) ([]byte, error) {
	url := c.baseURL + ep.Path

	// The shared request is detached from any single caller and carries its
	// own deadline. Each caller still stops waiting when its ctx is done.
	ch := c.group.DoChan(url, func() (any, error) {
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		var body []byte
		err := c.retry.Do(reqCtx, "GET "+ep.Path, func() error {
			var err error
			body, err = c.get(reqCtx, url)
			return err
		})
		return body, err
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("[api] shared in-flight request for %s", url)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *APIClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrLoadFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("[api] GET %s -> %d (%s)", url, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewHTTPError(resp.StatusCode, url, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrLoadFailed, err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrLoadFailed, MaxResponseSize)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
