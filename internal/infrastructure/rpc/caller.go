// Package rpc provides JSON-over-HTTP clients for the three backend services.
// Each client wraps a shared caller that applies per-call timeouts and maps
// every failure mode to a tagged domain.BackendError, so the aggregator never
// sees a raw transport or status-code error.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cafehub/gateway/internal/api/metrics"
	"github.com/cafehub/gateway/internal/core/domain"
)

const defaultCallTimeout = 3 * time.Second

// caller issues HTTP calls against one backend service. The embedded
// http.Client is long-lived and shared read-only across requests.
type caller struct {
	service string
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

func newCaller(service, baseURL string, client *http.Client, timeout time.Duration, logger zerolog.Logger) caller {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return caller{
		service: service,
		baseURL: baseURL,
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// call performs one backend operation. body (when non-nil) is JSON-encoded;
// out (when non-nil) receives the decoded 2xx response body.
func (c caller) call(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return c.fail(op, domain.BackendInternal, err, time.Duration(0))
		}
		payload = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return c.fail(op, domain.BackendInternal, err, time.Duration(0))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		kind := domain.BackendUnreachable
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = domain.BackendTimeout
		}
		return c.fail(op, kind, err, elapsed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := statusKind(resp.StatusCode)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return c.fail(op, kind, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(msg)), elapsed)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return c.fail(op, domain.BackendInternal, fmt.Errorf("decode response: %w", err), elapsed)
		}
	}

	metrics.BackendCallsTotal.WithLabelValues(c.service, op, "ok").Inc()
	metrics.BackendCallDuration.WithLabelValues(c.service).Observe(elapsed.Seconds())
	return nil
}

func (c caller) fail(op string, kind domain.BackendErrorKind, err error, elapsed time.Duration) error {
	metrics.BackendCallsTotal.WithLabelValues(c.service, op, string(kind)).Inc()
	if elapsed > 0 {
		metrics.BackendCallDuration.WithLabelValues(c.service).Observe(elapsed.Seconds())
	}
	c.logger.Debug().Err(err).
		Str("service", c.service).
		Str("op", op).
		Str("kind", string(kind)).
		Msg("backend call failed")
	return domain.NewBackendError(c.service, op, kind, err)
}

func statusKind(status int) domain.BackendErrorKind {
	switch {
	case status == http.StatusNotFound:
		return domain.BackendNotFound
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status == http.StatusForbidden,
		status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return domain.BackendInvalidArgument
	default:
		return domain.BackendInternal
	}
}
