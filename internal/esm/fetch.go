package esm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/soc-toolbox/esmbridge/internal/metrics"
)

const (
	// one re-authentication attempt after an auth-expired response,
	// a second rejection surfaces as ErrCredentialRejected.
	maxAuthAttempts = 2

	maxErrBodyBytes = 200
)

// get issues an authenticated GET and decodes the response into out.
// freshness is a hint for an intermediary cache (Cache-Control max-age),
// this layer does not cache resource data itself.
func (c *Client) get(ctx context.Context, path string, freshness, timeout time.Duration, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, freshness, timeout, out)
}

// post issues an authenticated POST with a JSON body, the response payload is
// discarded.
func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, 0, c.config.RequestTimeout, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, freshness, timeout time.Duration, out interface{}) error {
	if c.config.Endpoint == "" {
		return errors.Wrap(ErrConfiguration, "esm endpoint not set")
	}

	var payload []byte

	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(ErrValidation, "request body: "+err.Error())
		}
	}

	// correlation id shared across the auth retry
	requestID := uuid.New().String()

	for attempt := 0; attempt < maxAuthAttempts; attempt++ {
		statusCode, respBody, err := c.doOnce(ctx, method, path, payload, freshness, timeout, requestID)
		if err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"method":     method,
				"path":       path,
				"request_id": requestID,
			}).Warn("esm request failed")

			return err
		}

		if statusCode == http.StatusUnauthorized {
			if attempt == 0 {
				c.logger.WithFields(map[string]interface{}{
					"method":     method,
					"path":       path,
					"request_id": requestID,
				}).Info("esm credential rejected, re-authenticating")

				c.tokens.Invalidate()
				metrics.ReauthCount.Inc()

				continue
			}

			return errors.Wrapf(ErrCredentialRejected, "%s %s", method, path)
		}

		if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
			return errors.Wrapf(ErrESMQuery, "%s %s: status %d: %s",
				method, path, statusCode, truncate(respBody, maxErrBodyBytes))
		}

		if out == nil {
			return nil
		}

		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrapf(ErrESMQuery, "%s %s: malformed response: %s",
				method, path, err.Error())
		}

		return nil
	}

	return errors.Wrapf(ErrCredentialRejected, "%s %s", method, path)
}

// doOnce performs a single upstream call under its own timeout-derived
// cancellation signal. Auth and status policy live in do.
func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, freshness, timeout time.Duration, requestID string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader = http.NoBody

	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.Endpoint+path, reqBody)
	if err != nil {
		return 0, nil, errors.Wrap(ErrESMQuery, err.Error())
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if method == http.MethodGet && freshness > 0 {
		req.Header.Set("Cache-Control", fmt.Sprintf("max-age=%d", int(freshness.Seconds())))
	}

	// in gateway mode the oauth2 transport owns the Authorization header
	if !c.gatewayAuth {
		token, err := c.tokens.Get(ctx)
		if err != nil {
			return 0, nil, err
		}

		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	metrics.ESMQueryRunTimeSummary.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, errors.Wrapf(ErrRequestTimeout, "%s %s after %s", method, path, timeout)
		}

		return 0, nil, errors.Wrap(ErrESMQuery, err.Error())
	}
	defer resp.Body.Close()

	metrics.ESMQueryCount.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, errors.Wrapf(ErrRequestTimeout, "%s %s after %s", method, path, timeout)
		}

		return 0, nil, errors.Wrap(ErrESMQuery, err.Error())
	}

	return resp.StatusCode, respBody, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}

	return string(b[:n]) + "..."
}
