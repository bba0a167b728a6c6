// Package client holds the outbound BOI backend adapters.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/go-ntlmssp"
	"github.com/cenkalti/backoff/v4"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

const maxResponseBody = 10 << 20

// response is a fully read backend reply
type response struct {
	StatusCode int
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// errRetryableStatus marks a 5xx reply so backoff tries again
var errRetryableStatus = errors.New("retryable status")

// endpoint is the transport shared by every adapter: auth strategy,
// per-call timeout and optional retry.
type endpoint struct {
	service    string
	cfg        config.EndpointConfig
	httpClient *http.Client
	logger     *logger.Logger
}

func newEndpoint(service string, cfg config.EndpointConfig, httpClient *http.Client, log *logger.Logger) *endpoint {
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}
	return &endpoint{
		service:    service,
		cfg:        cfg,
		httpClient: httpClient,
		logger:     log,
	}
}

// newHTTPClient builds a client for the configured auth mode. NTLM wraps the
// transport in a negotiator that consumes the basic credentials set per request.
func newHTTPClient(cfg config.EndpointConfig) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if cfg.AuthMode() == config.AuthNTLM {
		rt = ntlmssp.Negotiator{RoundTripper: rt}
	}
	return &http.Client{Transport: rt}
}

// authorize attaches credentials only when a username is configured
func (e *endpoint) authorize(req *http.Request) {
	if e.cfg.Username == "" {
		return
	}
	switch e.cfg.AuthMode() {
	case config.AuthBasic, config.AuthNTLM:
		req.SetBasicAuth(e.cfg.Username, e.cfg.Password)
	}
}

// post sends body to the configured endpoint. A returned error means no
// usable HTTP reply was received; any status code comes back as a response.
func (e *endpoint) post(ctx context.Context, contentType string, headers map[string]string, body []byte) (*response, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	var resp *response
	attempt := 0
	op := func() error {
		attempt++
		r, err := e.send(ctx, contentType, headers, body)
		if err != nil {
			return err
		}
		resp = r
		if r.StatusCode >= 500 {
			return errRetryableStatus
		}
		return nil
	}

	if e.cfg.MaxAttempts <= 1 {
		err := op()
		if err != nil && !errors.Is(err, errRetryableStatus) {
			return nil, err
		}
		return resp, nil
	}

	b := backoff.NewExponentialBackOff()
	if e.cfg.RetryDelay > 0 {
		b.InitialInterval = e.cfg.RetryDelay
	}
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(e.cfg.MaxAttempts-1)), ctx)
	err := backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		e.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msgf("%s call failed, retrying", e.service)
	})
	if err != nil && !errors.Is(err, errRetryableStatus) {
		return nil, err
	}
	return resp, nil
}

func (e *endpoint) send(ctx context.Context, contentType string, headers map[string]string, body []byte) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	e.authorize(req)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", e.service, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", e.service, err)
	}

	return &response{StatusCode: resp.StatusCode, Body: data}, nil
}

// statusFailure is the result for a non-2xx reply
func (e *endpoint) statusFailure(resp *response) domain.Result {
	e.logger.Error().
		Int("status", resp.StatusCode).
		Str("body", truncate(resp.Body, 2000)).
		Msgf("%s HTTP error", e.service)
	return domain.Fail(fmt.Sprintf("%s returned error: %d", e.service, resp.StatusCode))
}

// unparseable applies the configured policy to a 2xx body that could not be read
func (e *endpoint) unparseable(err error) domain.Result {
	e.logger.Error().Err(err).Msgf("failed to parse %s response", e.service)
	if e.cfg.UnparseableResponse == config.UnparseableFailure {
		return domain.Fail(fmt.Sprintf("%s returned an unreadable response", e.service))
	}
	return domain.OK()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
