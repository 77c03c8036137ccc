package yandex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Transport performs the HTTP GET for a geocoding request.
//
// An implementation returns an error only when no payload could be obtained
// (connection, timeout or protocol failures). Bodies of non-2xx responses are
// returned as-is: the geocoder reports its errors inside the JSON payload.
type Transport interface {
	Get(ctx context.Context, uri string, query url.Values, opts ...RequestOption) ([]byte, error)
}

// HTTPTransport is the default Transport backed by net/http. Redirects are
// followed by the underlying client.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
	logger    zerolog.Logger
}

// NewHTTPTransport creates a transport around client.
func NewHTTPTransport(client *http.Client, userAgent string, logger zerolog.Logger) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Get issues the request and returns the raw body.
func (t *HTTPTransport) Get(ctx context.Context, uri string, query url.Values, opts ...RequestOption) ([]byte, error) {
	ro := ApplyRequestOptions(opts...)
	if ro.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.Timeout)
		defer cancel()
	}

	requestURL := uri
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	for key, values := range ro.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.logger.Debug().
			Int("status", resp.StatusCode).
			Int("bytes", len(body)).
			Msg("Geocoder answered with non-OK status")
	}

	return body, nil
}
