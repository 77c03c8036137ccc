package yandex

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	version    string
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	transport  Transport
}

func defaultOptions() clientOptions {
	return clientOptions{
		version: DefaultVersion,
		baseURL: BaseURL,
		timeout: 30 * time.Second,
	}
}

// WithVersion selects the API version substituted into the endpoint.
// An empty version keeps the default.
func WithVersion(version string) Option {
	return func(o *clientOptions) {
		if version != "" {
			o.version = version
		}
	}
}

// WithBaseURL overrides the endpoint template. A "{version}" placeholder is
// replaced with the configured version.
func WithBaseURL(template string) Option {
	return func(o *clientOptions) {
		if template != "" {
			o.baseURL = template
		}
	}
}

// WithTimeout sets the HTTP client timeout of the default transport.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent by the default transport.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient makes the default transport use the given client.
// WithTimeout is ignored in that case.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// RequestOption adjusts a single Load call. Options are handed to the
// transport untouched.
type RequestOption func(*RequestOptions)

// RequestOptions is the per-call configuration seen by a Transport.
type RequestOptions struct {
	Header  http.Header
	Timeout time.Duration
}

// WithHeader adds a header to the outgoing request.
func WithHeader(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Header == nil {
			o.Header = make(http.Header)
		}
		o.Header.Add(key, value)
	}
}

// WithRequestTimeout bounds a single request.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(o *RequestOptions) {
		o.Timeout = timeout
	}
}

// ApplyRequestOptions folds opts into a RequestOptions value.
func ApplyRequestOptions(opts ...RequestOption) RequestOptions {
	var ro RequestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}
