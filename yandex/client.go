package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// Client builds and dispatches Yandex geocoder requests.
//
// Filters accumulate through the chainable setters until Clear. A Client is
// not safe for concurrent use; create one per request-building session.
type Client struct {
	apiKey    string
	version   string
	baseURL   string
	transport Transport
	logger    zerolog.Logger

	filters  Filters
	response *Response
}

// NewClient creates a geocoder client with default filters applied.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	transport := options.transport
	if transport == nil {
		httpClient := options.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: options.timeout}
		}
		transport = NewHTTPTransport(httpClient, options.userAgent, logger)
	}

	c := &Client{
		apiKey:    apiKey,
		version:   options.version,
		baseURL:   options.baseURL,
		transport: transport,
		logger:    logger,
	}
	return c.Clear()
}

// Version returns the API version used in the endpoint
func (c *Client) Version() string {
	return c.version
}

// URI returns the endpoint with the version substituted.
func (c *Client) URI() string {
	return expandURI(c.baseURL, c.version)
}

// Filters returns a copy of the current filters.
func (c *Client) Filters() Filters {
	return c.filters.Clone()
}

// Request describes the request Load would send with the current filters.
func (c *Client) Request() Request {
	return Request{
		URI:   c.URI(),
		Query: c.filters.Values(),
	}
}

// Response returns the payload of the last successful Load, or nil before the
// first success and after Clear.
func (c *Client) Response() *Response {
	return c.response
}

// Load sends the request and classifies the outcome. The returned error is a
// *TransportError, *EmptyPayloadError or *ServiceError; on success the parsed
// payload becomes available through Response. Nothing is retried.
func (c *Client) Load(ctx context.Context, opts ...RequestOption) error {
	req := c.Request()

	c.logger.Debug().
		Str("uri", req.URI).
		Str("geocode", req.Query.Get(ParamGeocode)).
		Msg("Sending geocoder request")

	body, err := c.transport.Get(ctx, req.URI, req.Query, opts...)
	if err != nil {
		c.logger.Warn().Err(err).Str("uri", req.URI).Msg("Geocoder request failed")
		return &TransportError{URI: req.URI, Err: err}
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil || isEmpty(data) {
		c.logger.Warn().Err(err).Str("uri", req.URI).Int("bytes", len(body)).Msg("Geocoder returned no data")
		return &EmptyPayloadError{URI: req.URI, Err: err}
	}

	object, _ := data.(map[string]any)
	if serr := serviceError(object); serr != nil {
		c.logger.Warn().
			Int("status", serr.StatusCode).
			Str("message", serr.Message).
			Msg("Geocoder reported an error")
		return serr
	}

	resp, err := newResponse(object, body)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("uri", req.URI).
			Msg("Geocoder payload does not match the expected shape")
	}
	c.response = resp

	c.logger.Debug().
		Int("bytes", len(body)).
		Int("objects", len(resp.GeoObjects())).
		Msg("Geocoder request succeeded")

	return nil
}

// serviceError returns the error object of a payload carrying a truthy
// "error" field, nil otherwise.
func serviceError(object map[string]any) *ServiceError {
	flag, ok := object["error"]
	if !ok || isEmpty(flag) {
		return nil
	}

	serr := &ServiceError{
		StatusCode: toInt(object["statusCode"]),
	}
	if reason, ok := flag.(string); ok {
		serr.Reason = reason
	}
	if msg, ok := object["message"]; ok && msg != nil {
		serr.Message = fmt.Sprint(msg)
	}
	return serr
}

// isEmpty mirrors the loose emptiness of decoded JSON values: null, false,
// zero, "", "0" and empty arrays or objects.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == "" || val == "0"
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

func toInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	case bool:
		if val {
			return 1
		}
	}
	return 0
}
