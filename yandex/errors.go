package yandex

import (
	"errors"
	"fmt"
	"net"
)

// Common errors. Every error returned by Client.Load matches exactly one of them
// through errors.Is.
var (
	// ErrTransport indicates the request never produced an HTTP payload
	ErrTransport = errors.New("yandex geocoder transport failure")
	// ErrEmptyPayload indicates the response body decoded to nothing
	ErrEmptyPayload = errors.New("yandex geocoder returned an empty payload")
	// ErrService indicates the geocoder reported an error in its payload
	ErrService = errors.New("yandex geocoder service error")
)

// TransportError is returned when the transport fails before a payload was obtained.
type TransportError struct {
	URI string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URI, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Timeout reports whether the underlying failure was a timeout
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// EmptyPayloadError is returned when the body could not be decoded into a
// non-empty object.
type EmptyPayloadError struct {
	URI string
	Err error // decode error, nil when the body was valid but empty
}

// Error implements the error interface
func (e *EmptyPayloadError) Error() string {
	return fmt.Sprintf("can't load data by url: %s", e.URI)
}

func (e *EmptyPayloadError) Unwrap() error {
	return e.Err
}

func (e *EmptyPayloadError) Is(target error) bool {
	return target == ErrEmptyPayload
}

// ServiceError carries the error object reported by the geocoder.
type ServiceError struct {
	StatusCode int
	Message    string
	Reason     string // the "error" field when it is a string, e.g. "Forbidden"
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("yandex geocoder error: status %d: %s: %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("yandex geocoder error: status %d: %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// IsUnauthorized checks if the error indicates an invalid or missing API key
func (e *ServiceError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited checks if the key ran out of its request quota
func (e *ServiceError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsBadRequest checks if the geocoder rejected the query parameters
func (e *ServiceError) IsBadRequest() bool {
	return e.StatusCode == 400
}
