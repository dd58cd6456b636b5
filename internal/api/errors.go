package api

import (
	"encoding/json"
	"fmt"
)

// ErrUnauthorized indicates the backend rejected the bearer token
// (missing, expired, or forbidden). The UI turns this into a sign-in
// notice; nothing in this client retries or refreshes.
type ErrUnauthorized struct {
	Status int
	Err    error
}

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("unauthorized (status %d)", e.Status)
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrUnavailable indicates a transport-level failure: the backend is
// down, unreachable, or the request timed out.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API unavailable: %v", e.Err)
	}
	return "API unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidPayload indicates the response body did not match the
// expected shape for the endpoint.
type ErrInvalidPayload struct {
	Endpoint string
	Content  json.RawMessage
	Err      error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid %s response: %v", e.Endpoint, e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// ErrStatus indicates a non-2xx response that is not an auth failure.
type ErrStatus struct {
	Endpoint string
	Status   int
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Status)
}
