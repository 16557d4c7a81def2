package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches every *NetworkError via errors.Is.
	ErrNetwork = errors.New("network error")
	// ErrDecode matches every *DecodeError via errors.Is.
	ErrDecode = errors.New("decode error")
)

// NetworkError reports an unreachable endpoint or a non-2xx response.
type NetworkError struct {
	Op         string
	StatusCode int    // 0 when the request never got a response
	Message    string // error message from the API body, if any
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: API returned status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: API returned status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// DecodeError reports a malformed body or a missing required object.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
