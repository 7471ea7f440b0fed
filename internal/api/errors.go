package api

import "errors"

var (
	// ErrUnavailable covers transport failures, timeouts and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized covers 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRequestFailed covers every other non-2xx response.
	ErrRequestFailed = errors.New("request failed")
)
