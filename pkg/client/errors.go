package client

import "errors"

var (
	// ErrNotFound indicates the referenced queue or result does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest indicates the server rejected the request as malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrUnexpectedStatus indicates a response status the client does not handle.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
