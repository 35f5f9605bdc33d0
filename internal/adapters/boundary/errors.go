package boundary

import "errors"

var (
	// ErrRequest covers transport failures and non-success statuses.
	ErrRequest = errors.New("boundary request failed")
	// ErrNotFound means the service answered but had no place for the query.
	ErrNotFound = errors.New("boundary not found")
	// ErrDecode means the response was not the expected search result.
	ErrDecode = errors.New("boundary response malformed")
)
