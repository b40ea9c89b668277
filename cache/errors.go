package cache

import "errors"

// ErrNilFetch is returned when Resolve is called without a fetch function.
var ErrNilFetch = errors.New("cache: fetch function cannot be nil")

// FetchError wraps the error returned by a fetch function.
// The cache never classifies or retries it; use errors.Is/errors.As to reach the cause.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return "cache: fetch " + e.Key + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
