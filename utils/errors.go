package utils

import (
	"context"
	"errors"
	"fmt"
)

// Outcome labels recorded at every catch boundary
const (
	OutcomeSuccess    = "success"
	OutcomeFetchError = "fetch_error"
	OutcomeParseError = "parse_error"
	OutcomeEmpty      = "empty_result"
	OutcomeCanceled   = "canceled"
)

// ErrEmptyResult signals a source was reached but yielded no usable data
var ErrEmptyResult = errors.New("source yielded no usable data")

// FetchError is a network or HTTP failure
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a malformed payload or a missing expected field
type ParseError struct {
	URL   string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse %s: field %s: %v", e.URL, e.Field, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Classify maps an error to its outcome label
func Classify(err error) string {
	var fetchErr *FetchError
	var parseErr *ParseError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, ErrEmptyResult):
		return OutcomeEmpty
	case errors.As(err, &parseErr):
		return OutcomeParseError
	case errors.As(err, &fetchErr):
		return OutcomeFetchError
	default:
		return OutcomeFetchError
	}
}
