package http

import (
	"encoding/json"
	"time"
)

// Sentinel status codes for outcomes that never carry a real HTTP status.
// StatusTimeout deliberately sits outside the range of valid HTTP codes.
const (
	// StatusTimeout marks an outcome classified from a dispatch that
	// exceeded the configured timeout.
	StatusTimeout = 999

	// StatusFailure marks an outcome produced by a veto, an exception or
	// a fault, before or instead of a transport response.
	StatusFailure = -1
)

// Fixed messages substituted during classification so that a surfaced Error
// never carries an empty message.
const (
	NoMessageProvided = "No error message provided"
	TimeoutMessage    = "Timeout Error"
)

// Error is the structured failure carried by a non-success Outcome. Message
// is never empty on an Outcome surfaced to the caller.
type Error struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Outcome is the discriminated result of one pipeline execution: either
// converted success data or a structured error, never both, plus the status
// code that produced it.
type Outcome[T any] struct {
	StatusCode int
	Data       *T
	Error      *Error
	Duration   time.Duration
}

// IsSuccess reports whether the outcome carries success data. It is true
// exactly when Data is present and Error is absent.
func (o Outcome[T]) IsSuccess() bool {
	return o.Data != nil && o.Error == nil
}

// report returns the type-erased view of the outcome handed to hooks.
func (o Outcome[T]) report() Report {
	r := Report{
		StatusCode: o.StatusCode,
		Error:      o.Error,
		Duration:   o.Duration,
	}
	if o.Data != nil {
		r.Data = *o.Data
	}
	return r
}

// Report is the type-erased view of an Outcome passed to hooks, which cannot
// be generic over the caller's success type.
type Report struct {
	StatusCode int
	Data       interface{}
	Error      *Error
	Duration   time.Duration
}

// IsSuccess reports whether the underlying outcome was a success.
func (r Report) IsSuccess() bool {
	return r.Error == nil
}

// Convert maps the decoded response payload (parsed JSON, or nil when the
// response carried no body) to the caller's success type. It runs during
// classification; an error fails the call through the exception path, a
// panic through the fault path.
type Convert[T any] func(payload interface{}) (T, error)

// Raw is the identity converter: the outcome data is the decoded JSON
// payload itself.
func Raw(payload interface{}) (interface{}, error) {
	return payload, nil
}

// As decodes the payload into a value of type T by round-tripping it through
// encoding/json. A nil payload yields the zero value of T.
func As[T any](payload interface{}) (T, error) {
	var v T
	if payload == nil {
		return v, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}
