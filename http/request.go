package http

import (
	"fmt"
	"net/url"
	"strings"
)

// Supported HTTP methods. The pipeline rejects nothing else outright, but
// these are the methods the request builder and CLI expose.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// Request describes one intended call: target host, path, method, per-call
// header and query parameter overrides, and an optional raw body. A Request
// is built once by the caller and consumed by a single Execute invocation;
// the pipeline never mutates it.
type Request struct {
	Method      string
	Host        string
	Path        string
	Headers     map[string]string
	QueryParams map[string]interface{}
	Body        string
}

// NewRequest creates a new request for the given method, host and path.
func NewRequest(method, host, path string) *Request {
	return &Request{
		Method:      method,
		Host:        host,
		Path:        path,
		Headers:     make(map[string]string),
		QueryParams: make(map[string]interface{}),
	}
}

// WithHeader adds a header to the request, overriding any client default
// with the same name.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithQueryParam adds a query parameter to the request. The value is
// stringified before URL assembly.
func (r *Request) WithQueryParam(key string, value interface{}) *Request {
	r.QueryParams[key] = value
	return r
}

// WithQueryParams adds multiple query parameters to the request.
func (r *Request) WithQueryParams(params map[string]interface{}) *Request {
	for key, value := range params {
		r.QueryParams[key] = value
	}
	return r
}

// WithBody sets the raw body of the request. A body on a GET request is
// dropped at execution time with a diagnostic, never an error.
func (r *Request) WithBody(body string) *Request {
	r.Body = body
	return r
}

// BuildURL constructs the full request URL from a host, a path and
// stringified query parameters. A host without a scheme defaults to https.
func BuildURL(host, path string, params map[string]string) (string, error) {
	base := host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}

	if u.Path == "" {
		u.Path = path
	} else if path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	}

	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
