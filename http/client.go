package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is applied to every dispatch unless overridden.
const DefaultTimeout = 30 * time.Second

// Doer is the transport capability the pipeline dispatches through. The
// standard library *http.Client satisfies it; anything implementing the same
// contract may be substituted.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client holds the configuration the pipeline reads on every Execute call:
// the transport, the dispatch timeout, default headers and query parameters
// merged into every request, the lifecycle hooks, and a logger for
// diagnostics.
//
// All fields are exported and may be reassigned between calls (for example,
// swapping an auth header after login); the pipeline reads the current value
// at the moment it needs it and takes no snapshot.
type Client struct {
	Transport      Doer
	Timeout        time.Duration
	DefaultHeaders map[string]string
	DefaultParams  map[string]interface{}
	Hooks          Hooks
	Logger         *zap.Logger
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a new client with the given options.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		Transport:      http.DefaultClient,
		Timeout:        DefaultTimeout,
		DefaultHeaders: make(map[string]string),
		DefaultParams:  make(map[string]interface{}),
		Logger:         zap.NewNop(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTransport sets the transport used for dispatch.
func WithTransport(transport Doer) ClientOption {
	return func(c *Client) {
		c.Transport = transport
	}
}

// WithTimeout sets the dispatch timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.Timeout = timeout
	}
}

// WithHeader adds a default header merged into every request. Per-request
// headers win on conflict.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.DefaultHeaders[key] = value
	}
}

// WithParam adds a default query parameter merged into every request.
// Per-request parameters win on conflict.
func WithParam(key string, value interface{}) ClientOption {
	return func(c *Client) {
		c.DefaultParams[key] = value
	}
}

// WithHooks sets the lifecycle hooks.
func WithHooks(hooks Hooks) ClientOption {
	return func(c *Client) {
		c.Hooks = hooks
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.Logger = logger
	}
}

func (c *Client) transport() Doer {
	if c.Transport == nil {
		return http.DefaultClient
	}
	return c.Transport
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
