package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Execute runs the full pipeline for one request: pre-send veto, parameter
// and header merge, dispatch under the client timeout, response
// classification, hook notification. It always returns an Outcome; no
// failure escapes as a Go error or panic.
//
// A nil converter defaults to As[T].
func Execute[T any](ctx context.Context, c *Client, req *Request, convert Convert[T]) (out Outcome[T]) {
	start := time.Now()
	if convert == nil {
		convert = As[T]
	}

	// Stage A: the pre-send hook may veto the call outright. The transport
	// is never invoked and no other hook fires.
	if pre := c.Hooks.PreSend; pre != nil {
		if veto := pre(req); veto != nil {
			return Outcome[T]{
				StatusCode: StatusFailure,
				Error:      veto,
				Duration:   time.Since(start),
			}
		}
	}

	// Stage B: merge client defaults with per-request overrides, request
	// values winning on key collision.
	headers := mergeHeaders(c.DefaultHeaders, req.Headers)
	params := stringifyParams(mergeParams(c.DefaultParams, req.QueryParams))
	body := req.Body
	target := req.Host + req.Path

	// Panics recovered out of a converter or hook surface as fault
	// outcomes instead of crossing the Execute boundary.
	defer func() {
		if r := recover(); r != nil {
			out = failure[T](c, req, target, headers, params, body,
				fmt.Errorf("panic: %v", r), true, start)
		}
	}()

	if req.Method == MethodGet {
		stripContentType(headers)
		if body != "" {
			c.logger().Warn("dropping request body on GET",
				zap.String("host", req.Host),
				zap.String("path", req.Path))
			body = ""
		}
	}

	u, err := BuildURL(req.Host, req.Path, params)
	if err != nil {
		return failure[T](c, req, target, headers, params, body, err, false, start)
	}
	target = u

	// Stage C: dispatch under the timeout. A timeout is folded into a
	// synthetic response so it shares the classification path below.
	status, raw, err := c.dispatch(ctx, req.Method, u, headers, body)
	if err != nil {
		if !isTimeout(err) {
			return failure[T](c, req, u, headers, params, body, err, false, start)
		}
		if h := c.Hooks.OnTimeout; h != nil {
			h(req)
		}
		status, raw = StatusTimeout, nil
	}

	// Stage D: classification.
	if !utf8.Valid(raw) {
		return failure[T](c, req, u, headers, params, body,
			errors.New("response body is not valid UTF-8"), false, start)
	}
	text := strings.TrimSpace(string(raw))

	if status >= 200 && status < 300 {
		var payload interface{}
		if text != "" {
			// A malformed success body always fails the call; nil reaches
			// the converter only for a genuinely empty body.
			if err := json.Unmarshal([]byte(text), &payload); err != nil {
				return failure[T](c, req, u, headers, params, body,
					fmt.Errorf("malformed response body: %w", err), false, start)
			}
		}
		data, err := convert(payload)
		if err != nil {
			return failure[T](c, req, u, headers, params, body,
				fmt.Errorf("response conversion failed: %w", err), false, start)
		}
		out = Outcome[T]{StatusCode: status, Data: &data, Duration: time.Since(start)}
		if post := c.Hooks.PostSend; post != nil {
			post(req, out.report())
		}
		return out
	}

	message := NoMessageProvided
	switch {
	case status == StatusTimeout:
		// The timeout sentinel always classifies with the fixed message,
		// regardless of any partial body content.
		message = TimeoutMessage
	case text != "":
		if m := gjson.Get(text, "message"); m.Exists() && m.String() != "" {
			message = m.String()
		}
	}
	out = Outcome[T]{
		StatusCode: status,
		Error:      &Error{Message: message},
		Duration:   time.Since(start),
	}
	if post := c.Hooks.PostSend; post != nil {
		post(req, out.report())
	}
	return out
}

// dispatch performs one transport round trip and buffers the whole body.
func (c *Client) dispatch(ctx context.Context, method, url string, headers map[string]string, body string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.transport().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}

// failure converts an exceptional condition into an Outcome, notifying the
// exception or fault hook. PostSend never fires on this path. The diagnostic
// embeds the request shape to aid debugging, since these failures could not
// be classified against the HTTP error model.
func failure[T any](c *Client, req *Request, url string, headers, params map[string]string, body string, cause error, fault bool, start time.Time) Outcome[T] {
	e := &Error{Message: fmt.Sprintf("%s %s failed: %v (headers=%v, params=%v, body=%q)",
		req.Method, url, cause, headers, params, body)}

	c.logger().Error("request failed",
		zap.String("method", req.Method),
		zap.String("url", url),
		zap.Bool("fault", fault),
		zap.Error(cause))

	if fault {
		if h := c.Hooks.OnFault; h != nil {
			h(req, e)
		}
	} else {
		if h := c.Hooks.OnException; h != nil {
			h(req, e)
		}
	}

	return Outcome[T]{
		StatusCode: StatusFailure,
		Error:      e,
		Duration:   time.Since(start),
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func mergeHeaders(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

func mergeParams(defaults, overrides map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(overrides))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// stringifyParams converts all parameter values to strings, because the URL
// builder accepts only string-valued query components.
func stringifyParams(params map[string]interface{}) map[string]string {
	out := make(map[string]string, len(params))
	for key, value := range params {
		out[key] = fmt.Sprint(value)
	}
	return out
}

// stripContentType removes any Content-Type header, whatever its casing.
// GET requests carry no body to describe.
func stripContentType(headers map[string]string) {
	for key := range headers {
		if textproto.CanonicalMIMEHeaderKey(key) == "Content-Type" {
			delete(headers, key)
		}
	}
}
