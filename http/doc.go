// Package http provides a request/response orchestration layer on top of a
// raw HTTP transport. It standardizes how outbound requests are assembled
// (merging client defaults with per-call headers and query parameters), how
// responses are classified into success or error outcomes, and how lifecycle
// hooks observe and can veto the pipeline.
//
// This package is designed for programmatic use and provides:
//   - A configurable Client with functional options and reassignable fields
//   - A fluent request builder pattern
//   - A typed Outcome that callers branch on instead of handling errors
//   - Lifecycle hooks (pre-send, post-send, timeout, exception, fault)
//
// Basic Usage:
//
//	client := http.NewClient(
//	    http.WithTimeout(10*time.Second),
//	    http.WithHeader("Authorization", "Bearer token"),
//	)
//
//	req := http.NewRequest(http.MethodGet, "api.example.com", "/users/1").
//	    WithQueryParam("expand", "profile")
//
//	outcome := http.Execute(context.Background(), client, req, http.As[User])
//	if outcome.IsSuccess() {
//	    fmt.Println(outcome.Data.Name)
//	} else {
//	    fmt.Println(outcome.StatusCode, outcome.Error.Message)
//	}
//
// Hooks Example:
//
//	client.Hooks.PreSend = func(r *http.Request) *http.Error {
//	    if !loggedIn {
//	        return &http.Error{Message: "not authenticated"}
//	    }
//	    return nil
//	}
//
// No failure ever escapes Execute as a Go error or panic: every failure path
// is converted into an Outcome carrying a non-empty Error before returning.
//
// Thread Safety:
//
// Client is safe for concurrent use. Multiple goroutines may call Execute
// with the same Client simultaneously; hooks run synchronously inside each
// call and must handle their own synchronization if they share state.
package http
