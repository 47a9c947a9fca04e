package http

// Hooks holds the optional lifecycle callbacks a client invokes at fixed
// points of the pipeline. All slots may be nil. For one Execute call the
// hooks fire in at most this order: PreSend, then exactly one of nothing
// further (veto), PostSend, OnTimeout followed by PostSend, OnException, or
// OnFault. No hook ever fires more than once per call.
//
// Hooks run synchronously inside the calling goroutine; two concurrent
// Execute calls may interleave invocations of the same hook, and the client
// provides no locking around them.
type Hooks struct {
	// PreSend runs before anything else. Returning a non-nil Error vetoes
	// the call: the transport is never invoked, no other hook fires, and
	// the returned Error becomes the outcome with StatusFailure.
	PreSend func(*Request) *Error

	// PostSend runs after a completed transport round trip, for success and
	// classified HTTP-error outcomes alike (including timeouts classified
	// as HTTP errors). It never runs when an exception or fault
	// short-circuits the pipeline before a classified response exists.
	PostSend func(*Request, Report)

	// OnTimeout runs exactly once when the dispatch exceeds the client
	// timeout, before the timeout is classified into an outcome.
	OnTimeout func(*Request)

	// OnException runs on recoverable runtime failures: network errors,
	// body decoding failures, malformed JSON, converter errors.
	OnException func(*Request, *Error)

	// OnFault runs on programming-level failures, i.e. panics recovered
	// out of a converter or hook.
	OnFault func(*Request, *Error)
}
