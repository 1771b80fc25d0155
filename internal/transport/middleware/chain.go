package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into one. They run in the order
// given: Chain(mw1, mw2)(h) produces mw1(mw2(h)), so mw1 is outermost.
// The server wires RequestID first so every later stage can log it.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
