package testutil

import (
	"context"
	"net/http"

	"pharmafinder/pkg/requestcontext"
)

// WithCaller marks the request as authenticated by uid, as the auth
// middleware does for a valid bearer token.
func WithCaller(req *http.Request, uid string) *http.Request {
	if uid == "" {
		return req
	}
	return req.WithContext(requestcontext.WithCallerUID(req.Context(), uid))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
