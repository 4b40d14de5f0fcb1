package httpkit

import (
	"net/http"
	"time"

	"openscout/internal/platform/net/middleware"
)

// StackOptions tunes the common middleware stack
type StackOptions struct {
	// RequestTimeout aborts handlers that run longer than this (0 disables)
	RequestTimeout time.Duration

	// SlowRequest marks access log entries above this duration as slow
	SlowRequest time.Duration

	// CORS config; nil means permissive defaults
	CORS *middleware.CORSOptions
}

// CommonStack returns the middleware every service router mounts, in order
func CommonStack(opt StackOptions) []func(http.Handler) http.Handler {
	cors := middleware.CORSOptions{}
	if opt.CORS != nil {
		cors = *opt.CORS
	}
	slow := opt.SlowRequest
	if slow <= 0 {
		slow = 500 * time.Millisecond
	}

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.StripSlashes(),
		middleware.CORS(cors),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: slow}),
		middleware.NoCache(),
	}
	if opt.RequestTimeout > 0 {
		mws = append(mws, middleware.Timeout(opt.RequestTimeout))
	}
	return mws
}
