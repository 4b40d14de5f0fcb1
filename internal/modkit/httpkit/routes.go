package httpkit

import "net/http"

// Middleware is the standard net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// MountUnder groups routes beneath prefix with optional middlewares.
// An empty prefix mounts on the parent router directly
func MountUnder(r Router, prefix string, mws []Middleware, mount func(Router)) {
	if prefix == "" {
		if len(mws) > 0 {
			r.Use(mws...)
		}
		mount(r)
		return
	}
	r.Route(prefix, func(sub Router) {
		if len(mws) > 0 {
			sub.Use(mws...)
		}
		mount(sub)
	})
}

// MountAPIV1 mounts fn under /api/v1 behind the given middleware stack
func MountAPIV1(r Router, mws []Middleware, fn func(Router)) {
	MountUnder(r, "/api/v1", mws, fn)
}
