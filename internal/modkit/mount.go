package modkit

import (
	phttp "openscout/internal/platform/net/http"
)

// MountRoutes mounts a Built module onto r, honoring prefix and middleware order
func MountRoutes(r phttp.Router, b Built) {
	mount := func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		sub = b.Subrouter(sub)
		b.Register(sub)
	}
	if b.Prefix == "" {
		mount(r)
		return
	}
	r.Route(b.Prefix, mount)
}
