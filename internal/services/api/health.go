package api

import (
	stdhttp "net/http"

	perr "openscout/internal/platform/errors"
	phttp "openscout/internal/platform/net/http"
	"openscout/internal/platform/store"
)

// mountHealth exposes the store guard as a liveness endpoint
func mountHealth(r phttp.Router, st *store.Store) {
	r.Get("/healthz", phttp.Handle(func(req *stdhttp.Request) phttp.Response {
		if err := st.Guard(req.Context()); err != nil {
			return phttp.Error(perr.Wrap(err, perr.ErrorCodeUnavailable, "store not ready"))
		}
		return phttp.OK(map[string]string{"status": "ok"})
	}))
}
