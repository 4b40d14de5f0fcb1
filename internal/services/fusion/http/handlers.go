// Package http provides http transport for fusion runs
package http

import (
	stdhttp "net/http"

	"openscout/internal/modkit/httpkit"
	"openscout/internal/services/fusion/domain"
)

// Register mounts fusion endpoints on the given router
func Register(r httpkit.Router, runner domain.RunnerPort) {
	h := &handlers{runner: runner}
	httpkit.PostJSON[domain.RunInput](r, "/run", h.run)
}

type handlers struct{ runner domain.RunnerPort }

func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.runner.Run(r.Context(), in.Input())
}
