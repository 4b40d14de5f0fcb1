// Package http provides http transport for candidates
package http

import (
	stdhttp "net/http"

	"github.com/google/uuid"

	"openscout/internal/modkit/httpkit"
	perr "openscout/internal/platform/errors"
	"openscout/internal/services/candidates/domain"
	svc "openscout/internal/services/candidates/service"
)

// Register mounts candidate endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.GetJSON(r, "/{id}", h.get)
	httpkit.DeleteJSON(r, "/{id}", h.delete)
}

type handlers struct{ svc *svc.Service }

func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	f := in.Filter()
	items, total, err := h.svc.List(r.Context(), f)
	if err != nil {
		return nil, err
	}
	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	return httpkit.OKPage(items, httpkit.Page{Total: total, Page: page, PageSize: size}), nil
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func pathID(r *stdhttp.Request) (uuid.UUID, error) {
	raw := httpkit.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, perr.WithField(perr.Validationf("invalid candidate id %q", raw), "id")
	}
	return id, nil
}
