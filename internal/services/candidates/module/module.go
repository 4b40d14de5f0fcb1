// Package module wires candidates into the API using modkit
package module

import (
	"net/http"

	modkit "openscout/internal/modkit"
	"openscout/internal/modkit/httpkit"

	cdom "openscout/internal/services/candidates/domain"
	chttp "openscout/internal/services/candidates/http"
	crepo "openscout/internal/services/candidates/repo"
	csvc "openscout/internal/services/candidates/service"
)

// Module implements the candidates module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *csvc.Service
}

// Ports exposes the candidate gateway to sibling modules
type Ports struct {
	Writer cdom.WriterPort
	Reader cdom.ReaderPort
}

// New constructs the candidates module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("candidates"),
		modkit.WithPrefix("/candidates"),
	}, opts...)...)

	svc := csvc.New(deps.PG, crepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Writer: svc, Reader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		chttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the concrete service for in-process callers (CLI)
func (m *Module) Service() *csvc.Service { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
