// Package module wires fusion into the API using modkit
package module

import (
	"context"
	"net/http"

	"openscout/internal/adapters/collect"
	"openscout/internal/adapters/oracle"
	"openscout/internal/core/signal"
	modkit "openscout/internal/modkit"
	"openscout/internal/modkit/httpkit"

	fdom "openscout/internal/services/fusion/domain"
	fhttp "openscout/internal/services/fusion/http"
	fsvc "openscout/internal/services/fusion/service"
)

// Module implements the fusion module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *fsvc.Service
}

// Ports declares the injected and exposed port set
type Ports struct {
	// Gateway is required; the candidates module provides it
	Gateway fdom.GatewayPort

	// Collectors are optional; a nil set means runs see no signals
	Collectors *collect.Set

	// Runner is exposed for in-process callers once the module is built
	Runner fdom.RunnerPort
}

// collectAdapter narrows collect.Set to the orchestrator's collector port
type collectAdapter struct{ set *collect.Set }

func (a collectAdapter) Collect(ctx context.Context, industry, roleLevel string, limit int) []signal.Raw {
	return a.set.Collect(ctx, collect.Request{Industry: industry, RoleLevel: roleLevel, Limit: limit})
}

// New constructs the fusion module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("fusion"),
		modkit.WithPrefix("/fusion"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Gateway == nil {
		panic("fusion module requires the candidates gateway port")
	}

	var oraclePort fdom.OraclePort
	if cfg.OracleBaseURL != "" {
		oraclePort = oracle.NewClient(oracle.Options{
			BaseURL:    cfg.OracleBaseURL,
			APIKey:     cfg.OracleAPIKey,
			Timeout:    cfg.OracleTimeout,
			MaxRetries: cfg.OracleRetries,
		})
	}

	var collector fdom.CollectorPort
	if injected.Collectors != nil {
		collector = collectAdapter{set: injected.Collectors}
	}

	svc := fsvc.New(collector, oraclePort, injected.Gateway, fsvc.Options{
		Workers:    cfg.Workers,
		MaxSignals: cfg.MaxSignals,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Gateway: injected.Gateway, Collectors: injected.Collectors, Runner: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		fhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the concrete orchestrator for in-process callers (CLI)
func (m *Module) Service() *fsvc.Service { return m.svc }

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
