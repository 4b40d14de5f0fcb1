// Package collect defines the collector seam the fusion run pulls raw
// signals through. Concrete collectors (scrapers, API pollers) live
// outside this repo; this package gives them a shape and a fault-isolating
// multiplexer
package collect

import (
	"context"

	"openscout/internal/core/signal"
	"openscout/internal/platform/logger"
)

// Request is the run context handed to every collector
type Request struct {
	Industry  string
	RoleLevel string

	// Limit caps how many signals one collector should emit; 0 means
	// collector default
	Limit int
}

// Collector emits raw signals for one source
type Collector interface {
	// Name identifies the source in logs
	Name() string

	// Collect returns raw signals for the request. Errors are per-source;
	// the caller logs them and moves on
	Collect(ctx context.Context, req Request) ([]signal.Raw, error)
}

// Func adapts a plain function to a Collector
type Func struct {
	Source string
	Fn     func(ctx context.Context, req Request) ([]signal.Raw, error)
}

// Name returns the source tag
func (f Func) Name() string { return f.Source }

// Collect invokes the wrapped function
func (f Func) Collect(ctx context.Context, req Request) ([]signal.Raw, error) {
	return f.Fn(ctx, req)
}

// Set fans one request out to every registered collector and concatenates
// the results. A failing source contributes nothing and never fails the set
type Set struct {
	collectors []Collector
	log        logger.Logger
}

// NewSet builds a Set over the given collectors
func NewSet(cs ...Collector) *Set {
	return &Set{collectors: cs, log: *logger.Named("collect")}
}

// Collect runs every collector in order and returns the concatenation.
// Per-source failures are logged and skipped; ctx cancellation stops
// issuing new collector calls
func (s *Set) Collect(ctx context.Context, req Request) []signal.Raw {
	var out []signal.Raw
	for _, c := range s.collectors {
		if ctx.Err() != nil {
			s.log.Warn().Err(ctx.Err()).Msg("collection cancelled")
			return out
		}
		sigs, err := c.Collect(ctx, req)
		if err != nil {
			s.log.Warn().Err(err).Str("source", c.Name()).Msg("collector failed, skipping source")
			continue
		}
		s.log.Debug().Str("source", c.Name()).Int("signals", len(sigs)).Msg("collector done")
		out = append(out, sigs...)
	}
	return out
}
