// Package api composes the HTTP API for the application
package api

import (
	"openscout/internal/platform/config"
	phttp "openscout/internal/platform/net/http"
	"openscout/internal/platform/store"

	"openscout/internal/adapters/collect"
	"openscout/internal/modkit"
	"openscout/internal/modkit/httpkit"
	"openscout/internal/modkit/module"

	candmod "openscout/internal/services/candidates/module"
	fusemod "openscout/internal/services/fusion/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store

	// Collectors feed fusion runs; nil means runs see no signals
	Collectors *collect.Set
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// candidates owns the persistence gateway; fusion consumes it
	candidates := candmod.New(deps)
	gateway := module.MustPortsOf[candmod.Ports](candidates).Writer

	fusion := fusemod.New(deps, modkit.WithPorts(fusemod.Ports{
		Gateway:    gateway,
		Collectors: opt.Collectors,
	}))

	mods := []module.Module{
		candidates,
		fusion,
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackOptions{}), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	mountHealth(r, opt.Store)
}
