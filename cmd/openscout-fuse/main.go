package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"openscout/internal/modkit"
	"openscout/internal/modkit/module"
	"openscout/internal/platform/config"
	"openscout/internal/platform/logger"
	"openscout/internal/platform/store"

	candmod "openscout/internal/services/candidates/module"
	fusedom "openscout/internal/services/fusion/domain"
	fusemod "openscout/internal/services/fusion/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	var (
		industry  = flag.String("industry", "", "target industry context")
		roleLevel = flag.String("role-level", "", "target role level context")
		minScore  = flag.Float64("min-score", 60, "persist buckets scoring at or above this")
		limit     = flag.Int("limit", 100, "per-collector signal bound")
		workers   = flag.Int("workers", 4, "concurrent oracle calls (>=1)")
	)
	flag.Parse()

	if *minScore < 0 || *minScore > 100 {
		log.Fatal("min-score must be within [0,100]")
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "openscout-fuse",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// pass the worker bound into FUSION_* so the module reads its own config
	mustSetEnv("FUSION_WORKERS", strconv.Itoa(*workers))

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// candidates owns the gateway; fusion consumes it
	cm := candmod.New(deps)
	fm := fusemod.New(deps, modkit.WithPorts(fusemod.Ports{
		Gateway: module.MustPortsOf[candmod.Ports](cm).Writer,
	}))

	module.Register(cm.Name(), cm.Ports())
	module.Register(fm.Name(), fm.Ports())

	res, err := fm.Service().Run(context.Background(), fusedom.Input{
		Industry:  *industry,
		RoleLevel: *roleLevel,
		MinScore:  *minScore,
		Limit:     *limit,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("fusion run failed")
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
