package main

import (
	"context"

	"openscout/internal/platform/config"
	"openscout/internal/platform/logger"
	phttp "openscout/internal/platform/net/http"
	"openscout/internal/platform/store"

	"openscout/internal/services/api"
)

func main() {
	// service-scoped config (CORE_API_*), storage under SERVICE_PGSQL_*
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "openscout-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := phttp.NewServer(apiCfg)

	// collectors are deployment-specific; the API boots without any and
	// fusion runs simply see no signals until some are registered
	api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Store:  st,
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
