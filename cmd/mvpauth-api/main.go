// @title         mvpauth API
// @version       0.1.0
// @description   Requester side of the MVP verification handshake

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/modkit/repokit"
	"mvpauth/internal/platform/config"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/logger"
	phttp "mvpauth/internal/platform/net/http"
	"mvpauth/internal/platform/notice"
	"mvpauth/internal/platform/store"
	"mvpauth/internal/services/relay"

	"mvpauth/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := store.PGFromConfig(root.Prefix("SERVICE_PGSQL_")) // off unless SERVICE_PGSQL_DBURL is set

	// bring up logging early
	l := logger.Get()

	addr := addressing.FromConfig(root)
	if err := addr.Validate(); err != nil {
		l.Panic().Err(err).Msg("invalid addressing")
	}

	// the journal falls back to memory without postgres
	st, err := store.Open(ctx,
		store.Config{AppName: "mvpauth-api", PG: pgCfg},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	if st.Enabled() {
		repokit.MustGuard(ctx, st)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// relay must exist before any module subscribes or publishes
	bus := relay.Init()
	defer relay.Shutdown()

	reg := intent.NewFileRegistry(root.MayString("HOST_REGISTRY", "host.yaml"))
	host := intent.NewHTTPHost(reg, intent.WithSender(addr.RequesterPackage))

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Host:           host,
			Board:          notice.NewBoard(0),
			Bus:            bus,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	l.Info().Str("addr", srv.Addr()).Bool("pg", st.Enabled()).Msg("mvpauth api listening")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
