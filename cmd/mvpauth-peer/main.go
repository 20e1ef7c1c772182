// Command mvpauth-peer is a stand in verifier that answers every request
// with PEER_REPLY_STATUS after PEER_REPLY_DELAY
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	"mvpauth/internal/platform/config"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/logger"
	phttp "mvpauth/internal/platform/net/http"
	peermock "mvpauth/internal/services/peermock/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	addr := addressing.FromConfig(root)
	reg := intent.NewFileRegistry(root.MayString("HOST_REGISTRY", "host.yaml"))
	host := intent.NewHTTPHost(reg, intent.WithSender(addr.PeerPackage))

	// PEER_API_PORT, defaults to :4100 so it can sit next to the api
	srv := phttp.NewServerOn(root.Prefix("PEER_"), ":4100")
	cfg := peermock.FromConfig(root)
	m := peermock.New(
		modkit.Deps{Cfg: root, Host: host, Addr: addr},
		cfg,
		modkit.WithMiddlewares(httpkit.IntakeStack()...),
	)
	m.MountRoutes(srv.Router())

	l.Info().
		Str("addr", srv.Addr()).
		Str("reply_to", string(cfg.ReplyTo)).
		Str("status", cfg.Status).
		Dur("delay", cfg.Delay).
		Msg("mock verifier listening")
	err := srv.Run(ctx)
	m.Wait()
	if err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
