// Package api provides the HTTP API for the application
package api

import (
	"mvpauth/internal/core/addressing"
	"mvpauth/internal/platform/config"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/logger"
	phttp "mvpauth/internal/platform/net/http"
	"mvpauth/internal/platform/notice"
	"mvpauth/internal/platform/store"

	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	"mvpauth/internal/modkit/module"
	"mvpauth/internal/modkit/swaggerkit"

	consolemod "mvpauth/internal/services/api/console/module"
	metamod "mvpauth/internal/services/api/meta/module"
	dispatchmod "mvpauth/internal/services/dispatch/module"
	intakemod "mvpauth/internal/services/intake/module"
	journalmod "mvpauth/internal/services/journal/module"
	peer "mvpauth/internal/services/peer/service"
	"mvpauth/internal/services/relay"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Host           intent.Host
	Board          *notice.Board
	Bus            *relay.Bus
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted reports what Mount built, mostly for tests and boot logs
type Mounted struct {
	Console *consolemod.Module
	Intake  *intakemod.Module
	Journal *journalmod.Module
}

// Mount mounts the API service onto the given router
// intake routes go on r itself, everything else under /api/v1
func Mount(r phttp.Router, opt Options) Mounted {
	if opt.Host == nil {
		panic("api: Options.Host is required")
	}
	board := opt.Board
	if board == nil {
		board = notice.NewBoard(0)
	}
	bus := opt.Bus
	if bus == nil {
		bus = relay.Default()
	}

	deps := modkit.Deps{
		Cfg:     opt.Config,
		Host:    opt.Host,
		Notices: board,
		Addr:    addressing.FromConfig(opt.Config),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil && opt.Store.PG != nil {
		deps.PG = opt.Store.PG
	}

	// journal first, dispatch and intake record into it
	journal := journalmod.New(deps)
	jp := module.MustPortsOf[journalmod.Ports](journal)

	checker := peer.New(opt.Host, deps.Addr.PeerPackage, board)
	dispatch := dispatchmod.New(deps, dispatchmod.Options{},
		modkit.WithPorts(dispatchmod.Needs{Recorder: jp.Dispatch, Peer: checker}))
	dp := module.MustPortsOf[dispatchmod.Ports](dispatch)

	intake := intakemod.New(deps,
		modkit.WithPorts(intakemod.Needs{Publisher: bus, Recorder: jp.Results}),
		modkit.WithMiddlewares(httpkit.IntakeStack()...))

	console := consolemod.New(deps, modkit.WithPorts(consolemod.Needs{
		Dispatcher: dp.Dispatcher,
		Bus:        bus,
		Channel:    deps.Addr.RelayChannel,
		Peer:       checker,
		Board:      board,
		Journal:    jp.Query,
	}))

	// host facing, the registry points peers at <endpoint>/intents/...
	intake.MountRoutes(r)

	mods := []module.Module{
		metamod.New(deps, modkit.WithSwagger(opt.EnableSwagger), modkit.WithPorts(metamod.Needs{
			Listeners: func() int { return bus.Subscribers(deps.Addr.RelayChannel) },
		})),
		journal,
		dispatch,
		console,
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	logger.Named("api").Info().
		Str("intake_mode", string(intake.Options().Mode)).
		Bool("journal_durable", journal.Durable()).
		Str("peer", deps.Addr.PeerPackage).
		Msg("api mounted")

	return Mounted{Console: console, Intake: intake, Journal: journal}
}
