package intent

import (
	"context"
	"net/http"

	"mvpauth/internal/platform/logger"
	pnet "mvpauth/internal/platform/net"
	phttp "mvpauth/internal/platform/net/http"
	"mvpauth/internal/platform/net/http/bind"
)

// HandlerFunc processes one inbound intent
type HandlerFunc func(ctx context.Context, in Intent) error

// Inbound holds the per kind handlers of one application
// a nil handler leaves its route unmounted
type Inbound struct {
	Activity  HandlerFunc
	Service   HandlerFunc
	Broadcast HandlerFunc
}

// Accepted is the body returned to the host after a delivery
type Accepted struct {
	Accepted bool `json:"accepted"`
}

// MaxIntentBytes bounds one inbound intent body
const MaxIntentBytes = 64 << 10

// Mount attaches /intents/{activity,service,broadcast} to r
func Mount(r phttp.Router, in Inbound) {
	r.Route("/intents", func(ir phttp.Router) {
		if in.Activity != nil {
			ir.Post("/"+KindActivity.Route(), handle(in.Activity))
		}
		if in.Service != nil {
			ir.Post("/"+KindService.Route(), handle(in.Service))
		}
		if in.Broadcast != nil {
			ir.Post("/"+KindReceiver.Route(), handle(in.Broadcast))
		}
	})
}

func handle(fn HandlerFunc) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		msg, err := bind.ParseJSON[Intent](r, bind.Options{
			MaxBytes:        MaxIntentBytes,
			DisallowUnknown: false,
		})
		if err != nil {
			return phttp.Error(err)
		}
		ctx := ContextWithSender(r.Context(), r.Header.Get(SenderHeader))
		if err := fn(ctx, msg); err != nil {
			return phttp.Error(err)
		}
		return phttp.Accepted(Accepted{Accepted: true})
	})
}

// ContextWithSender stores the calling package on ctx and on its logger
func ContextWithSender(ctx context.Context, pkg string) context.Context {
	if pkg == "" {
		return ctx
	}
	ctx = pnet.WithRequest(ctx, "", pkg)
	return logger.WithRequest(ctx, pnet.RequestID(ctx), pkg)
}

// SenderFrom returns the calling package recorded by the inbound handler
func SenderFrom(ctx context.Context) string {
	return pnet.Sender(ctx)
}
