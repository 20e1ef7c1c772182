package httpkit

import (
	"compress/flate"
	"time"

	"mvpauth/internal/platform/net/middleware"
)

// Stack timings
const (
	APITimeout        = 30 * time.Second
	APISlow           = 500 * time.Millisecond
	IntakeTimeout     = 10 * time.Second
	IntakeSlow        = 200 * time.Millisecond
	HeartbeatPath     = "/health"
	IntakeConcurrency = 32 // simultaneous peer deliveries
)

// CommonStack is the chain every /api/v1 route runs behind, outermost first
func CommonStack() []middleware.Middleware {
	return []middleware.Middleware{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: APISlow}),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat(HeartbeatPath),
		middleware.StripSlashes(),
		middleware.Timeout(APITimeout),
	}
}

// IntakeStack guards the host facing routes
// callers are local processes, so no CORS or compression
func IntakeStack() []middleware.Middleware {
	return []middleware.Middleware{
		middleware.RequestID(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: IntakeSlow}),
		middleware.Throttle(IntakeConcurrency),
		middleware.Timeout(IntakeTimeout),
	}
}
