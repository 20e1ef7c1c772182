// Package logger owns the process wide zerolog logger and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mvpauth/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type every package takes
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level       string // zerolog level name, unknown names mean debug
	Format      string // console or json
	Service     string
	Component   string
	Writer      io.Writer // stdout when nil
	WithCaller  bool
	SampleEvery int               // keep 1 in N events when above 1
	Fields      map[string]string // attached to every event
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	e := raw.Env("LOG_")
	return Options{
		Level:       e.Str("LEVEL", "debug"),
		Format:      strings.ToLower(e.Str("FORMAT", "console")),
		Service:     e.Str("SERVICE", ""),
		Component:   e.Str("COMPONENT", ""),
		WithCaller:  e.Bool("CALLER", false),
		SampleEvery: e.Int("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init builds the root logger, only the first call has any effect
func Init(opt Options) *Logger {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
	return root.Load()
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	return Init(FromEnv())
}

func build(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			c = c.Str(k, v)
		}
	}
	for k, v := range opt.Fields {
		c = c.Str(k, v)
	}
	if opt.WithCaller {
		c = c.Caller()
	}

	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// level maps a name to a zerolog level, warning is accepted for warn
func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxField string

const (
	fieldRequestID ctxField = "request_id"
	fieldSender    ctxField = "sender"
)

// WithRequest stores the request id and the sending package for C to pick up
func WithRequest(ctx context.Context, reqID, sender string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, fieldRequestID, reqID)
	}
	if sender != "" {
		ctx = context.WithValue(ctx, fieldSender, sender)
	}
	return ctx
}

// C returns the root logger with whatever WithRequest stored on ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	for _, f := range []ctxField{fieldRequestID, fieldSender} {
		if v, _ := ctx.Value(f).(string); v != "" {
			c = c.Str(string(f), v)
		}
	}
	l := c.Logger()
	return &l
}

// Named returns the root logger tagged with a component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
