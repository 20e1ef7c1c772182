// Package config reads settings from the environment under nested prefixes
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"mvpauth/internal/platform/logger"
)

// Conf scopes lookups to a prefix, e.g. New().Prefix("MVPAUTH_") reads MVPAUTH_*
type Conf struct{ prefix string }

// New returns the unprefixed root
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(k)))
	return v, v != ""
}

// parsed reads k through parse, a bad value is logged and def wins
func parsed[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Named("config").Warn().Str("key", c.Key(k)).Str("value", s).Any("default", def).
			Msg("unparseable value, using default")
		return def
	}
	return v
}

// MustString panics when k is unset or blank
func (c Conf) MustString(k string) string {
	v, ok := c.lookup(k)
	if !ok {
		logger.Named("config").Panic().Str("key", c.Key(k)).Msg("required variable not set")
	}
	return v
}

// MayString returns k or def when unset
func (c Conf) MayString(k, def string) string {
	if v, ok := c.lookup(k); ok {
		return v
	}
	return def
}

// MayInt returns k as an int or def
func (c Conf) MayInt(k string, def int) int { return parsed(c, k, def, strconv.Atoi) }

// MayBool returns k as a bool or def
func (c Conf) MayBool(k string, def bool) bool { return parsed(c, k, def, strconv.ParseBool) }

// MayDuration returns k as a duration such as 500ms or def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return parsed(c, k, def, time.ParseDuration)
}

// MayEnum returns k when it is one of allowed, case folded, or def when unset
// any other value panics, a typo in a mode switch must not boot
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v, ok := c.lookup(k)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Named("config").Panic().Str("key", c.Key(k)).Str("value", v).Strs("allowed", allowed).
		Msg("value not in allowed set")
	return ""
}
