// Package raw reads environment variables for packages that sit below config,
// the logger in particular, so it must not log
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a variable prefix such as "LOG_"
type Env string

func (e Env) get(k string) string { return strings.TrimSpace(os.Getenv(string(e) + k)) }

// Str returns the value or def when unset
func (e Env) Str(k, def string) string {
	if v := e.get(k); v != "" {
		return v
	}
	return def
}

// Bool accepts strconv spellings plus yes and no
func (e Env) Bool(k string, def bool) bool {
	switch v := strings.ToLower(e.get(k)); v {
	case "":
		return def
	case "yes", "on":
		return true
	case "no", "off":
		return false
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
}

// Int returns a non negative integer or def
func (e Env) Int(k string, def int) int {
	n, err := strconv.Atoi(e.get(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}
