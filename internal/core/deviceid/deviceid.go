// Package deviceid reads a locally available device identifier
// The value is not guaranteed unique: machine ids get cloned with images, and
// the installation fallback changes when the state dir is wiped
package deviceid

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mvpauth/internal/platform/logger"

	"github.com/google/uuid"
)

// Source names where an identifier came from
type Source string

// Known sources, tried in this order
const (
	SourceOverride     Source = "override"
	SourceMachineID    Source = "machine-id"
	SourceProductUUID  Source = "product-uuid"
	SourceCPUSerial    Source = "cpu-serial"
	SourceInstallation Source = "installation"
)

// seams
var (
	readFile  = os.ReadFile
	writeFile = os.WriteFile
	mkdirAll  = os.MkdirAll
	newID     = func() string { return uuid.NewString() }
)

var hostFiles = []struct {
	src  Source
	path string
}{
	{SourceMachineID, "/etc/machine-id"},
	{SourceMachineID, "/var/lib/dbus/machine-id"},
	{SourceProductUUID, "/sys/class/dmi/id/product_uuid"},
}

// Resolver finds and caches the identifier for this process
type Resolver struct {
	override string
	stateDir string

	log  *logger.Logger
	once sync.Once
	id   string
	src  Source
}

// New builds a resolver. override wins when set; stateDir holds the
// installation fallback and may be empty to keep it in memory only
func New(override, stateDir string) *Resolver {
	return &Resolver{override: strings.TrimSpace(override), stateDir: stateDir, log: logger.Named("deviceid")}
}

// ID returns the identifier, resolving it on first call
func (r *Resolver) ID() string {
	r.once.Do(r.resolve)
	return r.id
}

// Source reports where ID came from
func (r *Resolver) Source() Source {
	r.once.Do(r.resolve)
	return r.src
}

func (r *Resolver) resolve() {
	log := r.log
	if r.override != "" {
		r.id, r.src = r.override, SourceOverride
		return
	}
	for _, f := range hostFiles {
		if id := readTrimmed(f.path); id != "" {
			r.id, r.src = id, f.src
			log.Debug().Str("source", string(f.src)).Msg("device id resolved")
			return
		}
	}
	if id := cpuSerial(); id != "" {
		r.id, r.src = id, SourceCPUSerial
		return
	}
	r.id, r.src = r.installationID(), SourceInstallation
	log.Debug().Str("source", string(r.src)).Msg("device id resolved")
}

func (r *Resolver) installationID() string {
	if r.stateDir == "" {
		return newID()
	}
	path := filepath.Join(r.stateDir, "installation-id")
	if id := readTrimmed(path); id != "" {
		return id
	}
	id := newID()
	err := mkdirAll(r.stateDir, 0o700)
	if err == nil {
		err = writeFile(path, []byte(id+"\n"), 0o600)
	}
	if err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("could not persist installation id")
	}
	return id
}

func readTrimmed(path string) string {
	b, err := readFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func cpuSerial() string {
	b, err := readFile("/proc/cpuinfo")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(b), "\n") {
		if !strings.HasPrefix(line, "Serial") {
			continue
		}
		if _, v, ok := strings.Cut(line, ":"); ok {
			if s := strings.TrimSpace(v); s != "" && strings.Trim(s, "0") != "" {
				return s
			}
		}
	}
	return ""
}
