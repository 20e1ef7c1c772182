// Package version reports what build is running
package version

import "runtime/debug"

// Set with -ldflags "-X mvpauth/internal/core/version.version=v0.1.0", likewise commit and date
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version and printed by mvpauthctl version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var readBuild = debug.ReadBuildInfo

// Info returns the linked values, falling back to the vcs stamp go build embeds
func Info() BuildInfo {
	bi := BuildInfo{Service: "mvpauth", Version: version, Commit: commit, Date: date}
	if b, ok := readBuild(); ok {
		for _, s := range b.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
