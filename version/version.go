// Package version reports the build version of the kaiku binaries.
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/kaiku-synth/kaiku/version.Version=$(git describe --dirty)"
var Version string

// String returns the explicit Version when set, and otherwise the short
// vcs revision from the build info, with a -dirty suffix when the tree
// had local modifications. Builds without vcs stamping report an empty
// string.
func String() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified && revision != "" {
		revision += "-dirty"
	}
	return revision
}
