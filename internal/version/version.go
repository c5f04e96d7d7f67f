package version

import "runtime/debug"

// Build-time parameters set via -ldflags

var Version = "devel"

// Without -ldflags, as with `go install github.com/charmbracelet/recycle@latest`,
// Version falls back to the module version embedded in the build info.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	mainVersion := info.Main.Version
	if mainVersion != "" && mainVersion != "(devel)" {
		Version = mainVersion
	}
}
