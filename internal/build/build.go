// Package build holds build-time information.
package build

// Version information, overwritten by linker flags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
