package types

import "runtime"

// Version information for the readerview library.
const (
	Version = "0.3.0"
	Name    = "readerview"
)

// BuildInfo contains version and build information for the readerview library.
type BuildInfo struct {
	Version   string
	Name      string
	GoVersion string
}

// GetBuildInfo returns the current version information for the readerview library.
// This is useful for displaying version information in logs or help output.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}
