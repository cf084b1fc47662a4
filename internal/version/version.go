// Package version: build identity injected via -ldflags.
package version

var (
	Version = "dev"
	Commit  = "unknown"
)
