// Package buildinfo holds version information set at build time.
package buildinfo

// Version is overridden by the release build via
// -ldflags "-X .../internal/buildinfo.Version=v1.2.3"
var Version = "dev"
