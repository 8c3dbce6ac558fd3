// Package stagehand holds shared module metadata.
package stagehand

// Version is the release version, overridden at build time via ldflags.
var Version = "dev"
