// Package version reports build information for the pronounce binary and
// the feature schema its models are trained against.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/pronounce/version.Version=1.0.0"
package version
