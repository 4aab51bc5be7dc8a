// Package version reports the dotfiles build version.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/dotfiles/version.Version=1.0.0" ./cmd/dotfiles
//
// Unset values fall back to the VCS stamp recorded by the Go toolchain.
package version
