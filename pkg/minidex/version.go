// Package minidex holds build-wide constants of the minidex module.
package minidex

// Version is the release version reported by `minidex version`.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/minidex"
