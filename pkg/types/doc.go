// Package types defines the minidex entity types, the store configuration and
// the error taxonomy shared by the stores, the catalog and the CLI.
package types
