// Package cli turns command-line arguments into an app.Config. Flags may be
// layered over a TOML settings file; a flag given explicitly always wins.
package cli
