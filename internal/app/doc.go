// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: load a grid, build the
// graph, pull frames through its sinks, tear it down. It is decoupled from
// any specific entrypoint like a CLI.
package app
