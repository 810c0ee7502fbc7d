// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: load the
// configuration model, register backend modules, bootstrap the process
// group, then build, run and print each configured spectrum. It is decoupled
// from any specific entrypoint like a CLI.
package app
