// Package registry is the glue between backend modules and the application.
//
// Each module contributes a named backend factory and, optionally, the
// functional units it declares for the capability table. The registry is
// populated once at startup and then validated, so a module whose Go code
// disagrees with its declarations fails before any facade is built.
package registry
