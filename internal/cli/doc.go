// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates cobra flags, mirrored into the environment through viper, into
// the application's internal configuration.
package cli
