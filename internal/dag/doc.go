// Package dag is a small directed graph used to order capability providers
// by their dependencies and to report dependency cycles.
package dag
