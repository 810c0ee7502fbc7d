// Package capability holds the declarative table of named capabilities that
// functional units provide, with the typed dependencies each one needs.
//
// The table only records and validates declarations. Resolving dependencies
// into a call order is left to the outer resolver; Order is provided for
// diagnostics.
package capability
