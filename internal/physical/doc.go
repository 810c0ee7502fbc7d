// Package physical holds pole masses and other derived observables computed
// once from a backend snapshot.
//
// A View is empty until Compute is called and is replaced wholesale on every
// later Compute. It never looks at the backend store again, so running the
// store to another scale leaves previously computed values in place until the
// caller explicitly recomputes.
package physical
