// Package spectrum is the client-facing facade over one backend store.
//
// A Spectrum owns exactly one backend store together with the running view
// bound to it, the physical view derived from it and the inputs that produced
// it. Copying a Spectrum with Clone deep-copies the store and the inputs, so
// two facades never alias each other's state.
//
// Derived observables are refreshed only by CalculateSpectrum. Running the
// store to another scale leaves the physical view as it was; callers that
// need pole masses at the new point re-invoke CalculateSpectrum.
package spectrum
