// Package rge integrates renormalization-group equations between two scales.
//
// Backends describe their parameter set as a flat vector and supply the
// derivative with respect to t = ln(Q/GeV). Run uses fourth-order Runge-Kutta
// with step doubling for error control. It is deterministic: the same input
// vector, scales and options always produce the same output.
//
// Run never modifies the caller's vector on failure. A run that exhausts its
// step budget, shrinks the step below a usable size or produces non-finite
// or runaway values fails with specerr.ErrIntegrationDivergence.
package rge
