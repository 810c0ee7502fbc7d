// Package running provides the scale-aware view over one backend store.
//
// A View resolves every access through the backend's accessor table and then
// checks that the accessor family matches the parameter's dimension tag, so
// asking for a mass-squared parameter through GetMass fails instead of
// returning a number in the wrong units.
//
// RunToScale is all-or-nothing. Hard limits are checked before the backend is
// asked to integrate, the backend leaves its store untouched on failure, and
// the recorded scale only moves when the run succeeds.
package running
