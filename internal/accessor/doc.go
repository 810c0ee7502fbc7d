// Package accessor binds backend-native numeric storage to string-keyed,
// dimension-tagged parameters.
//
// A Map is built once per backend type by a set of Filler functions and is
// read-only afterwards, so every store of that type shares it. Each entry
// knows its shape (scalar or N×N matrix, 1-indexed from the outside) and its
// dimension tag, and holds a getter/setter pair that reaches into the store.
// Entries never copy values.
//
// Views never talk to a Map directly; they use a Table obtained from Bind,
// which pairs the shared Map with one store instance:
//
//	params := accessor.Bind(mssmMap(), store)
//	v, err := params.Get("get_mass2", "mq2", 1, 1)
//
// Resolution order is fixed: unknown key, then arity, then index range.
// Storage is only touched after all three checks pass.
package accessor
