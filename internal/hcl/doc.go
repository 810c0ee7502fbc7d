// Package hcl provides the HCL implementation of the config.Loader
// interface. It decodes `spectrum`, `unit` and `bootstrap` blocks with gohcl
// and converts attribute values through cty into the config model.
package hcl
