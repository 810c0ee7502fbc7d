// Package schema holds the gohcl-tagged structs that describe the shape of
// an HCL configuration file. They are decoded by the hcl loader and then
// translated into the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// File represents the top-level structure of any configuration file. Every
// block type may appear in any file.
type File struct {
	Spectra   []*Spectrum `hcl:"spectrum,block"`
	Units     []*Unit     `hcl:"unit,block"`
	Bootstrap *Bootstrap  `hcl:"bootstrap,block"`
}

// --- Spectrum Structures ---

// Attributes is a block with free-form `key = value` attributes, such as
// `inputs` or `mass2`.
type Attributes struct {
	Body hcl.Body `hcl:",remain"`
}

// Spectrum represents a `spectrum "<model>"` block.
type Spectrum struct {
	Model         string      `hcl:"model,label"`
	Scale         *float64    `hcl:"scale,optional"`
	Inputs        *Attributes `hcl:"inputs,block"`
	Dimensionless *Attributes `hcl:"dimensionless,block"`
	Mass          *Attributes `hcl:"mass,block"`
	Mass2         *Attributes `hcl:"mass2,block"`
	Run           []float64   `hcl:"run,optional"`
	ConvertMasses *bool       `hcl:"convert_masses,optional"`
}

// --- Capability Structures ---

// Dependency represents a `dependency "<name>"` block inside a capability.
type Dependency struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

// Capability represents a `capability "<name>"` block inside a unit.
type Capability struct {
	Name         string        `hcl:"name,label"`
	Type         string        `hcl:"type"`
	Dependencies []*Dependency `hcl:"dependency,block"`
}

// Unit represents a `unit "<name>"` block.
type Unit struct {
	Name         string        `hcl:"name,label"`
	Capabilities []*Capability `hcl:"capability,block"`
}

// --- Bootstrap ---

// Bootstrap represents the optional `bootstrap` block.
type Bootstrap struct {
	Transport string `hcl:"transport,optional"`
	URL       string `hcl:"url,optional"`
	Job       string `hcl:"job,optional"`
	Size      int    `hcl:"size,optional"`
	Namespace string `hcl:"namespace,optional"`
	Timeout   string `hcl:"timeout,optional"`
}
