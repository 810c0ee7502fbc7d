package capability

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/spectrumgo/internal/dag"
	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// ErrUnresolvedDependency is returned when no unit provides a dependency
// with the requested name and type.
var ErrUnresolvedDependency = errors.New("unresolved dependency")

// Dependency is a (name, type) pair a capability needs.
type Dependency struct {
	Name string
	Type string
}

// Capability is one named result a unit can produce.
type Capability struct {
	Name         string
	Type         string
	Dependencies []Dependency
}

// Unit is a functional unit and its ordered capabilities.
type Unit struct {
	Name         string
	Capabilities []Capability
}

// Provider identifies the unit that provides a capability.
type Provider struct {
	Unit       string
	Capability string
	Type       string
}

// Table is the set of declared units.
type Table struct {
	units []Unit
	index map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add declares a unit. Unit names are unique within the table and capability
// names are unique within a unit.
func (t *Table) Add(u Unit) error {
	if u.Name == "" {
		return errors.New("capability: unit name is empty")
	}
	if _, exists := t.index[u.Name]; exists {
		return specerr.New("declare_unit", u.Name, nil, specerr.ErrDuplicateRegistration, "unit already declared")
	}
	seen := make(map[string]bool, len(u.Capabilities))
	for _, c := range u.Capabilities {
		if c.Name == "" || c.Type == "" {
			return fmt.Errorf("capability: unit %s declares a capability without name or type", u.Name)
		}
		if seen[c.Name] {
			return specerr.New("declare_capability", c.Name, nil, specerr.ErrDuplicateRegistration,
				fmt.Sprintf("declared twice in unit %s", u.Name))
		}
		seen[c.Name] = true
	}

	slog.Debug("Declaring functional unit.", "unit", u.Name, "capabilities", len(u.Capabilities))
	t.index[u.Name] = len(t.units)
	t.units = append(t.units, cloneUnit(u))
	return nil
}

// MustAdd is Add for static tables; it panics on error.
func (t *Table) MustAdd(u Unit) {
	if err := t.Add(u); err != nil {
		panic(fmt.Sprintf("capability table: %v", err))
	}
}

// Units returns copies of the declared units in declaration order.
func (t *Table) Units() []Unit {
	out := make([]Unit, len(t.units))
	for i, u := range t.units {
		out[i] = cloneUnit(u)
	}
	return out
}

// Unit returns a declared unit by name.
func (t *Table) Unit(name string) (Unit, bool) {
	i, ok := t.index[name]
	if !ok {
		return Unit{}, false
	}
	return cloneUnit(t.units[i]), true
}

// Providers lists the units that provide the named capability.
func (t *Table) Providers(capability string) []Provider {
	var out []Provider
	for _, u := range t.units {
		for _, c := range u.Capabilities {
			if c.Name == capability {
				out = append(out, Provider{Unit: u.Name, Capability: c.Name, Type: c.Type})
			}
		}
	}
	return out
}

// Validate checks that every dependency is provided by some unit with a
// matching type. All problems are reported together.
func (t *Table) Validate() error {
	var errs []error
	for _, u := range t.units {
		for _, c := range u.Capabilities {
			for _, d := range c.Dependencies {
				if err := t.check(u.Name, c.Name, d); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (t *Table) check(unit, capability string, d Dependency) error {
	providers := t.Providers(d.Name)
	if len(providers) == 0 {
		return fmt.Errorf("%w: %s.%s needs %s of type %s, which no unit provides",
			ErrUnresolvedDependency, unit, capability, d.Name, d.Type)
	}
	var types []string
	for _, p := range providers {
		if p.Type == d.Type {
			return nil
		}
		types = append(types, p.Type)
	}
	slices.Sort(types)
	return fmt.Errorf("%w: %s.%s needs %s of type %s, provided only as %v",
		ErrUnresolvedDependency, unit, capability, d.Name, d.Type, slices.Compact(types))
}

// Order returns capability names so that each appears after the capabilities
// it depends on. Unprovided dependencies are ignored; cycles are errors.
func (t *Table) Order() ([]string, error) {
	g := dag.New()
	for _, u := range t.units {
		for _, c := range u.Capabilities {
			g.AddNode(c.Name)
		}
	}
	for _, u := range t.units {
		for _, c := range u.Capabilities {
			for _, d := range c.Dependencies {
				if len(t.Providers(d.Name)) == 0 {
					continue
				}
				if err := g.AddEdge(d.Name, c.Name); err != nil {
					return nil, fmt.Errorf("capability %s.%s: %w", u.Name, c.Name, err)
				}
			}
		}
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("capability dependency order: %w", err)
	}
	return order, nil
}

func cloneUnit(u Unit) Unit {
	out := Unit{Name: u.Name, Capabilities: make([]Capability, len(u.Capabilities))}
	for i, c := range u.Capabilities {
		c.Dependencies = slices.Clone(c.Dependencies)
		out.Capabilities[i] = c
	}
	return out
}
