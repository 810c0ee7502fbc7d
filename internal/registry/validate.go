package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
)

// Validate checks every backend against the name it was registered under and
// builds the capability table from the module units plus extra. The table is
// returned only when everything is consistent.
func (r *Registry) Validate(ctx context.Context, extra ...capability.Unit) (*capability.Table, error) {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	for _, name := range r.Backends() {
		b := r.backends[name].New()
		if b == nil {
			errs = append(errs, fmt.Errorf("backend '%s': constructor returned nil", name))
			continue
		}
		if b.Model() != name {
			errs = append(errs, fmt.Errorf("backend '%s': store reports model '%s'", name, b.Model()))
		}
		if params := b.Params(); params.Model() != name || len(params.Keys()) == 0 {
			errs = append(errs, fmt.Errorf("backend '%s': accessor map '%s' has %d entries", name, params.Model(), len(params.Keys())))
		}
		if _, err := b.Limits().Check(b.Scale()); err != nil {
			errs = append(errs, fmt.Errorf("backend '%s': default scale: %w", name, err))
		}
		logger.Debug("Backend validated.", "name", name)
	}

	table := capability.NewTable()
	for _, u := range append(r.Units(), extra...) {
		if err := table.Add(u); err != nil {
			errs = append(errs, err)
		}
	}
	if err := table.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("registry validation failed: %w", err)
	}
	return table, nil
}
