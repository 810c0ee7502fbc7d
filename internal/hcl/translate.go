package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/config"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/schema"
)

// translateSpectrum converts a decoded `spectrum` block into its
// format-agnostic form.
func (l *Loader) translateSpectrum(ctx context.Context, s *schema.Spectrum) (*config.Spectrum, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Translating spectrum block.", "model", s.Model)

	out := &config.Spectrum{
		Model:         s.Model,
		Run:           s.Run,
		ConvertMasses: s.ConvertMasses,
		Inputs:        make(map[string]float64),
	}
	if s.Scale != nil {
		out.Scale = *s.Scale
	}

	inputs, err := attributes(s.Inputs)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	for _, a := range inputs {
		if a.matrix != nil {
			return nil, fmt.Errorf("inputs: %s must be a number", a.name)
		}
		out.Inputs[a.name] = a.scalar
	}

	for _, group := range []struct {
		block *schema.Attributes
		tag   accessor.Tag
	}{
		{s.Dimensionless, accessor.Dimensionless},
		{s.Mass, accessor.Mass},
		{s.Mass2, accessor.MassSquared},
	} {
		attrs, err := attributes(group.block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group.tag, err)
		}
		for _, a := range attrs {
			out.Params = append(out.Params, &config.Param{
				Key:    a.name,
				Tag:    group.tag,
				Value:  a.scalar,
				Matrix: a.matrix,
			})
		}
	}

	logger.Debug("Translated spectrum block.", "model", s.Model, "inputs", len(out.Inputs), "overrides", len(out.Params), "run", len(out.Run))
	return out, nil
}

func translateUnit(u *schema.Unit) capability.Unit {
	out := capability.Unit{Name: u.Name}
	for _, c := range u.Capabilities {
		entry := capability.Capability{Name: c.Name, Type: c.Type}
		for _, d := range c.Dependencies {
			entry.Dependencies = append(entry.Dependencies, capability.Dependency{Name: d.Name, Type: d.Type})
		}
		out.Capabilities = append(out.Capabilities, entry)
	}
	return out
}

func translateBootstrap(b *schema.Bootstrap) (*config.Bootstrap, error) {
	out := &config.Bootstrap{
		Transport: b.Transport,
		URL:       b.URL,
		Job:       b.Job,
		Size:      b.Size,
		Namespace: b.Namespace,
	}
	if b.Timeout != "" {
		d, err := time.ParseDuration(b.Timeout)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: invalid timeout %q: %w", b.Timeout, err)
		}
		out.Timeout = d
	}
	return out, nil
}
