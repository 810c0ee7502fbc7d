package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/spectrumgo/internal/config"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// buildSpectrum creates a facade for one configured entry and applies its
// scale and parameter overrides. It does not run or compute anything.
func (a *App) buildSpectrum(ctx context.Context, sc *config.Spectrum) (*spectrum.Spectrum, error) {
	logger := ctxlog.FromContext(ctx)

	s, err := a.registry.NewSpectrum(sc.Model, sc.Inputs)
	if err != nil {
		return nil, err
	}
	rv := s.Running()

	if sc.Scale != 0 {
		if _, err := rv.Limits().Check(sc.Scale); err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		rv.SetScale(sc.Scale)
	}

	for _, p := range sc.Params {
		if !p.IsMatrix() {
			if err := rv.Set(p.Tag, p.Key, p.Value); err != nil {
				return nil, err
			}
			continue
		}
		for i, row := range p.Matrix {
			for j, v := range row {
				if err := rv.Set(p.Tag, p.Key, v, i+1, j+1); err != nil {
					return nil, err
				}
			}
		}
	}

	if sc.ConvertMasses != nil {
		s.SetConvertMasses(*sc.ConvertMasses)
	}

	logger.Debug("Spectrum built.", "spectrum", s.ID(), "model", s.Model(), "scale", rv.Scale(), "overrides", len(sc.Params))
	return s, nil
}
