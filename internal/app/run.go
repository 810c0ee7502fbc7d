package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// Run bootstraps the process group, then builds, runs and computes every
// configured spectrum in order. Results are printed by rank 0 only; every
// rank does the same work so collectives stay aligned.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	stopTracing, err := a.startTracing()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, stopTracing(ctx)) }()

	world, err := a.boot.Init(ctx, a.transport)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer func() { err = errors.Join(err, a.boot.Finalize(ctx)) }()
	ctx = ctxlog.With(ctx, "rank", world.Rank())

	if len(a.config.Spectra) == 0 {
		ctxlog.FromContext(ctx).Warn("No spectra configured, nothing to compute.")
		return nil
	}

	for i, sc := range a.config.Spectra {
		s, err := a.buildSpectrum(ctx, sc)
		if err == nil {
			err = a.evolve(ctx, s, sc.Run)
		}
		if err != nil {
			return fmt.Errorf("spectrum %d (%s) from %s: %w", i, sc.Model, sc.Source, err)
		}
		if world.Rank() != 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(a.outW)
		}
		if err := s.Print(a.outW); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.", "spectra", len(a.config.Spectra))
	return nil
}

// evolve visits each scale in order and computes the physical view at the
// last one.
func (a *App) evolve(ctx context.Context, s *spectrum.Spectrum, scales []float64) error {
	logger := ctxlog.FromContext(ctx)
	for _, q := range scales {
		if err := s.RunToScale(ctx, q); err != nil {
			return err
		}
		logger.Info("Ran spectrum to scale.", "spectrum", s.ID(), "model", s.Model(), "scale", q)
	}
	return s.CalculateSpectrum(ctx)
}

// Capabilities prints the validated capability table and its dependency
// order. It needs no process group.
func (a *App) Capabilities(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	order, err := a.table.Order()
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Capability order resolved.", "count", len(order))
	return a.writeCapabilities(order)
}

func (a *App) writeCapabilities(order []string) error {
	var b strings.Builder
	b.WriteString("Capabilities:\n")
	for _, u := range a.table.Units() {
		fmt.Fprintf(&b, "  %s\n", u.Name)
		for _, c := range u.Capabilities {
			fmt.Fprintf(&b, "    %s [%s]\n", c.Name, c.Type)
			for _, d := range c.Dependencies {
				fmt.Fprintf(&b, "      <- %s [%s]\n", d.Name, d.Type)
			}
		}
	}
	b.WriteString("Resolution order:\n")
	for i, name := range order {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, name)
	}
	b.WriteString("Backends:\n")
	for _, name := range a.registry.Backends() {
		desc := ""
		if rb, ok := a.registry.Backend(name); ok {
			desc = rb.Description
		}
		fmt.Fprintf(&b, "  %s: %s\n", name, desc)
	}
	_, err := io.WriteString(a.outW, b.String())
	return err
}
