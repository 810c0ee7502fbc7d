package spectrum

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/physical"
	"github.com/specialistvlad/spectrumgo/internal/running"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/specialistvlad/spectrumgo/internal/spectrum"

// Spectrum composes a backend store with its running and physical views.
type Spectrum struct {
	id      uuid.UUID
	backend Backend
	inputs  Inputs
	running *running.View
	phys    *physical.View
	convert bool
}

// New takes ownership of backend and inputs. Modules use it for their
// default-constructed spectra.
func New(backend Backend, inputs Inputs) *Spectrum {
	return assemble(backend, inputs.Clone(), physical.New(), true)
}

// Wrap copies an externally supplied backend state and the inputs that
// produced it. Later changes to backend are not seen by the facade.
func Wrap(backend Backend, inputs Inputs) *Spectrum {
	return assemble(backend.Clone(), inputs.Clone(), physical.New(), true)
}

func assemble(backend Backend, inputs Inputs, phys *physical.View, convert bool) *Spectrum {
	if inputs.Model == "" {
		inputs.Model = backend.Model()
	}
	return &Spectrum{
		id:      uuid.New(),
		backend: backend,
		inputs:  inputs,
		running: running.New(backend.Params(), backend, backend.Limits()),
		phys:    phys,
		convert: convert,
	}
}

// Clone deep-copies the store and inputs and rebuilds both views against
// the copy. The copy starts with the same derived observables, since they
// were computed from a snapshot equal to the copied store.
func (s *Spectrum) Clone() *Spectrum {
	return assemble(s.backend.Clone(), s.inputs.Clone(), s.phys.Clone(), s.convert)
}

// ID identifies this facade instance in logs and traces.
func (s *Spectrum) ID() string { return s.id.String() }

// Model names the backend type.
func (s *Spectrum) Model() string { return s.backend.Model() }

// Running returns the running-parameter view.
func (s *Spectrum) Running() *running.View { return s.running }

// Physical returns the derived-observable view.
func (s *Spectrum) Physical() *physical.View { return s.phys }

// Inputs returns a copy of the inputs the store was produced from.
func (s *Spectrum) Inputs() Inputs { return s.inputs.Clone() }

// ConvertMasses reports the convention used by the next CalculateSpectrum.
func (s *Spectrum) ConvertMasses() bool { return s.convert }

// SetConvertMasses selects the mass sign convention for subsequent
// CalculateSpectrum calls. An already computed physical view is unchanged.
func (s *Spectrum) SetConvertMasses(flag bool) { s.convert = flag }

// RunToScale runs the store to target. See running.View.RunToScale.
func (s *Spectrum) RunToScale(ctx context.Context, target float64) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "spectrum.RunToScale", trace.WithAttributes(
		attribute.String("spectrum.id", s.ID()),
		attribute.String("spectrum.model", s.Model()),
		attribute.Float64("spectrum.scale.from", s.running.Scale()),
		attribute.Float64("spectrum.scale.to", target),
	))
	defer span.End()

	ctx = ctxlog.With(ctx, "spectrum", s.ID())
	if err := s.running.RunToScale(ctx, target); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// CalculateSpectrum runs the backend kernel on the current store and
// replaces the physical view with the result.
func (s *Spectrum) CalculateSpectrum(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "spectrum.CalculateSpectrum", trace.WithAttributes(
		attribute.String("spectrum.id", s.ID()),
		attribute.String("spectrum.model", s.Model()),
		attribute.Float64("spectrum.scale", s.running.Scale()),
		attribute.Bool("spectrum.convert_masses", s.convert),
	))
	defer span.End()

	logger := ctxlog.FromContext(ctx).With("spectrum", s.ID(), "model", s.Model())
	logger.Debug("Calculating spectrum.", "scale", s.running.Scale(), "convert_masses", s.convert)

	snap, err := s.backend.CalculateSpectrum(ctx)
	if err == nil {
		err = s.phys.Compute(snap, s.convert)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("Spectrum calculation failed.", "error", err)
		return fmt.Errorf("calculate %s spectrum: %w", s.Model(), err)
	}

	logger.Debug("Spectrum calculated.", "observables", len(s.phys.Keys()))
	return nil
}
