package running

import (
	"context"
	"fmt"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// Runner is implemented by backend stores.
type Runner interface {
	Scale() float64
	// SetScale stamps the scale without touching parameter values.
	SetScale(q float64)
	// RunToScale evolves every parameter from the current scale to target.
	// On failure the store must be left exactly as it was.
	RunToScale(target float64) error
}

// View is the running-parameter interface of one store.
type View struct {
	params accessor.Table
	runner Runner
	limits Limits
}

// New builds a view over a bound accessor table and the backend that owns
// the same store.
func New(params accessor.Table, runner Runner, limits Limits) *View {
	return &View{params: params, runner: runner, limits: limits}
}

// Scale returns the scale of the current store snapshot, in GeV.
func (v *View) Scale() float64 { return v.runner.Scale() }

// SetScale records q as the current scale. Parameter values are unchanged;
// use it when the backend state already corresponds to q.
func (v *View) SetScale(q float64) { v.runner.SetScale(q) }

// Limits returns the validated range.
func (v *View) Limits() Limits { return v.limits }

// Keys lists the parameters in registration order.
func (v *View) Keys() []string { return v.params.Keys() }

// Param describes a parameter.
func (v *View) Param(key string) (accessor.Param, bool) { return v.params.Param(key) }

// Model names the backend type.
func (v *View) Model() string { return v.params.Model() }

// RunToScale evolves all parameters to target. It is not cancellable; ctx
// only carries the logger.
func (v *View) RunToScale(ctx context.Context, target float64) error {
	logger := ctxlog.FromContext(ctx).With("model", v.params.Model(), "from", v.runner.Scale(), "to", target)

	outsideSoft, err := v.limits.Check(target)
	if err != nil {
		logger.Error("Refusing to run outside validated range.", "error", err)
		return err
	}
	if outsideSoft {
		logger.Warn("Running outside the soft validated range; results may be unreliable.",
			"soft_lower", v.limits.SoftLower, "soft_upper", v.limits.SoftUpper)
	}

	logger.Debug("Running parameters.")
	if err := v.runner.RunToScale(target); err != nil {
		logger.Error("Running failed; store left unchanged.", "error", err)
		return fmt.Errorf("run %s to %g GeV: %w", v.params.Model(), target, err)
	}
	v.runner.SetScale(target)
	logger.Debug("Running finished.")
	return nil
}

func (v *View) get(op string, want accessor.Tag, key string, indices []int) (float64, error) {
	if err := v.checkTag(op, want, key, indices); err != nil {
		return 0, err
	}
	return v.params.Get(op, key, indices...)
}

func (v *View) set(op string, want accessor.Tag, key string, value float64, indices []int) error {
	if err := v.checkTag(op, want, key, indices); err != nil {
		return err
	}
	return v.params.Set(op, key, value, indices...)
}

func (v *View) checkTag(op string, want accessor.Tag, key string, indices []int) error {
	p, err := v.params.Resolve(op, key, indices...)
	if err != nil {
		return err
	}
	if p.Tag != want {
		return specerr.New(op, key, indices, specerr.ErrWrongDimensionTag,
			fmt.Sprintf("parameter is %s, accessor expects %s", p.Tag, want))
	}
	return nil
}

func (v *View) GetDimensionless(key string, indices ...int) (float64, error) {
	return v.get("get_dimensionless", accessor.Dimensionless, key, indices)
}

func (v *View) GetMass(key string, indices ...int) (float64, error) {
	return v.get("get_mass", accessor.Mass, key, indices)
}

func (v *View) GetMassSquared(key string, indices ...int) (float64, error) {
	return v.get("get_mass2", accessor.MassSquared, key, indices)
}

func (v *View) SetDimensionless(key string, value float64, indices ...int) error {
	return v.set("set_dimensionless", accessor.Dimensionless, key, value, indices)
}

func (v *View) SetMass(key string, value float64, indices ...int) error {
	return v.set("set_mass", accessor.Mass, key, value, indices)
}

func (v *View) SetMassSquared(key string, value float64, indices ...int) error {
	return v.set("set_mass2", accessor.MassSquared, key, value, indices)
}

// Get reads a parameter through the family that matches tag.
func (v *View) Get(tag accessor.Tag, key string, indices ...int) (float64, error) {
	switch tag {
	case accessor.Dimensionless:
		return v.GetDimensionless(key, indices...)
	case accessor.Mass:
		return v.GetMass(key, indices...)
	case accessor.MassSquared:
		return v.GetMassSquared(key, indices...)
	default:
		return 0, specerr.New("get", key, indices, specerr.ErrWrongDimensionTag, "unknown tag "+tag.String())
	}
}

// Set writes a parameter through the family that matches tag.
func (v *View) Set(tag accessor.Tag, key string, value float64, indices ...int) error {
	switch tag {
	case accessor.Dimensionless:
		return v.SetDimensionless(key, value, indices...)
	case accessor.Mass:
		return v.SetMass(key, value, indices...)
	case accessor.MassSquared:
		return v.SetMassSquared(key, value, indices...)
	default:
		return specerr.New("set", key, indices, specerr.ErrWrongDimensionTag, "unknown tag "+tag.String())
	}
}
