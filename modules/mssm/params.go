package mssm

import (
	"errors"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
)

var paramMap = accessor.Once[*Store](Model, fillSUSY, fillSoft, fillDerived)

type scalarField struct {
	key   string
	tag   accessor.Tag
	field func(*pars) *float64
}

type matrixField struct {
	key   string
	tag   accessor.Tag
	field func(*pars) *mat3
}

func registerScalars(m *accessor.Map[*Store], fields ...scalarField) error {
	var errs []error
	for _, f := range fields {
		errs = append(errs, m.Scalar(f.key, f.tag,
			func(s *Store) float64 { return *f.field(&s.p) },
			func(s *Store, v float64) { *f.field(&s.p) = v }))
	}
	return errors.Join(errs...)
}

func registerMatrices(m *accessor.Map[*Store], fields ...matrixField) error {
	var errs []error
	for _, f := range fields {
		errs = append(errs, m.Matrix(f.key, 3, f.tag,
			func(s *Store, i, j int) float64 { return f.field(&s.p)[i][j] },
			func(s *Store, i, j int, v float64) { f.field(&s.p)[i][j] = v }))
	}
	return errors.Join(errs...)
}

// fillSUSY registers the superpotential parameters, gauge couplings and vevs.
func fillSUSY(m *accessor.Map[*Store]) error {
	return errors.Join(
		registerMatrices(m,
			matrixField{"Yu", accessor.Dimensionless, func(p *pars) *mat3 { return &p.yu }},
			matrixField{"Yd", accessor.Dimensionless, func(p *pars) *mat3 { return &p.yd }},
			matrixField{"Ye", accessor.Dimensionless, func(p *pars) *mat3 { return &p.ye }},
		),
		registerScalars(m,
			scalarField{"Mu", accessor.Mass, func(p *pars) *float64 { return &p.mu }},
			scalarField{"g1", accessor.Dimensionless, func(p *pars) *float64 { return &p.g1 }},
			scalarField{"g2", accessor.Dimensionless, func(p *pars) *float64 { return &p.g2 }},
			scalarField{"g3", accessor.Dimensionless, func(p *pars) *float64 { return &p.g3 }},
			scalarField{"vd", accessor.Mass, func(p *pars) *float64 { return &p.vd }},
			scalarField{"vu", accessor.Mass, func(p *pars) *float64 { return &p.vu }},
		),
	)
}

// fillSoft registers the soft-breaking parameters.
func fillSoft(m *accessor.Map[*Store]) error {
	return errors.Join(
		registerMatrices(m,
			matrixField{"TYu", accessor.Mass, func(p *pars) *mat3 { return &p.tyu }},
			matrixField{"TYd", accessor.Mass, func(p *pars) *mat3 { return &p.tyd }},
			matrixField{"TYe", accessor.Mass, func(p *pars) *mat3 { return &p.tye }},
		),
		registerScalars(m,
			scalarField{"BMu", accessor.MassSquared, func(p *pars) *float64 { return &p.bmu }},
		),
		registerMatrices(m,
			matrixField{"mq2", accessor.MassSquared, func(p *pars) *mat3 { return &p.mq2 }},
			matrixField{"ml2", accessor.MassSquared, func(p *pars) *mat3 { return &p.ml2 }},
		),
		registerScalars(m,
			scalarField{"mHd2", accessor.MassSquared, func(p *pars) *float64 { return &p.mHd2 }},
			scalarField{"mHu2", accessor.MassSquared, func(p *pars) *float64 { return &p.mHu2 }},
		),
		registerMatrices(m,
			matrixField{"md2", accessor.MassSquared, func(p *pars) *mat3 { return &p.md2 }},
			matrixField{"mu2", accessor.MassSquared, func(p *pars) *mat3 { return &p.mu2 }},
			matrixField{"me2", accessor.MassSquared, func(p *pars) *mat3 { return &p.me2 }},
		),
		registerScalars(m,
			scalarField{"MassB", accessor.Mass, func(p *pars) *float64 { return &p.massB }},
			scalarField{"MassWB", accessor.Mass, func(p *pars) *float64 { return &p.massWB }},
			scalarField{"MassG", accessor.Mass, func(p *pars) *float64 { return &p.massG }},
		),
	)
}

// fillDerived registers read-only combinations of stored parameters.
func fillDerived(m *accessor.Map[*Store]) error {
	return errors.Join(
		m.Scalar("tanb", accessor.Dimensionless, func(s *Store) float64 { return s.p.vu / s.p.vd }, nil),
		m.Scalar("v", accessor.Mass, func(s *Store) float64 { return s.p.vev() }, nil),
	)
}
