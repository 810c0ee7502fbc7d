package mssm

import (
	"math"

	"github.com/specialistvlad/spectrumgo/internal/rge"
)

// numPars is the length of the packed parameter vector.
const numPars = 3 + 3*9 + 3 + 3*9 + 1 + 5*9 + 2 + 3

const oneLoop = 1 / (16 * math.Pi * math.Pi)

// packer walks a flat vector in a fixed order shared by pack and unpack.
type packer struct {
	v   []float64
	pos int
}

func (k *packer) scalar(x *float64, write bool) {
	if write {
		k.v[k.pos] = *x
	} else {
		*x = k.v[k.pos]
	}
	k.pos++
}

func (k *packer) matrix(m *mat3, write bool) {
	for i := range 3 {
		for j := range 3 {
			k.scalar(&m[i][j], write)
		}
	}
}

func (p *pars) walk(v []float64, write bool) {
	k := &packer{v: v}
	for _, x := range []*float64{&p.g1, &p.g2, &p.g3} {
		k.scalar(x, write)
	}
	for _, m := range []*mat3{&p.yu, &p.yd, &p.ye} {
		k.matrix(m, write)
	}
	for _, x := range []*float64{&p.mu, &p.vd, &p.vu} {
		k.scalar(x, write)
	}
	for _, m := range []*mat3{&p.tyu, &p.tyd, &p.tye} {
		k.matrix(m, write)
	}
	k.scalar(&p.bmu, write)
	for _, m := range []*mat3{&p.mq2, &p.ml2, &p.md2, &p.mu2, &p.me2} {
		k.matrix(m, write)
	}
	for _, x := range []*float64{&p.mHd2, &p.mHu2, &p.massB, &p.massWB, &p.massG} {
		k.scalar(x, write)
	}
}

func (p *pars) pack() []float64 {
	v := make([]float64, numPars)
	p.walk(v, true)
	return v
}

func (p *pars) unpack(v []float64) { p.walk(v, false) }

func (p *pars) vev() float64 { return math.Hypot(p.vd, p.vu) }

// rges is the one-loop MSSM system in t = ln Q.
var rges = rge.Func(func(_ float64, y, dydt []float64) {
	var p pars
	p.unpack(y)
	b := p.beta()
	b.walk(dydt, true)
})

// beta returns the one-loop beta functions of p.
func (p *pars) beta() pars {
	g1s, g2s, g3s := p.g1*p.g1, p.g2*p.g2, p.g3*p.g3
	m1, m2, m3 := p.massB, p.massWB, p.massG

	yuH, ydH, yeH := p.yu.Mul(p.yu.T()), p.yd.Mul(p.yd.T()), p.ye.Mul(p.ye.T())
	yuQ, ydQ, yeL := p.yu.T().Mul(p.yu), p.yd.T().Mul(p.yd), p.ye.T().Mul(p.ye)
	tru, trd, tre := yuH.Trace(), ydH.Trace(), yeH.Trace()
	tu := p.yu.T().Mul(p.tyu).Trace()
	td := p.yd.T().Mul(p.tyd).Trace()
	te := p.ye.T().Mul(p.tye).Trace()

	cu := 3*tru - 16.0/3*g3s - 3*g2s - 13.0/15*g1s
	cd := 3*trd + tre - 16.0/3*g3s - 3*g2s - 7.0/15*g1s
	ce := 3*trd + tre - 3*g2s - 9.0/5*g1s
	cmu := 3*tru + 3*trd + tre - 3*g2s - 3.0/5*g1s

	s := p.mHu2 - p.mHd2 + p.mq2.Trace() - p.ml2.Trace() - 2*p.mu2.Trace() + p.md2.Trace() + p.me2.Trace()

	var b pars
	b.g1 = 33.0 / 5 * g1s * p.g1
	b.g2 = g2s * p.g2
	b.g3 = -3 * g3s * p.g3
	b.massB = 2 * 33.0 / 5 * g1s * m1
	b.massWB = 2 * g2s * m2
	b.massG = 2 * -3 * g3s * m3

	b.yu = p.yu.Scale(cu).Add(p.yu.Mul(yuQ.Scale(3).Add(ydQ)))
	b.yd = p.yd.Scale(cd).Add(p.yd.Mul(ydQ.Scale(3).Add(yuQ)))
	b.ye = p.ye.Scale(ce).Add(p.ye.Mul(yeL.Scale(3)))

	b.mu = p.mu * cmu
	b.vu = p.vu * (3.0/20*g1s + 3.0/4*g2s - 3*tru)
	b.vd = p.vd * (3.0/20*g1s + 3.0/4*g2s - 3*trd - tre)

	b.tyu = p.tyu.Scale(cu).
		Add(p.yu.Scale(6*tu + 32.0/3*g3s*m3 + 6*g2s*m2 + 26.0/15*g1s*m1)).
		Add(p.tyu.Mul(yuQ.Scale(5).Add(ydQ))).
		Add(p.yu.Mul(p.yu.T().Mul(p.tyu).Scale(4).Add(p.yd.T().Mul(p.tyd).Scale(2))))
	b.tyd = p.tyd.Scale(cd).
		Add(p.yd.Scale(6*td + 2*te + 32.0/3*g3s*m3 + 6*g2s*m2 + 14.0/15*g1s*m1)).
		Add(p.tyd.Mul(ydQ.Scale(5).Add(yuQ))).
		Add(p.yd.Mul(p.yd.T().Mul(p.tyd).Scale(4).Add(p.yu.T().Mul(p.tyu).Scale(2))))
	b.tye = p.tye.Scale(ce).
		Add(p.ye.Scale(6*td + 2*te + 6*g2s*m2 + 18.0/5*g1s*m1)).
		Add(p.tye.Mul(yeL.Scale(5))).
		Add(p.ye.Mul(p.ye.T().Mul(p.tye).Scale(4)))

	b.bmu = p.bmu*cmu + p.mu*(6*tu+6*td+2*te+6*g2s*m2+6.0/5*g1s*m1)

	b.mq2 = p.mq2.Mul(yuQ.Add(ydQ)).Add(yuQ.Add(ydQ).Mul(p.mq2)).
		Add(sandwich(p.yu.T(), p.mu2, p.yu).Add(yuQ.Scale(p.mHu2), p.tyu.T().Mul(p.tyu)).Scale(2)).
		Add(sandwich(p.yd.T(), p.md2, p.yd).Add(ydQ.Scale(p.mHd2), p.tyd.T().Mul(p.tyd)).Scale(2)).
		AddDiag(-(32.0/3*g3s*m3*m3 + 6*g2s*m2*m2 + 2.0/15*g1s*m1*m1) + 1.0/5*g1s*s)
	b.ml2 = p.ml2.Mul(yeL).Add(yeL.Mul(p.ml2)).
		Add(sandwich(p.ye.T(), p.me2, p.ye).Add(yeL.Scale(p.mHd2), p.tye.T().Mul(p.tye)).Scale(2)).
		AddDiag(-(6*g2s*m2*m2 + 6.0/5*g1s*m1*m1) - 3.0/5*g1s*s)
	b.mu2 = p.mu2.Mul(yuH).Add(yuH.Mul(p.mu2)).Scale(2).
		Add(sandwich(p.yu, p.mq2, p.yu.T()).Add(yuH.Scale(p.mHu2), p.tyu.Mul(p.tyu.T())).Scale(4)).
		AddDiag(-(32.0/3*g3s*m3*m3 + 32.0/15*g1s*m1*m1) - 4.0/5*g1s*s)
	b.md2 = p.md2.Mul(ydH).Add(ydH.Mul(p.md2)).Scale(2).
		Add(sandwich(p.yd, p.mq2, p.yd.T()).Add(ydH.Scale(p.mHd2), p.tyd.Mul(p.tyd.T())).Scale(4)).
		AddDiag(-(32.0/3*g3s*m3*m3 + 8.0/15*g1s*m1*m1) + 2.0/5*g1s*s)
	b.me2 = p.me2.Mul(yeH).Add(yeH.Mul(p.me2)).Scale(2).
		Add(sandwich(p.ye, p.ml2, p.ye.T()).Add(yeH.Scale(p.mHd2), p.tye.Mul(p.tye.T())).Scale(4)).
		AddDiag(-24.0/5*g1s*m1*m1 + 6.0/5*g1s*s)

	b.mHu2 = 6*(p.mHu2*tru+sandwich(p.yu, p.mq2, p.yu.T()).Trace()+sandwich(p.yu.T(), p.mu2, p.yu).Trace()+p.tyu.Mul(p.tyu.T()).Trace()) -
		6*g2s*m2*m2 - 6.0/5*g1s*m1*m1 + 3.0/5*g1s*s
	b.mHd2 = 6*(p.mHd2*trd+sandwich(p.yd, p.mq2, p.yd.T()).Trace()+sandwich(p.yd.T(), p.md2, p.yd).Trace()+p.tyd.Mul(p.tyd.T()).Trace()) +
		2*(p.mHd2*tre+sandwich(p.ye, p.ml2, p.ye.T()).Trace()+sandwich(p.ye.T(), p.me2, p.ye).Trace()+p.tye.Mul(p.tye.T()).Trace()) -
		6*g2s*m2*m2 - 6.0/5*g1s*m1*m1 - 3.0/5*g1s*s

	b.scaleAll(oneLoop)
	return b
}

func (p *pars) scaleAll(k float64) {
	v := p.pack()
	for i := range v {
		v[i] *= k
	}
	p.unpack(v)
}

// RunToScale evolves the whole parameter set to target. The store is only
// written when integration succeeds.
func (s *Store) RunToScale(target float64) error {
	y := s.p.pack()
	if _, err := rge.Run(rges, y, s.scale, target, rge.DefaultOptions()); err != nil {
		return err
	}
	s.p.unpack(y)
	s.scale = target
	return nil
}
