package eos

import "math"

// RK is the original Redlich-Kwong equation of state, aα = a/√T.
type RK struct {
	cubic
}

func newRK(tc, pc float64) *RK {
	b := srkOmegaB * R * tc / pc
	return &RK{cubic{
		family: FamilyRK,
		tc:     tc,
		pc:     pc,
		a:      srkOmegaA * R * R * math.Pow(tc, 2.5) / pc,
		b:      b,
		delta:  b,
	}}
}

func (e *RK) AAlpha(T float64) AlphaTerms {
	s := math.Sqrt(T)
	return AlphaTerms{
		AAlpha:      e.a / s,
		DAAlphaDT:   -e.a / (2 * T * s),
		D2AAlphaDT2: 3 * e.a / (4 * T * T * s),
	}
}

func (e *RK) AAlphaReference(T float64) AlphaTerms {
	return AlphaTerms{
		AAlpha:      e.a * math.Pow(T, -0.5),
		DAAlphaDT:   -0.5 * e.a * math.Pow(T, -1.5),
		D2AAlphaDT2: 0.75 * e.a * math.Pow(T, -2.5),
	}
}

// y = √T として (R/(V-b)) y³ - P y - a/(V(V+b)) = 0 の正の実根から温度を求める。
// Descartes の符号則より正の実根はひとつ。
func (e *RK) SolveTClosedForm(P, V float64) (float64, bool) {
	k := (V - e.b) / R
	roots := cubicRoots(0, -P*k, -e.a*k/e.attractiveDenominator(V))
	y := 0.0
	for _, r := range roots {
		if imag(r) == 0 && real(r) > y {
			y = real(r)
		}
	}
	if y == 0 || math.IsNaN(y) {
		return 0, false
	}
	return y * y, true
}
