package eos

import "math"

// Twu (1995) α の L, M, N
type twuSet struct {
	L, M, N float64
}

// subcritical and supercritical parameter pairs (α0, α1)
var (
	twuSubcritical   = [2]twuSet{{0.125283, 0.911807, 1.948150}, {0.511614, 0.784054, 2.812520}}
	twuSupercritical = [2]twuSet{{0.401219, 4.963070, -0.2}, {0.024955, 1.248089, -8.0}}
)

/*
TWUPR is Peng-Robinson with the Twu (1995) alpha function:

	α = α0 + ω(α1 - α0), αi = Tr^(N(M-1)) exp(L(1 - Tr^(NM)))

The parameter sets switch at Tr = 1. α itself is continuous there but its
temperature derivatives jump slightly (about 1e-6 relative in dα/dT, 1e-5 in
d²α/dT²). This is a property of the published correlation and is kept as is.
*/
type TWUPR struct {
	cubic
}

func newTWUPR(tc, pc, omega float64) *TWUPR {
	return &TWUPR{prCubic(FamilyTWUPR, tc, pc, omega)}
}

func (e *TWUPR) sets(tr float64) [2]twuSet {
	if tr < 1 {
		return twuSubcritical
	}
	return twuSupercritical
}

func (e *TWUPR) combine(alpha [2][3]float64) AlphaTerms {
	w := e.omega
	return AlphaTerms{
		AAlpha:      e.a * (alpha[0][0] + w*(alpha[1][0]-alpha[0][0])),
		DAAlphaDT:   e.a * (alpha[0][1] + w*(alpha[1][1]-alpha[0][1])),
		D2AAlphaDT2: e.a * (alpha[0][2] + w*(alpha[1][2]-alpha[0][2])),
	}
}

// log-derivative form: d ln α/dT = g/T, g = p - L q Tr^q
func (e *TWUPR) AAlpha(T float64) AlphaTerms {
	tr := T / e.tc
	var alpha [2][3]float64
	for i, s := range e.sets(tr) {
		p := s.N * (s.M - 1)
		q := s.N * s.M
		trq := math.Pow(tr, q)
		a := math.Pow(tr, p) * math.Exp(s.L*(1-trq))
		g := p - s.L*q*trq
		alpha[i] = [3]float64{a, a * g / T, a * (g*g - g - s.L*q*q*trq) / (T * T)}
	}
	return e.combine(alpha)
}

// product rule on Tr^p · exp(L(1 - Tr^q))
func (e *TWUPR) AAlphaReference(T float64) AlphaTerms {
	tr := T / e.tc
	var alpha [2][3]float64
	for i, s := range e.sets(tr) {
		p := s.N * (s.M - 1)
		q := s.N * s.M
		A := math.Pow(tr, p)
		dA := p * A / T
		d2A := p * (p - 1) * A / (T * T)

		du := -s.L * q * math.Pow(tr, q) / T
		d2u := -s.L * q * (q - 1) * math.Pow(tr, q) / (T * T)
		E := math.Exp(s.L * (1 - math.Pow(tr, q)))
		dE := E * du
		d2E := E * (du*du + d2u)

		alpha[i] = [3]float64{A * E, dA*E + A*dE, d2A*E + 2*dA*dE + A*d2E}
	}
	return e.combine(alpha)
}
