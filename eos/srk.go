package eos

import "math"

// SRK is the Soave-Redlich-Kwong equation of state.
type SRK struct {
	cubic
	m float64
}

func srkCubic(family Family, tc, pc, omega float64) cubic {
	b := srkOmegaB * R * tc / pc
	return cubic{
		family: family,
		tc:     tc,
		pc:     pc,
		omega:  omega,
		a:      srkOmegaA * R * R * tc * tc / pc,
		b:      b,
		delta:  b,
	}
}

func srkM(omega float64) float64 {
	return 0.480 + 1.574*omega - 0.176*omega*omega
}

func newSRK(tc, pc, omega float64) *SRK {
	return &SRK{cubic: srkCubic(FamilySRK, tc, pc, omega), m: srkM(omega)}
}

// M returns the Soave slope m.
func (e *SRK) M() float64 { return e.m }

func (e *SRK) AAlpha(T float64) AlphaTerms {
	return soaveAlpha(e.a, e.tc, e.m, T)
}

func (e *SRK) AAlphaReference(T float64) AlphaTerms {
	return soaveChainX(e.a, e.tc, T, e.m, 0, 0)
}

func (e *SRK) SolveTClosedForm(P, V float64) (float64, bool) {
	return soaveTemperature(&e.cubic, e.m, P, V)
}

// SRKTranslated is SRK with a Peneloux volume translation c:
//
//	b = b0 - c, δ = b0 + 2c, ε = c(b0 + c)
type SRKTranslated struct {
	SRK
	shift float64
}

func newSRKTranslated(tc, pc, omega, c float64) *SRKTranslated {
	base := srkCubic(FamilySRKTranslated, tc, pc, omega)
	b0 := base.b
	base.b = b0 - c
	base.delta = b0 + 2*c
	base.epsilon = c * (b0 + c)
	return &SRKTranslated{SRK: SRK{cubic: base, m: srkM(omega)}, shift: c}
}

// Shift returns the volume translation, m3/mol.
func (e *SRKTranslated) Shift() float64 { return e.shift }

/*
APISRK is the API Technical Data Book variant of SRK:

	α = (1 + S1(1 - √Tr) + S2(1 - √Tr)/√Tr)²

S1 defaults to 0.48508 + 1.55171ω - 0.15613ω²; S2 defaults to 0.
*/
type APISRK struct {
	cubic
	s1 float64
	s2 float64
}

func newAPISRK(tc, pc float64, p parameters) *APISRK {
	s1 := p.s1
	if !p.hasS1 {
		s1 = 0.48508 + 1.55171*p.omega - 0.15613*p.omega*p.omega
	}
	return &APISRK{cubic: srkCubic(FamilyAPISRK, tc, pc, p.omega), s1: s1, s2: p.s2}
}

func (e *APISRK) S1() float64 { return e.s1 }
func (e *APISRK) S2() float64 { return e.s2 }

func (e *APISRK) AAlpha(T float64) AlphaTerms {
	x := math.Sqrt(T / e.tc)
	h := 1 + e.s1*(1-x) + e.s2*(1/x-1)
	hx := -e.s1 - e.s2/(x*x)
	hxx := 2 * e.s2 / (x * x * x)
	return fromX(e.a, T, x, h*h, 2*h*hx, 2*(hx*hx+h*hxx))
}

func (e *APISRK) AAlphaReference(T float64) AlphaTerms {
	x := math.Sqrt(T / e.tc)
	dx := x / (2 * T)
	d2x := -x / (4 * T * T)
	h := 1 + e.s1*(1-x) + e.s2*(1-x)/x
	dh := -e.s1*dx - e.s2*dx/(x*x)
	d2h := -e.s1*d2x - e.s2*(d2x/(x*x)-2*dx*dx/(x*x*x))
	return AlphaTerms{
		AAlpha:      e.a * h * h,
		DAAlphaDT:   2 * e.a * h * dh,
		D2AAlphaDT2: 2 * e.a * (dh*dh + h*d2h),
	}
}

// SolveTClosedForm only applies when S2 is zero, where S1 plays the role of κ.
func (e *APISRK) SolveTClosedForm(P, V float64) (float64, bool) {
	if e.s2 != 0 {
		return 0, false
	}
	return soaveTemperature(&e.cubic, e.s1, P, V)
}
