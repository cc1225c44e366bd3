package eos

import "math"

// kappa1Limit switches off the κ1 correction above a reduced temperature.
type kappa1Limit struct {
	enabled bool
	cutoff  float64
}

func (l kappa1Limit) suppressed(tr float64) bool {
	return l.enabled && tr > l.cutoff
}

// PRSV の κ0
func prsvKappa0(omega float64) float64 {
	return 0.378893 + 1.4897153*omega - 0.17131848*omega*omega + 0.0196554*omega*omega*omega
}

// PRSV is the Peng-Robinson-Stryjek-Vera equation of state,
// κ = κ0 + κ1(1 + √Tr)(0.7 - Tr).
type PRSV struct {
	cubic
	kappa0 float64
	kappa1 float64
	limit  kappa1Limit
}

func newPRSV(tc, pc, omega, kappa1 float64, limit kappa1Limit) *PRSV {
	return &PRSV{
		cubic:  prCubic(FamilyPRSV, tc, pc, omega),
		kappa0: prsvKappa0(omega),
		kappa1: kappa1,
		limit:  limit,
	}
}

// Kappa returns κ at T.
func (e *PRSV) Kappa(T float64) float64 {
	tr := T / e.tc
	if e.limit.suppressed(tr) {
		return e.kappa0
	}
	return e.kappa0 + e.kappa1*(1+math.Sqrt(tr))*(0.7-tr)
}

func (e *PRSV) AAlpha(T float64) AlphaTerms {
	tr := T / e.tc
	if e.limit.suppressed(tr) {
		return soaveAlpha(e.a, e.tc, e.kappa0, T)
	}
	x := math.Sqrt(tr)
	k := e.kappa0 + e.kappa1*(1+x)*(0.7-tr)
	dk := e.kappa1 * x * (0.7 - 2*x - 3*tr) / (2 * T)
	d2k := -e.kappa1 * x * (0.7 + 3*tr) / (4 * T * T)
	return soaveChainT(e.a, e.tc, T, k, dk, d2k)
}

func (e *PRSV) AAlphaReference(T float64) AlphaTerms {
	tr := T / e.tc
	if e.limit.suppressed(tr) {
		return soaveChainX(e.a, e.tc, T, e.kappa0, 0, 0)
	}
	// κ = κ0 + κ1 B(x), B = (1 + x)(0.7 - x²)
	x := math.Sqrt(tr)
	B := (1 + x) * (0.7 - x*x)
	Bx := 0.7 - 2*x - 3*x*x
	Bxx := -2 - 6*x
	return soaveChainX(e.a, e.tc, T, e.kappa0+e.kappa1*B, e.kappa1*Bx, e.kappa1*Bxx)
}

/*
PRSV2 extends PRSV with two more fit parameters:

	κ = κ0 + [κ1 + κ2(κ3 - Tr)(1 - √Tr)](1 + √Tr)(0.7 - Tr)

With κ2 = κ3 = 0 it reduces to PRSV.
*/
type PRSV2 struct {
	cubic
	kappa0 float64
	kappa1 float64
	kappa2 float64
	kappa3 float64
	limit  kappa1Limit
}

func newPRSV2(tc, pc, omega, kappa1, kappa2, kappa3 float64, limit kappa1Limit) *PRSV2 {
	return &PRSV2{
		cubic:  prCubic(FamilyPRSV2, tc, pc, omega),
		kappa0: prsvKappa0(omega),
		kappa1: kappa1,
		kappa2: kappa2,
		kappa3: kappa3,
		limit:  limit,
	}
}

// Kappa returns κ at T.
func (e *PRSV2) Kappa(T float64) float64 {
	tr := T / e.tc
	if e.limit.suppressed(tr) {
		return e.kappa0
	}
	x := math.Sqrt(tr)
	return e.kappa0 + (e.kappa1+e.kappa2*(e.kappa3-tr)*(1-x))*(1+x)*(0.7-tr)
}

func (e *PRSV2) AAlpha(T float64) AlphaTerms {
	tr := T / e.tc
	if e.limit.suppressed(tr) {
		return soaveAlpha(e.a, e.tc, e.kappa0, T)
	}
	// κ = κ0 + A(x) B(x) in x = √Tr, then converted to T
	x := math.Sqrt(tr)
	A := e.kappa1 + e.kappa2*(e.kappa3-x*x)*(1-x)
	Ax := e.kappa2 * (3*x*x - 2*x - e.kappa3)
	Axx := e.kappa2 * (6*x - 2)
	B := (1 + x) * (0.7 - x*x)
	Bx := 0.7 - 2*x - 3*x*x
	Bxx := -2 - 6*x

	kx := Ax*B + A*Bx
	kxx := Axx*B + 2*Ax*Bx + A*Bxx
	dx := x / (2 * T)
	d2x := -x / (4 * T * T)
	return soaveChainT(e.a, e.tc, T, e.kappa0+A*B, kx*dx, kxx*dx*dx+kx*d2x)
}

func (e *PRSV2) AAlphaReference(T float64) AlphaTerms {
	tr := T / e.tc
	if e.limit.suppressed(tr) {
		return soaveChainX(e.a, e.tc, T, e.kappa0, 0, 0)
	}
	x := math.Sqrt(tr)
	dx := x / (2 * T)
	d2x := -x / (4 * T * T)

	// A = κ1 + κ2 u v, u = κ3 - Tr, v = 1 - x
	u, du := e.kappa3-tr, -1/e.tc
	v, dv, d2v := 1-x, -dx, -d2x
	A := e.kappa1 + e.kappa2*u*v
	dA := e.kappa2 * (du*v + u*dv)
	d2A := e.kappa2 * (2*du*dv + u*d2v)

	// B = s t, s = 1 + x, t = 0.7 - Tr
	s, ds, d2s := 1+x, dx, d2x
	t, dt := 0.7-tr, -1/e.tc
	B := s * t
	dB := ds*t + s*dt
	d2B := d2s*t + 2*ds*dt

	return soaveChainT(e.a, e.tc, T, e.kappa0+A*B, dA*B+A*dB, d2A*B+2*dA*dB+A*d2B)
}
