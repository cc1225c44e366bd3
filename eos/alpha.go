package eos

import "math"

// AlphaTerms is a·α(T) with its first and second temperature derivatives.
type AlphaTerms struct {
	AAlpha      float64 // a·α, Pa m6/mol2
	DAAlphaDT   float64 // d(a·α)/dT, Pa m6/(mol2 K)
	D2AAlphaDT2 float64 // d²(a·α)/dT², Pa m6/(mol2 K2)
}

// AlphaFunction computes a·α(T) for one family. AAlpha is the closed form
// used in production; AAlphaReference is an independently derived expansion
// of the same function kept for cross-validation.
type AlphaFunction interface {
	AAlpha(T float64) AlphaTerms
	AAlphaReference(T float64) AlphaTerms
}

/*
Soave 型 α の閉形式

	α = (1 + κ(1 - √Tr))²

	Args:
		a: 臨界点の引力項, Pa m6/mol2
		tc: 臨界温度, K
		kappa: κ, -
		T: 温度, K
*/
func soaveAlpha(a, tc, kappa, T float64) AlphaTerms {
	x := math.Sqrt(T / tc)
	h := 1 + kappa*(1-x)
	return AlphaTerms{
		AAlpha:      a * h * h,
		DAAlphaDT:   -a * kappa * x * h / T,
		D2AAlphaDT2: a * kappa * (kappa/tc + x*h/T) / (2 * T),
	}
}

/*
Soave 型 α を κ(T) とその温度微分から連鎖律で求める

	h = 1 + κ(1 - x), x = √(T/Tc), α = a h²

	Args:
		k, dk, d2k: κ, dκ/dT, d²κ/dT²
*/
func soaveChainT(a, tc, T, k, dk, d2k float64) AlphaTerms {
	x := math.Sqrt(T / tc)
	h := 1 + k*(1-x)
	dh := dk*(1-x) - k*x/(2*T)
	d2h := d2k*(1-x) - dk*x/T + k*x/(4*T*T)
	return AlphaTerms{
		AAlpha:      a * h * h,
		DAAlphaDT:   2 * a * h * dh,
		D2AAlphaDT2: 2 * a * (dh*dh + h*d2h),
	}
}

// soaveChainX is soaveChainT with κ differentiated in x = √(T/Tc) instead of T.
func soaveChainX(a, tc, T, k, kx, kxx float64) AlphaTerms {
	x := math.Sqrt(T / tc)
	h := 1 + k*(1-x)
	hx := kx*(1-x) - k
	hxx := kxx*(1-x) - 2*kx
	return fromX(a, T, x, h*h, 2*h*hx, 2*(hx*hx+h*hxx))
}

// fromX converts α and its x-derivatives to a·α and its T-derivatives.
func fromX(a, T, x, alpha, ax, axx float64) AlphaTerms {
	// dx/dT, d²x/dT²
	dx := x / (2 * T)
	d2x := -x / (4 * T * T)
	return AlphaTerms{
		AAlpha:      a * alpha,
		DAAlphaDT:   a * ax * dx,
		D2AAlphaDT2: a * (axx*dx*dx + ax*d2x),
	}
}

/*
Soave 型 α について P(T, V) = P を満たす温度を求める

	x = √(T/Tc), c = 1 + κ とすると
	x² (R Tc/(V-b) - a κ²/D) + x (2 a c κ/D) - (a c²/D + P) = 0

	Returns:
		最小の正の解から求めた温度, K
*/
func soaveTemperature(c *cubic, kappa, P, V float64) (float64, bool) {
	D := c.attractiveDenominator(V)
	k1 := 1 + kappa
	a2 := R*c.tc/(V-c.b) - c.a*kappa*kappa/D
	a1 := 2 * c.a * k1 * kappa / D
	a0 := -(c.a*k1*k1/D + P)

	x, ok := smallestPositiveQuadraticRoot(a2, a1, a0)
	if !ok {
		return 0, false
	}
	return c.tc * x * x, true
}

func smallestPositiveQuadraticRoot(a2, a1, a0 float64) (float64, bool) {
	if a2 == 0 {
		if a1 == 0 {
			return 0, false
		}
		x := -a0 / a1
		return x, x > 0
	}
	disc := a1*a1 - 4*a2*a0
	if disc < 0 {
		return 0, false
	}
	q := -0.5 * (a1 + math.Copysign(math.Sqrt(disc), a1))
	best := math.Inf(1)
	for _, x := range []float64{q / a2, a0 / q} {
		if x > 0 && x < best && !math.IsInf(x, 0) {
			best = x
		}
	}
	return best, !math.IsInf(best, 1)
}
