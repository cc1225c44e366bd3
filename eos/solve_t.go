package eos

import (
	"fmt"
	"math"
	"strconv"

	"github.com/marcosfelt/thermo/thermoerr"
)

/*
圧力を求める

	P = RT/(V-b) - aα/(V² + δV + ε)

	Args:
		m: EOS
		T: 温度, K
		V: モル体積, m3/mol

	Returns:
		圧力, Pa
*/
func Pressure(m Model, T, V float64) (float64, error) {
	return pressure(m, m.AAlpha, T, V)
}

// PressureReference is Pressure evaluated with the reference alpha expansion.
func PressureReference(m Model, T, V float64) (float64, error) {
	return pressure(m, m.AAlphaReference, T, V)
}

func pressure(m Model, alpha func(float64) AlphaTerms, T, V float64) (float64, error) {
	c := m.Coefficients()
	if !(T > 0) || math.IsInf(T, 0) {
		return 0, thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("temperature must be positive, got %g", T))
	}
	if !(V > c.B) || math.IsInf(V, 0) {
		return 0, thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("volume %g must exceed the co-volume %g", V, c.B))
	}
	return R*T/(V-c.B) - alpha(T).AAlpha/(V*V+c.Delta*V+c.Epsilon), nil
}

func checkPV(m Model, P, V float64) error {
	c := m.Coefficients()
	if !(P > 0) || math.IsInf(P, 0) {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("pressure must be positive, got %g", P))
	}
	if !(V > c.B) || math.IsInf(V, 0) {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("volume %g must exceed the co-volume %g", V, c.B))
	}
	return nil
}

func solveMetadata(P, V float64, iterations int) map[string]string {
	return map[string]string{
		"P":          fmt.Sprint(P),
		"V":          fmt.Sprint(V),
		"iterations": strconv.Itoa(iterations),
	}
}

/*
P と V から温度を求める

	閉形式がある EOS (TemperatureSolver) はそれを使い、それ以外は
	Tc/2 から dP/dT を用いた Newton 法で解く。

	Args:
		m: EOS
		P: 圧力, Pa
		V: モル体積, m3/mol

	Returns:
		温度, K
*/
func SolveT(m Model, P, V float64) (float64, error) {
	if err := checkPV(m, P, V); err != nil {
		return 0, err
	}
	if cf, ok := m.(TemperatureSolver); ok {
		if T, ok := cf.SolveTClosedForm(P, V); ok {
			return T, nil
		}
	}
	return newtonTemperature(m, P, V)
}

func newtonTemperature(m Model, P, V float64) (float64, error) {
	c := m.Coefficients()
	vb := V - c.B
	D := V*V + c.Delta*V + c.Epsilon

	T := m.Critical().Tc / 2
	for i := 0; i < maxNewtonIterations; i++ {
		terms := m.AAlpha(T)
		g := R*T/vb - terms.AAlpha/D - P
		dg := R/vb - terms.DAAlphaDT/D
		if dg == 0 || math.IsNaN(dg) || math.IsNaN(g) {
			return 0, thermoerr.WithMetadata(thermoerr.CodeNumerical, "temperature solve hit a zero slope", solveMetadata(P, V, i))
		}

		next := T - g/dg
		if next <= 0 {
			next = T / 2
		}
		if math.Abs(next-T) <= newtonTolerance*next {
			return next, nil
		}
		T = next
	}
	return 0, thermoerr.WithMetadata(thermoerr.CodeNumerical,
		fmt.Sprintf("temperature solve did not converge within %d iterations", maxNewtonIterations),
		solveMetadata(P, V, maxNewtonIterations))
}

/*
SolveTReference solves P(T, V) = P by bisection with the reference alpha
expansion. The bracket is grown upward from Tc until the residual is positive
and then downward by halving until it is negative, so the root found is the
one nearest Tc from below.
*/
func SolveTReference(m Model, P, V float64) (float64, error) {
	if err := checkPV(m, P, V); err != nil {
		return 0, err
	}
	c := m.Coefficients()
	vb := V - c.B
	D := V*V + c.Delta*V + c.Epsilon

	f := func(T float64) float64 {
		return R*T/vb - m.AAlphaReference(T).AAlpha/D - P
	}

	hi := m.Critical().Tc
	for i := 0; f(hi) < 0; i++ {
		if i == maxBracketSteps {
			return 0, thermoerr.WithMetadata(thermoerr.CodeNumerical, "no temperature bracket above Tc", solveMetadata(P, V, i))
		}
		hi *= 2
	}
	lo := hi / 2
	for i := 0; f(lo) > 0; i++ {
		if i == maxBracketSteps {
			return 0, thermoerr.WithMetadata(thermoerr.CodeNumerical, "no temperature bracket below Tc", solveMetadata(P, V, i))
		}
		hi = lo
		lo /= 2
	}
	switch {
	case f(lo) == 0:
		return lo, nil
	case f(hi) == 0:
		return hi, nil
	}

	T, ok := bisect(f, lo, hi, bisectTolerance*hi, maxBisectIterations)
	if !ok {
		return 0, thermoerr.WithMetadata(thermoerr.CodeNumerical,
			fmt.Sprintf("temperature bisection did not converge within %d iterations", maxBisectIterations),
			solveMetadata(P, V, maxBisectIterations))
	}
	return T, nil
}

// bisect halves [lo, hi] until it is narrower than 2·tol. f(lo) < 0 < f(hi)
// is required.
func bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, bool) {
	for i := 0; i < maxIter; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if fm == 0 || (hi-lo)/2 < tol {
			return mid, true
		}
		if fm < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, false
}
