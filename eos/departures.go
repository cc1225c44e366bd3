package eos

import "math"

/*
引力項の積分 ∫_V^∞ dV / (V² + δV + ε)

	判別式 Δ = δ² - 4ε の符号によって
		Δ > 0: ln((w + s)/(w - s))/s, s = √Δ
		Δ < 0: 2 atan2(s, w)/s,       s = √-Δ
		Δ = 0: 2/w
	ここで w = 2V + δ。
*/
func attractiveIntegral(V, delta, epsilon float64) float64 {
	disc := delta*delta - 4*epsilon
	w := 2*V + delta
	switch {
	case disc > 0:
		s := math.Sqrt(disc)
		return math.Log1p(2*s/(w-s)) / s
	case disc < 0:
		s := math.Sqrt(-disc)
		return 2 * math.Atan2(s, w) / s
	default:
		return 2 / w
	}
}
