package eos

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"sort"

	"github.com/marcosfelt/thermo/thermoerr"
	"gonum.org/v1/gonum/mat"
)

/*
V³ + c2 V² + c1 V + c0 = 0 の係数

	P = RT/(V-b) - aα/(V² + δV + ε) を V について整理したもの

	Args:
		T: 温度, K
		P: 圧力, Pa
		b, delta, epsilon: EOS の係数
		aAlpha: a·α, Pa m6/mol2
*/
func volumePolynomial(T, P, b, delta, epsilon, aAlpha float64) (c2, c1, c0 float64) {
	RTP := R * T / P
	c2 = delta - b - RTP
	c1 = epsilon - b*delta - RTP*delta + aAlpha/P
	c0 = -(b*epsilon + RTP*epsilon + aAlpha*b/P)
	return c2, c1, c0
}

func checkTP(T, P float64) error {
	if !(T > 0) || math.IsInf(T, 0) {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("temperature must be positive, got %g", T))
	}
	if !(P > 0) || math.IsInf(P, 0) {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("pressure must be positive, got %g", P))
	}
	return nil
}

// VolumeSolutions returns the three roots of the volume cubic in canonical
// order: real roots ascending, then the complex pair with positive imaginary
// part first. Depressed-cubic closed form.
func VolumeSolutions(T, P, b, delta, epsilon, aAlpha float64) ([3]complex128, error) {
	if err := checkTP(T, P); err != nil {
		return [3]complex128{}, err
	}
	return cubicRoots(volumePolynomial(T, P, b, delta, epsilon, aAlpha)), nil
}

/*
三次方程式 x³ + c2 x² + c1 x + c0 = 0 の解

	x = t - c2/3 として t³ + p t + q = 0 に変形し、判別式の符号で
	Cardano の公式 (実根ひとつ) と三角関数解 (実根三つ) を使い分ける。
*/
func cubicRoots(c2, c1, c0 float64) [3]complex128 {
	shift := -c2 / 3
	p := c1 - c2*c2/3
	q := 2*c2*c2*c2/27 - c2*c1/3 + c0
	disc := q*q/4 + p*p*p/27

	var roots [3]complex128
	if disc > 0 {
		// u³ + v³ = -q, uv = -p/3; take the larger |u³| to avoid cancellation
		w := -q / 2
		if w >= 0 {
			w += math.Sqrt(disc)
		} else {
			w -= math.Sqrt(disc)
		}
		u := math.Cbrt(w)
		v := 0.0
		if u != 0 {
			v = -p / (3 * u)
		}
		re := -(u+v)/2 + shift
		im := math.Sqrt(3) / 2 * math.Abs(u-v)
		roots = [3]complex128{complex(u+v+shift, 0), complex(re, im), complex(re, -im)}
	} else if p == 0 {
		// triple root
		roots = [3]complex128{complex(shift, 0), complex(shift, 0), complex(shift, 0)}
	} else {
		m := 2 * math.Sqrt(-p/3)
		arg := 3 * q / (p * m)
		arg = math.Max(-1, math.Min(1, arg))
		theta := math.Acos(arg) / 3
		for k := 0; k < 3; k++ {
			roots[k] = complex(m*math.Cos(theta-2*math.Pi*float64(k)/3)+shift, 0)
		}
	}
	return canonicalRoots(roots)
}

// VolumeSolutionsReference solves the same cubic with the general complex
// cubic formula, independent of the depressed form.
func VolumeSolutionsReference(T, P, b, delta, epsilon, aAlpha float64) ([3]complex128, error) {
	if err := checkTP(T, P); err != nil {
		return [3]complex128{}, err
	}
	c2, c1, c0 := volumePolynomial(T, P, b, delta, epsilon, aAlpha)

	d0 := complex(c2*c2-3*c1, 0)
	d1 := complex(2*c2*c2*c2-9*c2*c1+27*c0, 0)
	sq := cmplx.Sqrt(d1*d1 - 4*d0*d0*d0)

	// pick the sign that keeps |C| away from zero
	C := cmplx.Pow((d1+sq)/2, 1.0/3)
	if alt := cmplx.Pow((d1-sq)/2, 1.0/3); cmplx.Abs(alt) > cmplx.Abs(C) {
		C = alt
	}

	var roots [3]complex128
	if C == 0 {
		for k := range roots {
			roots[k] = complex(-c2/3, 0)
		}
		return canonicalRoots(roots), nil
	}
	xi := complex(-0.5, math.Sqrt(3)/2)
	zk := complex(1, 0)
	for k := range roots {
		ck := zk * C
		roots[k] = -(complex(c2, 0) + ck + d0/ck) / 3
		zk *= xi
	}
	return canonicalRoots(roots), nil
}

// VolumeSolutionsEigen returns the eigenvalues of the companion matrix of the
// volume cubic. It is not a Numerics path; it is kept as an independent
// cross-check of VolumeSolutions and VolumeSolutionsReference.
func VolumeSolutionsEigen(T, P, b, delta, epsilon, aAlpha float64) ([3]complex128, error) {
	if err := checkTP(T, P); err != nil {
		return [3]complex128{}, err
	}
	c2, c1, c0 := volumePolynomial(T, P, b, delta, epsilon, aAlpha)

	companion := mat.NewDense(3, 3, []float64{
		-c2, -c1, -c0,
		1, 0, 0,
		0, 1, 0,
	})
	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return [3]complex128{}, thermoerr.WithMetadata(thermoerr.CodeNumerical, "eigen decomposition of the volume cubic failed",
			map[string]string{"T": fmt.Sprint(T), "P": fmt.Sprint(P)})
	}
	values := eig.Values(nil)

	var roots [3]complex128
	copy(roots[:], values)
	return canonicalRoots(roots), nil
}

/*
canonicalRoots drops round-off imaginary parts, collapses multiple roots and
orders the roots: real roots ascending, then the root with positive imaginary
part, then its conjugate.
*/
func canonicalRoots(roots [3]complex128) [3]complex128 {
	roots = collapseMultipleRoots(roots)
	for i, r := range roots {
		if math.Abs(imag(r)) <= imagTolerance*cmplx.Abs(r) {
			roots[i] = complex(real(r), 0)
		}
	}
	s := roots[:]
	sort.SliceStable(s, func(i, j int) bool {
		ri, rj := imag(s[i]) == 0, imag(s[j]) == 0
		switch {
		case ri && rj:
			return real(s[i]) < real(s[j])
		case ri != rj:
			return ri
		default:
			return imag(s[i]) > imag(s[j])
		}
	})
	return roots
}

/*
重根をまとめる

	A root of multiplicity k is only determined to about eps^(1/k) relative,
	so the closed form, complex and eigen solvers scatter it differently.
	Three roots within tripleRootTolerance of their mean become that mean;
	otherwise two roots within doubleRootTolerance of each other become one
	real double root.
*/
func collapseMultipleRoots(roots [3]complex128) [3]complex128 {
	mean := (roots[0] + roots[1] + roots[2]) / 3
	var spread float64
	for _, r := range roots {
		spread = math.Max(spread, cmplx.Abs(r-mean))
	}
	if spread <= tripleRootTolerance*cmplx.Abs(mean) {
		m := complex(real(mean), 0)
		return [3]complex128{m, m, m}
	}

	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			pair := (roots[i] + roots[j]) / 2
			if cmplx.Abs(roots[i]-roots[j]) <= doubleRootTolerance*cmplx.Abs(pair) {
				// a real pair or a conjugate pair; either way the root is real
				roots[i] = complex(real(pair), 0)
				roots[j] = roots[i]
			}
		}
	}
	return roots
}

// physicalRoots returns the distinct real roots above the co-volume,
// ascending.
func physicalRoots(roots [3]complex128, b float64) []float64 {
	var vs []float64
	for _, r := range roots {
		if imag(r) == 0 && real(r) > b && !math.IsInf(real(r), 0) {
			vs = append(vs, real(r))
		}
	}
	sort.Float64s(vs)
	return slices.Compact(vs)
}
