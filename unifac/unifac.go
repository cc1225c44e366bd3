// Package unifac implements the original UNIFAC group-contribution model for
// liquid-phase activity coefficients.
package unifac

import (
	"fmt"
	"math"
	"sort"

	"github.com/marcosfelt/thermo/eos"
	"github.com/marcosfelt/thermo/thermoerr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Groups is one molecule's decomposition: subgroup id to count.
type Groups map[int]int

// mole fractions must sum to one within this
const fractionTolerance = 1e-4

// Model holds the group parameters of a fixed set of components.
type Model struct {
	r []float64 // per component
	q []float64 // per component

	groups []int      // subgroup ids, ascending
	groupQ []float64  // per group
	nu     *mat.Dense // component × group counts
	a      *mat.Dense // group × group interaction a_mn, K
}

// New prepares a model for the given components.
func New(molecules []Groups) (*Model, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return nil, err
	}
	return newModel(reg, molecules)
}

func newModel(reg *registry, molecules []Groups) (*Model, error) {
	if len(molecules) == 0 {
		return nil, thermoerr.New(thermoerr.CodeConfiguration, "at least one component is required")
	}

	index := map[int]int{}
	for i, groups := range molecules {
		if len(groups) == 0 {
			return nil, thermoerr.New(thermoerr.CodeConfiguration, fmt.Sprintf("component %d has no groups", i))
		}
		for id, count := range groups {
			if count <= 0 {
				return nil, thermoerr.New(thermoerr.CodeConfiguration,
					fmt.Sprintf("component %d: subgroup %d has count %d", i, id, count))
			}
			index[id] = 0
		}
	}

	m := &Model{}
	for id := range index {
		m.groups = append(m.groups, id)
	}
	sort.Ints(m.groups)

	subgroups := make([]Subgroup, len(m.groups))
	for k, id := range m.groups {
		sg, err := reg.subgroup(id)
		if err != nil {
			return nil, err
		}
		subgroups[k] = sg
		index[id] = k
		m.groupQ = append(m.groupQ, sg.Q)
	}

	G := len(m.groups)
	m.a = mat.NewDense(G, G, nil)
	for k, sk := range subgroups {
		for l, sl := range subgroups {
			a, err := reg.interaction(sk.MainGroup, sl.MainGroup)
			if err != nil {
				return nil, err
			}
			m.a.Set(k, l, a)
		}
	}

	m.nu = mat.NewDense(len(molecules), G, nil)
	for i, groups := range molecules {
		var r, q float64
		for id, count := range groups {
			sg := subgroups[index[id]]
			r += float64(count) * sg.R
			q += float64(count) * sg.Q
			m.nu.Set(i, index[id], float64(count))
		}
		m.r = append(m.r, r)
		m.q = append(m.q, q)
	}
	return m, nil
}

// Components is the number of components of the model.
func (m *Model) Components() int {
	return len(m.r)
}

func (m *Model) checkFractions(x []float64) error {
	if len(x) != len(m.r) {
		return thermoerr.New(thermoerr.CodeConfiguration,
			fmt.Sprintf("expected %d mole fractions, got %d", len(m.r), len(x)))
	}
	for i, xi := range x {
		if !(xi >= 0) || xi > 1 {
			return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("mole fraction %d out of range: %g", i, xi))
		}
	}
	if sum := floats.Sum(x); math.Abs(sum-1) > fractionTolerance {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("mole fractions sum to %g", sum))
	}
	return nil
}

func checkTemperature(T float64) error {
	if !(T > 0) || math.IsInf(T, 0) {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("temperature must be positive, got %g", T))
	}
	return nil
}

/*
組み合わせ項

	Args:
		x: モル分率, -

	Returns:
		ln γ^C of every component
*/
func (m *Model) LnGammasCombinatorial(x []float64) ([]float64, error) {
	if err := m.checkFractions(x); err != nil {
		return nil, err
	}
	rSum := floats.Dot(x, m.r)
	qSum := floats.Dot(x, m.q)

	out := make([]float64, len(x))
	for i := range out {
		V := m.r[i] / rSum
		F := m.q[i] / qSum
		out[i] = 1 - V + math.Log(V) - 5*m.q[i]*(1-V/F+math.Log(V/F))
	}
	return out, nil
}

// LnGammasResidual is the residual (group interaction) part of ln γ.
func (m *Model) LnGammasResidual(T float64, x []float64) ([]float64, error) {
	if err := checkTemperature(T); err != nil {
		return nil, err
	}
	if err := m.checkFractions(x); err != nil {
		return nil, err
	}

	G := len(m.groups)
	psi := mat.NewDense(G, G, nil)
	psi.Apply(func(_, _ int, a float64) float64 { return math.Exp(-a / T) }, m.a)

	// group counts of the mixture
	var mixture mat.VecDense
	mixture.MulVec(m.nu.T(), mat.NewVecDense(len(x), x))
	lnGamma := m.lnGroupGammas(psi, mixture.RawVector().Data)

	out := make([]float64, len(x))
	for i := range out {
		counts := mat.Row(nil, i, m.nu)
		pure := m.lnGroupGammas(psi, counts)
		floats.Sub(pure, lnGamma)
		out[i] = -floats.Dot(counts, pure)
	}
	return out, nil
}

// lnGroupGammas is ln Γ_k of every group for a solution with the given
// (unnormalised) group counts.
func (m *Model) lnGroupGammas(psi *mat.Dense, counts []float64) []float64 {
	theta := make([]float64, len(counts))
	floats.MulTo(theta, m.groupQ, counts)
	floats.Scale(1/floats.Sum(theta), theta)

	// s_k = Σ_m θ_m Ψ_mk
	var s mat.VecDense
	s.MulVec(psi.T(), mat.NewVecDense(len(theta), theta))

	ratio := make([]float64, len(theta))
	floats.DivTo(ratio, theta, s.RawVector().Data)
	var u mat.VecDense
	u.MulVec(psi, mat.NewVecDense(len(ratio), ratio))

	out := make([]float64, len(theta))
	for k := range out {
		out[k] = m.groupQ[k] * (1 - math.Log(s.AtVec(k)) - u.AtVec(k))
	}
	return out
}

/*
活量係数

	Args:
		T: 温度, K
		x: モル分率, -

	Returns:
		γ of every component
*/
func (m *Model) Gammas(T float64, x []float64) ([]float64, error) {
	combinatorial, err := m.LnGammasCombinatorial(x)
	if err != nil {
		return nil, err
	}
	residual, err := m.LnGammasResidual(T, x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	floats.AddTo(out, combinatorial, residual)
	for i, v := range out {
		out[i] = math.Exp(v)
	}
	return out, nil
}

// GibbsExcess is the molar excess Gibbs energy RT Σ x_i ln γ_i, J/mol.
func (m *Model) GibbsExcess(T float64, x []float64) (float64, error) {
	gammas, err := m.Gammas(T, x)
	if err != nil {
		return 0, err
	}
	var s float64
	for i, g := range gammas {
		if x[i] > 0 {
			s += x[i] * math.Log(g)
		}
	}
	return eos.R * T * s, nil
}
