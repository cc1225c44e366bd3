package eos

import (
	"fmt"
	"math"
	"strings"

	"github.com/marcosfelt/thermo/thermoerr"
)

// 相の判定結果
type Phase string

// 相の判定結果
const (
	PhaseLiquid        Phase = "l"
	PhaseGas           Phase = "g"
	PhaseTwoPhase      Phase = "l/g"
	PhaseSupercritical Phase = "supercritical"
)

// Conditions are the state inputs. A zero field is not supplied; exactly two
// must be set.
type Conditions struct {
	T float64 // 温度, K
	P float64 // 圧力, Pa
	V float64 // モル体積, m3/mol
}

func (c Conditions) validate() error {
	names := []string{"T", "P", "V"}
	values := []float64{c.T, c.P, c.V}

	var given, missing []string
	for i, v := range values {
		if v != 0 {
			given = append(given, names[i])
		} else {
			missing = append(missing, names[i])
		}
	}

	switch len(given) {
	case 2:
	case 3:
		return thermoerr.WithMetadata(thermoerr.CodeConfiguration,
			"exactly two of T, P, V are required; all three were supplied",
			map[string]string{"extra": "T, P, V"})
	default:
		return thermoerr.WithMetadata(thermoerr.CodeConfiguration,
			fmt.Sprintf("exactly two of T, P, V are required; missing %s", strings.Join(missing, ", ")),
			map[string]string{"missing": strings.Join(missing, ", ")})
	}

	for i, v := range values {
		if v != 0 && (!(v > 0) || math.IsInf(v, 0)) {
			return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("%s must be positive and finite, got %g", names[i], v))
		}
	}
	return nil
}

/*
Numerics selects the fast or reference implementation of every step of a
resolution. Each field is a pure function; Quick and Reference are the two
complete sets.
*/
type Numerics struct {
	Name        string
	Alpha       func(m AlphaFunction, T float64) AlphaTerms
	Volumes     func(T, P, b, delta, epsilon, aAlpha float64) ([3]complex128, error)
	Derivatives func(T, P, V, b, delta, epsilon, aAlpha, dAAlphaDT, d2AAlphaDT2 float64) (Derivatives, error)
	Pressure    func(m Model, T, V float64) (float64, error)
	Temperature func(m Model, P, V float64) (float64, error)
}

var Quick = Numerics{
	Name:        "quick",
	Alpha:       func(m AlphaFunction, T float64) AlphaTerms { return m.AAlpha(T) },
	Volumes:     VolumeSolutions,
	Derivatives: DerivativesAndDepartures,
	Pressure:    Pressure,
	Temperature: SolveT,
}

var Reference = Numerics{
	Name:        "reference",
	Alpha:       func(m AlphaFunction, T float64) AlphaTerms { return m.AAlphaReference(T) },
	Volumes:     VolumeSolutionsReference,
	Derivatives: DerivativesAndDeparturesReference,
	Pressure:    PressureReference,
	Temperature: SolveTReference,
}

// NumericsByName returns Quick for "quick" and Reference for "reference".
func NumericsByName(name string) (Numerics, error) {
	switch name {
	case Quick.Name:
		return Quick, nil
	case Reference.Name:
		return Reference, nil
	default:
		return Numerics{}, thermoerr.New(thermoerr.CodeConfiguration, fmt.Sprintf("unknown numerics %q", name))
	}
}

// PhaseState is everything known about one volume root.
type PhaseState struct {
	Phase Phase
	V     float64 // モル体積, m3/mol
	Z     float64 // 圧縮係数, -
	Derivatives

	Beta      float64 // isobaric expansion, 1/K
	Kappa     float64 // isothermal compressibility, 1/Pa
	CpMinusCv float64 // J/(mol K)

	VDep     float64 // m3/mol
	UDep     float64 // J/mol
	GDep     float64 // J/mol
	ADep     float64 // J/mol
	Fugacity float64 // Pa
}

// State is a fully resolved thermodynamic state. Liquid and Gas hold the
// phases that exist at (T, P); for a single root exactly one is set.
type State struct {
	Family   Family
	Critical CriticalConstants
	Coefficients
	AlphaTerms

	T     float64 // 温度, K
	P     float64 // 圧力, Pa
	V     float64 // モル体積 of the stable phase, m3/mol
	Phase Phase

	// all three volume roots; only set when V was solved for
	Roots []complex128

	Liquid *PhaseState
	Gas    *PhaseState
}

// Stable returns the phase with the lower departure Gibbs energy.
func (s *State) Stable() *PhaseState {
	switch {
	case s.Liquid == nil:
		return s.Gas
	case s.Gas == nil:
		return s.Liquid
	case s.Liquid.GDep <= s.Gas.GDep:
		return s.Liquid
	default:
		return s.Gas
	}
}

// Solve resolves the state with the Quick numerics.
func Solve(m Model, c Conditions) (*State, error) {
	return Resolve(m, c, Quick)
}

/*
状態を解く

	Args:
		m: EOS
		c: T, P, V のうち2つ
		n: Quick or Reference

	Returns:
		the solved state; on any failure nil and the error
*/
func Resolve(m Model, c Conditions, n Numerics) (*State, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	s := &State{
		Family:       m.Family(),
		Critical:     m.Critical(),
		Coefficients: m.Coefficients(),
		T:            c.T,
		P:            c.P,
		V:            c.V,
	}

	var volumes []float64
	switch {
	case c.V == 0:
		s.AlphaTerms = n.Alpha(m, s.T)
		roots, err := n.Volumes(s.T, s.P, s.B, s.Delta, s.Epsilon, s.AAlpha)
		if err != nil {
			return nil, err
		}
		s.Roots = roots[:]
		volumes = physicalRoots(roots, s.B)
		if len(volumes) == 0 {
			return nil, thermoerr.WithMetadata(thermoerr.CodeNumerical, "no physical volume root",
				map[string]string{"T": fmt.Sprint(s.T), "P": fmt.Sprint(s.P)})
		}
		if len(volumes) > 2 {
			// the middle root is mechanically unstable
			volumes = []float64{volumes[0], volumes[len(volumes)-1]}
		}

	case c.P == 0:
		P, err := n.Pressure(m, s.T, s.V)
		if err != nil {
			return nil, err
		}
		if !(P > 0) {
			return nil, thermoerr.WithMetadata(thermoerr.CodeNumerical, "computed pressure is not positive",
				map[string]string{"T": fmt.Sprint(s.T), "V": fmt.Sprint(s.V), "P": fmt.Sprint(P)})
		}
		s.P = P
		s.AlphaTerms = n.Alpha(m, s.T)
		volumes = []float64{s.V}

	default:
		T, err := n.Temperature(m, s.P, s.V)
		if err != nil {
			return nil, err
		}
		s.T = T
		s.AlphaTerms = n.Alpha(m, s.T)
		volumes = []float64{s.V}
	}

	if err := s.populate(volumes, n); err != nil {
		return nil, err
	}
	return s, nil
}

// populate fills the per-phase states: the smallest root is the liquid and
// the largest the vapor.
func (s *State) populate(volumes []float64, n Numerics) error {
	if len(volumes) == 1 {
		ps, err := s.phaseState(volumes[0], n)
		if err != nil {
			return err
		}
		if ps.PIP > 1 {
			ps.Phase = PhaseLiquid
			s.Liquid = ps
		} else {
			ps.Phase = PhaseGas
			s.Gas = ps
		}
		s.Phase = ps.Phase
		if s.T > s.Critical.Tc && s.P > s.Critical.Pc {
			s.Phase = PhaseSupercritical
		}
		s.V = ps.V
		return nil
	}

	liquid, err := s.phaseState(volumes[0], n)
	if err != nil {
		return err
	}
	gas, err := s.phaseState(volumes[1], n)
	if err != nil {
		return err
	}
	liquid.Phase = PhaseLiquid
	gas.Phase = PhaseGas
	s.Liquid, s.Gas = liquid, gas
	s.Phase = PhaseTwoPhase
	s.V = s.Stable().V
	return nil
}

func (s *State) phaseState(V float64, n Numerics) (*PhaseState, error) {
	d, err := n.Derivatives(s.T, s.P, V, s.B, s.Delta, s.Epsilon, s.AAlpha, s.DAAlphaDT, s.D2AAlphaDT2)
	if err != nil {
		return nil, err
	}

	ps := &PhaseState{
		V:           V,
		Z:           s.P * V / (R * s.T),
		Derivatives: d,
	}
	ps.Beta = d.DVDT / V
	ps.Kappa = -d.DVDP / V
	ps.CpMinusCv = -s.T * d.DPDT * d.DPDT / d.DPDV
	ps.VDep = V - R*s.T/s.P
	ps.UDep = d.HDep - s.P*ps.VDep
	ps.GDep = d.HDep - s.T*d.SDep
	ps.ADep = ps.UDep - s.T*d.SDep
	ps.Fugacity = d.Phi * s.P
	return ps, nil
}
