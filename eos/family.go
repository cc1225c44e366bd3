// Package eos implements generalized cubic equations of state for pure
// components: the alpha functions of each family, the volume roots, the
// derivative and departure bundle, and resolution of a state from two of
// T, P, V. Every step has a fast closed-form path and a reference path.
package eos

import (
	"fmt"

	"github.com/marcosfelt/thermo/thermoerr"
)

// EOS の種類
type Family string

// EOS の種類
const (
	FamilyPR            Family = "PR"
	FamilyPR78          Family = "PR78"
	FamilyPRSV          Family = "PRSV"
	FamilyPRSV2         Family = "PRSV2"
	FamilySRK           Family = "SRK"
	FamilyVDW           Family = "VDW"
	FamilyRK            Family = "RK"
	FamilyAPISRK        Family = "APISRK"
	FamilyTWUPR         Family = "TWUPR"
	FamilyPRTranslated  Family = "PRTranslated"
	FamilySRKTranslated Family = "SRKTranslated"
)

// Families lists every supported family in a stable order.
var Families = []Family{
	FamilyPR, FamilyPR78, FamilyPRSV, FamilyPRSV2, FamilySRK, FamilyVDW,
	FamilyRK, FamilyAPISRK, FamilyTWUPR, FamilyPRTranslated, FamilySRKTranslated,
}

// ParseFamily returns the family named s.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if string(f) == s {
			return f, nil
		}
	}
	return "", thermoerr.New(thermoerr.CodeConfiguration, fmt.Sprintf("unknown EOS family %q", s))
}

/*
The acentric factor is part of the family definition.

	Returns:
		true if the family cannot be built without omega
*/
func (f Family) requiresOmega() bool {
	switch f {
	case FamilyPR, FamilyPR78, FamilyPRSV, FamilyPRSV2, FamilySRK, FamilyTWUPR,
		FamilyPRTranslated, FamilySRKTranslated:
		return true
	case FamilyVDW, FamilyRK, FamilyAPISRK:
		return false
	default:
		panic("invalid family")
	}
}

// CriticalConstants is the immutable critical-constant set of a component.
type CriticalConstants struct {
	Tc    float64 // 臨界温度, K
	Pc    float64 // 臨界圧力, Pa
	Omega float64 // 偏心因子, -
}

// Coefficients are the temperature-independent terms of
// P = RT/(V-b) - aα/(V² + δV + ε).
type Coefficients struct {
	A       float64 // Pa m6/mol2
	B       float64 // m3/mol
	Delta   float64 // m3/mol
	Epsilon float64 // m6/mol2
}

// Model is one cubic EOS family bound to a set of critical constants.
type Model interface {
	AlphaFunction
	Family() Family
	Critical() CriticalConstants
	Coefficients() Coefficients
}

// TemperatureSolver is implemented by families whose P(T, V) can be inverted
// for T without iteration. ok is false when no positive temperature exists.
type TemperatureSolver interface {
	SolveTClosedForm(P, V float64) (T float64, ok bool)
}

// cubic holds what every family shares.
type cubic struct {
	family  Family
	tc      float64
	pc      float64
	omega   float64
	a       float64
	b       float64
	delta   float64
	epsilon float64
}

func (c *cubic) Family() Family { return c.family }

func (c *cubic) Critical() CriticalConstants {
	return CriticalConstants{Tc: c.tc, Pc: c.pc, Omega: c.omega}
}

func (c *cubic) Coefficients() Coefficients {
	return Coefficients{A: c.a, B: c.b, Delta: c.delta, Epsilon: c.epsilon}
}

// denominator of the attractive term, V² + δV + ε
func (c *cubic) attractiveDenominator(V float64) float64 {
	return V*V + c.delta*V + c.epsilon
}
