package eos

import (
	"fmt"
	"math"

	"github.com/marcosfelt/thermo/thermoerr"
)

// Option sets a family-specific parameter for New.
type Option func(*parameters)

type parameters struct {
	omega    float64
	hasOmega bool

	kappa1, kappa2, kappa3 float64
	limit                  kappa1Limit

	s1    float64
	hasS1 bool
	s2    float64

	shift    float64
	hasShift bool
	zRA      float64
	hasZRA   bool
}

// Omega sets the acentric factor.
func Omega(omega float64) Option {
	return func(p *parameters) {
		p.omega = omega
		p.hasOmega = true
	}
}

// Kappa1 sets the PRSV/PRSV2 κ1 fit parameter.
func Kappa1(k float64) Option { return func(p *parameters) { p.kappa1 = k } }

// Kappa2 sets the PRSV2 κ2 fit parameter.
func Kappa2(k float64) Option { return func(p *parameters) { p.kappa2 = k } }

// Kappa3 sets the PRSV2 κ3 fit parameter.
func Kappa3(k float64) Option { return func(p *parameters) { p.kappa3 = k } }

// Kappa1TrLimit drops the κ1 (and κ2, κ3) correction above the reduced
// temperature cutoff, leaving κ = κ0. A cutoff of 1 confines the correction to
// subcritical temperatures; 0.7 reproduces the older PRSV tables.
func Kappa1TrLimit(cutoff float64) Option {
	return func(p *parameters) {
		p.limit = kappa1Limit{enabled: true, cutoff: cutoff}
	}
}

// S1 sets the API-SRK S1 parameter. Without it S1 is estimated from omega.
func S1(s float64) Option {
	return func(p *parameters) {
		p.s1 = s
		p.hasS1 = true
	}
}

// S2 sets the API-SRK S2 parameter, default 0.
func S2(s float64) Option { return func(p *parameters) { p.s2 = s } }

// VolumeShift sets the Peneloux volume translation c, m3/mol.
func VolumeShift(c float64) Option {
	return func(p *parameters) {
		p.shift = c
		p.hasShift = true
	}
}

// RackettZ estimates the Peneloux volume translation from the Rackett
// compressibility Z_RA when no explicit shift is given.
func RackettZ(z float64) Option {
	return func(p *parameters) {
		p.zRA = z
		p.hasZRA = true
	}
}

/*
EOS を構築する

	Args:
		family: EOS の種類
		Tc: 臨界温度, K
		Pc: 臨界圧力, Pa
		opts: family-specific parameters

	Returns:
		the model, a Configuration error for missing parameters or a Domain
		error for non-positive critical constants
*/
func New(family Family, Tc, Pc float64, opts ...Option) (Model, error) {
	if !(Tc > 0) || math.IsInf(Tc, 0) {
		return nil, thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("critical temperature must be positive, got %g", Tc))
	}
	if !(Pc > 0) || math.IsInf(Pc, 0) {
		return nil, thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("critical pressure must be positive, got %g", Pc))
	}

	var p parameters
	for _, opt := range opts {
		opt(&p)
	}

	if _, err := ParseFamily(string(family)); err != nil {
		return nil, err
	}
	if family.requiresOmega() && !p.hasOmega {
		return nil, thermoerr.New(thermoerr.CodeConfiguration, fmt.Sprintf("%s requires omega", family))
	}
	if p.limit.enabled && !(p.limit.cutoff > 0) {
		return nil, thermoerr.New(thermoerr.CodeConfiguration, fmt.Sprintf("kappa1 Tr cutoff must be positive, got %g", p.limit.cutoff))
	}

	switch family {
	case FamilyPR:
		return newPR(Tc, Pc, p.omega), nil
	case FamilyPR78:
		return newPR78(Tc, Pc, p.omega), nil
	case FamilyPRSV:
		return newPRSV(Tc, Pc, p.omega, p.kappa1, p.limit), nil
	case FamilyPRSV2:
		return newPRSV2(Tc, Pc, p.omega, p.kappa1, p.kappa2, p.kappa3, p.limit), nil
	case FamilySRK:
		return newSRK(Tc, Pc, p.omega), nil
	case FamilyVDW:
		return newVDW(Tc, Pc), nil
	case FamilyRK:
		return newRK(Tc, Pc), nil
	case FamilyAPISRK:
		if !p.hasOmega && !p.hasS1 {
			return nil, thermoerr.New(thermoerr.CodeConfiguration, "APISRK requires omega or S1")
		}
		return newAPISRK(Tc, Pc, p), nil
	case FamilyTWUPR:
		return newTWUPR(Tc, Pc, p.omega), nil
	case FamilyPRTranslated:
		return newPRTranslated(Tc, Pc, p.omega, p.volumeShift(Tc, Pc)), nil
	case FamilySRKTranslated:
		return newSRKTranslated(Tc, Pc, p.omega, p.volumeShift(Tc, Pc)), nil
	default:
		panic("invalid family")
	}
}

// Peneloux: c = 0.40768 (0.29441 - Z_RA) R Tc / Pc
func (p *parameters) volumeShift(Tc, Pc float64) float64 {
	switch {
	case p.hasShift:
		return p.shift
	case p.hasZRA:
		return 0.40768 * (0.29441 - p.zRA) * R * Tc / Pc
	default:
		return 0
	}
}
