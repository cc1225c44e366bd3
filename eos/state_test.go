package eos

import (
	"fmt"
	"math"
	"testing"

	"github.com/marcosfelt/thermo/thermoerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveHexaneLiquid(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	s, err := Solve(m, Conditions{T: 299, P: 1e6})
	require.NoError(t, err)

	assert.Equal(t, PhaseLiquid, s.Phase)
	require.NotNil(t, s.Liquid)
	assert.Nil(t, s.Gas)
	assert.Len(t, s.Roots, 3)

	l := s.Liquid
	assert.InEpsilon(t, 1.3022208e-4, l.V, 1e-6)
	assert.InEpsilon(t, 25.165, l.CvDep, 1e-4)
	assert.InEpsilon(t, 44.506, l.CpDep, 1e-4)
	assert.InEpsilon(t, -31134.74, l.HDep, 1e-6)
	assert.InEpsilon(t, -72.476, l.SDep, 1e-4)
	assert.InEpsilon(t, 0.00013022208100139953, s.V, 1e-12)
	assert.InEpsilon(t, 3.801259426590328, s.AAlpha, 1e-12)
}

func TestSolvePhaseTagging(t *testing.T) {
	tests := []struct {
		name   string
		family Family
		T, P   float64
		phase  Phase
		V      float64
	}{
		{"PR vapor", FamilyPR, 499, 1e5, PhaseGas, 0.040936188574487914},
		{"RK vapor", FamilyRK, 499, 1e5, PhaseGas, 0.040994393273857434},
		{"PR liquid", FamilyPR, 299, 1e6, PhaseLiquid, 0.00013022208100139953},
		{"PR supercritical", FamilyPR, 600, 5e6, PhaseSupercritical, 0.0006498241436029},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t, tt.family, hexaneTc, hexanePc, Omega(hexaneOmega))
			s, err := Solve(m, Conditions{T: tt.T, P: tt.P})
			require.NoError(t, err)
			assert.Equal(t, tt.phase, s.Phase)
			assert.InEpsilon(t, tt.V, s.V, 1e-10)

			// a single root is stored once, in the field its PIP selects
			require.NotNil(t, s.Stable())
			assert.True(t, (s.Liquid == nil) != (s.Gas == nil))
			assert.Equal(t, s.V, s.Stable().V)
			switch tt.phase {
			case PhaseGas:
				assert.Same(t, s.Gas, s.Stable())
			case PhaseLiquid:
				assert.Same(t, s.Liquid, s.Stable())
			}
		})
	}
}

func TestSolveTwoPhaseRoots(t *testing.T) {
	m := mustNew(t, FamilyVDW, hexaneTc, hexanePc)
	s, err := Solve(m, Conditions{T: 450, P: 2e6})
	require.NoError(t, err)

	assert.Equal(t, PhaseTwoPhase, s.Phase)
	require.NotNil(t, s.Liquid)
	require.NotNil(t, s.Gas)
	assert.Equal(t, PhaseLiquid, s.Liquid.Phase)
	assert.Equal(t, PhaseGas, s.Gas.Phase)

	// smallest root is the liquid, largest the vapor; the middle one is dropped
	assert.InEpsilon(t, 0.00030377255441630546, s.Liquid.V, 1e-10)
	assert.InEpsilon(t, 0.0010828939081699831, s.Gas.V, 1e-10)
	assert.InEpsilon(t, 0.7033792793058485, s.Liquid.Phi, 1e-9)
	assert.InEpsilon(t, 0.732019348414198, s.Gas.Phi, 1e-9)

	// the liquid has the lower departure Gibbs energy here
	assert.Same(t, s.Liquid, s.Stable())
	assert.Equal(t, s.Liquid.V, s.V)
}

func TestSolveRequiresExactlyTwoInputs(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	tests := []struct {
		name string
		c    Conditions
		msg  string
	}{
		{"only T", Conditions{T: 299}, "missing P, V"},
		{"only V", Conditions{V: 1e-3}, "missing T, P"},
		{"none", Conditions{}, "missing T, P, V"},
		{"all three", Conditions{T: 299, P: 1e6, V: 1e-3}, "all three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []Numerics{Quick, Reference} {
				s, err := Resolve(m, tt.c, n)
				assert.Nil(t, s)
				assert.ErrorIs(t, err, thermoerr.ErrConfiguration)
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestSolveFailuresMatchAcrossNumerics(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	b := m.Coefficients().B
	tests := []struct {
		name string
		c    Conditions
		want error
	}{
		{"negative T", Conditions{T: -299, P: 1e6}, thermoerr.ErrDomain},
		{"negative P", Conditions{T: 299, P: -1e6}, thermoerr.ErrDomain},
		{"NaN V", Conditions{T: 299, V: math.NaN()}, thermoerr.ErrDomain},
		{"V below co-volume", Conditions{T: 299, V: b / 2}, thermoerr.ErrDomain},
		{"V below co-volume with P", Conditions{P: 1e6, V: b / 2}, thermoerr.ErrDomain},
		// deep in the liquid at low T the pressure goes negative
		{"tension", Conditions{T: 150, V: 1.2e-4}, thermoerr.ErrNumerical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quick, errQuick := Resolve(m, tt.c, Quick)
			ref, errRef := Resolve(m, tt.c, Reference)
			assert.Nil(t, quick)
			assert.Nil(t, ref)
			assert.ErrorIs(t, errQuick, tt.want)
			assert.ErrorIs(t, errRef, tt.want)
			assert.Equal(t, thermoerr.CodeOf(errQuick), thermoerr.CodeOf(errRef))
		})
	}
}

// At (Tc, Pc) the volume cubic has a triple root and dP/dV vanishes there.
func TestResolveCriticalPointMatchesAcrossNumerics(t *testing.T) {
	for _, fc := range allFamilies(t) {
		t.Run(fc.name, func(t *testing.T) {
			crit := fc.model.Critical()
			c := Conditions{T: crit.Tc, P: crit.Pc}
			quick, errQuick := Resolve(fc.model, c, Quick)
			ref, errRef := Resolve(fc.model, c, Reference)
			assert.Nil(t, quick)
			assert.Nil(t, ref)
			assert.ErrorIs(t, errQuick, thermoerr.ErrNumerical)
			assert.ErrorIs(t, errRef, thermoerr.ErrNumerical)
			assert.ErrorContains(t, errQuick, "dP/dV vanishes")
			assert.ErrorContains(t, errRef, "dP/dV vanishes")
		})
	}
}

func TestSolveMissingFamilyParameters(t *testing.T) {
	_, err := New(FamilyAPISRK, hexaneTc, hexanePc)
	assert.ErrorIs(t, err, thermoerr.ErrConfiguration)

	_, err = New(FamilyPR, hexaneTc, hexanePc)
	assert.ErrorIs(t, err, thermoerr.ErrConfiguration)

	_, err = New(Family("BWR"), hexaneTc, hexanePc, Omega(hexaneOmega))
	assert.ErrorIs(t, err, thermoerr.ErrConfiguration)

	_, err = New(FamilyPRSV, hexaneTc, hexanePc, Omega(hexaneOmega), Kappa1TrLimit(0))
	assert.ErrorIs(t, err, thermoerr.ErrConfiguration)

	_, err = New(FamilyVDW, -1, hexanePc)
	assert.ErrorIs(t, err, thermoerr.ErrDomain)

	// VDW and RK need only the critical point
	_, err = New(FamilyRK, hexaneTc, hexanePc)
	assert.NoError(t, err)
}

func TestResolveQuickMatchesReference(t *testing.T) {
	for _, fc := range allFamilies(t) {
		t.Run(fc.name, func(t *testing.T) {
			for _, tp := range [][2]float64{{299, 1e6}, {499, 1e5}, {600, 5e6}} {
				quick, err := Resolve(fc.model, Conditions{T: tp[0], P: tp[1]}, Quick)
				require.NoError(t, err)
				ref, err := Resolve(fc.model, Conditions{T: tp[0], P: tp[1]}, Reference)
				require.NoError(t, err)

				assert.Equal(t, quick.Phase, ref.Phase)
				assert.InEpsilon(t, quick.V, ref.V, 1e-10)
				label := fmt.Sprintf("T=%g P=%g", tp[0], tp[1])
				assertAllClose(t, derivativeValues(quick.Stable().Derivatives), derivativeValues(ref.Stable().Derivatives), 1e-10, label)
			}
		})
	}
}

// (T, P) -> V, then (T, V) -> P and (P, V) -> T reproduce the inputs.
func TestResolveRoundTrip(t *testing.T) {
	for _, fc := range allFamilies(t) {
		t.Run(fc.name, func(t *testing.T) {
			for _, n := range []Numerics{Quick, Reference} {
				for _, tp := range [][2]float64{{299, 1e6}, {499, 1e5}, {900, 1e6}} {
					T, P := tp[0], tp[1]
					s, err := Resolve(fc.model, Conditions{T: T, P: P}, n)
					require.NoError(t, err)

					fromTV, err := Resolve(fc.model, Conditions{T: T, V: s.V}, n)
					require.NoError(t, err)
					assert.InEpsilon(t, P, fromTV.P, 1e-6, "%s T=%g P=%g", n.Name, T, P)

					fromPV, err := Resolve(fc.model, Conditions{P: P, V: s.V}, n)
					require.NoError(t, err)
					assert.InEpsilon(t, T, fromPV.T, 1e-6, "%s T=%g P=%g", n.Name, T, P)
				}
			}
		})
	}
}

func TestPhaseStateSupplementaryProperties(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	s, err := Solve(m, Conditions{T: 299, P: 1e6})
	require.NoError(t, err)
	l := s.Liquid
	T, P := s.T, s.P

	assert.InEpsilon(t, P*l.V/(R*T), l.Z, 1e-14)
	assert.InEpsilon(t, l.DVDT/l.V, l.Beta, 1e-14)
	assert.InEpsilon(t, -l.DVDP/l.V, l.Kappa, 1e-14)
	assert.InEpsilon(t, l.CpDep-l.CvDep+R, l.CpMinusCv, 1e-10)
	assert.InEpsilon(t, l.V-R*T/P, l.VDep, 1e-14)
	assert.InEpsilon(t, l.HDep-T*l.SDep, l.GDep, 1e-14)
	assert.InEpsilon(t, l.UDep-T*l.SDep, l.ADep, 1e-14)
	assert.InEpsilon(t, l.Phi*P, l.Fugacity, 1e-14)
	assert.InEpsilon(t, l.GDep/(R*T), math.Log(l.Phi), 1e-12)
}

func TestNumericsByName(t *testing.T) {
	n, err := NumericsByName("quick")
	require.NoError(t, err)
	assert.Equal(t, "quick", n.Name)

	n, err = NumericsByName("reference")
	require.NoError(t, err)
	assert.Equal(t, "reference", n.Name)

	_, err = NumericsByName("fast")
	assert.ErrorIs(t, err, thermoerr.ErrConfiguration)
}
