package eos

import (
	"fmt"
	"math"
	"testing"

	"github.com/marcosfelt/thermo/thermoerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"
)

type bundleFixture struct {
	V                 float64
	first, second     []float64
	mixed, departures []float64
	cpDep, phi        float64
}

func derivativesAt(t *testing.T, m Model, T, P, V float64, reference bool) Derivatives {
	t.Helper()
	c := m.Coefficients()
	var (
		d   Derivatives
		err error
	)
	if reference {
		a := m.AAlphaReference(T)
		d, err = DerivativesAndDeparturesReference(T, P, V, c.B, c.Delta, c.Epsilon, a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2)
	} else {
		a := m.AAlpha(T)
		d, err = DerivativesAndDepartures(T, P, V, c.B, c.Delta, c.Epsilon, a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2)
	}
	require.NoError(t, err)
	return d
}

func TestDerivativesKnownBundles(t *testing.T) {
	w := Omega(hexaneOmega)
	tests := []struct {
		name   string
		family Family
		opts   []Option
		want   bundleFixture
	}{
		{"PR", FamilyPR, []Option{w}, bundleFixture{
			V:          0.00013022208100139953,
			first:      []float64{582232.4757941157, -3665180614672.2373, 1.588550570914177e-07, -2.7283785033590384e-13, 6295046.681608136, 1.717527004374129e-06},
			second:     []float64{-506.2012523140166, 4.482165856521269e+17, 1.1688513685432287e-09, 9.103361314057314e-21, -291578941282.6521, 2.564684443970742e-15},
			mixed:      []float64{-3.772507759880179e-15, -20523303691.115646, 0.06994170496262654},
			departures: []float64{-31134.740290463407, -72.47559475426019, 25.165377505266793},
			cpDep:      44.50559908690951,
			phi:        0.022212524527244357,
		}},
		{"SRK", FamilySRK, []Option{w}, bundleFixture{
			V:          0.0001468210275903214,
			first:      []float64{507071.3781579379, -2693849768979.71, 1.8823298314441274e-07, -3.7121594957344187e-13, 5312565.222603936, 1.9721089437797638e-06},
			second:     []float64{-495.52542996816965, 2.685153659083243e+17, 1.3462639881891542e-09, 1.3735644012109928e-20, -201856646370.5175, 3.800656805086779e-15},
			mixed:      []float64{-4.991347301210646e-15, -14322106590.421803, 0.06594013142212318},
			departures: []float64{-31754.65309653549, -74.37324683595179, 28.936520816725665},
			cpDep:      49.160880911893024,
			phi:        0.02174822767621337,
		}},
		{"RK", FamilyRK, nil, bundleFixture{
			V:          0.00015189341729751865,
			first:      []float64{400451.9103658808, -1773163557098.2456, 2.258403680601321e-07, -5.63963767469079e-13, 4427906.350797926, 2.49717874759626e-06},
			second:     []float64{-664.0592454189432, 1.5385265309755005e+17, 1.5035170900333218e-09, 2.759679192734741e-20, -130527989946.59952, 1.0340837610012813e-14},
			mixed:      []float64{-7.870472890849004e-15, -10000515150.46239, 0.08069822580205277},
			departures: []float64{-26160.833620674082, -63.01311649400543, 39.8439858825612},
			cpDep:      58.57054992395785,
			phi:        0.052632270169019224,
		}},
		{"APISRK", FamilyAPISRK, []Option{w}, bundleFixture{
			V:          0.00014681823858766455,
			first:      []float64{507160.19725861016, -2694519535687.8096, 1.8821915764257067e-07, -3.7112367780430196e-13, 5312955.453232907, 1.9717635678142185e-06},
			second:     []float64{-495.7033432051597, 2.686049371238787e+17, 1.3462136329121424e-09, 1.3729982416974442e-20, -201893579486.30624, 3.80002419401769e-15},
			mixed:      []float64{-4.990227751881803e-15, -14325368140.50364, 0.06593414440492529},
			departures: []float64{-31759.397282361704, -74.38420560550391, 28.946472091343608},
			cpDep:      49.17373456158243,
		}},
		{"TWUPR", FamilyTWUPR, []Option{w}, bundleFixture{
			V:          0.0001301754975832377,
			first:      []float64{592877.7698667891, -3683686154532.3066, 1.6094687359218388e-07, -2.7146720921640605e-13, 6213230.351611896, 1.6866883037707508e-06},
			second:     []float64{-708.101408196832, 4.512488462413035e+17, 1.168546207434993e-09, 9.027515426758444e-21, -280283966933.572, 3.397816790678971e-15},
			mixed:      []float64{-3.82370615408822e-15, -20741143317.758797, 0.07152333089484428},
			departures: []float64{-31652.726391608117, -74.1128253091799, 35.189125483239366},
			cpDep:      55.40579090446679,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t, tt.family, hexaneTc, hexanePc, tt.opts...)
			for _, reference := range []bool{false, true} {
				label := fmt.Sprintf("reference=%t", reference)
				d := derivativesAt(t, m, 299, 1e6, tt.want.V, reference)
				first, second, mixed, dep := d.First(), d.Second(), d.Mixed(), d.Departures()
				assertAllClose(t, tt.want.first, first[:], 1e-9, label+" first")
				assertAllClose(t, tt.want.second, second[:], 1e-9, label+" second")
				assertAllClose(t, tt.want.mixed, mixed[:], 1e-9, label+" mixed")
				assertAllClose(t, tt.want.departures, dep[:], 1e-9, label+" departures")
				assertClose(t, tt.want.cpDep, d.CpDep, 1e-9, label+" Cp_dep")
				if tt.want.phi != 0 {
					assertClose(t, tt.want.phi, d.Phi, 1e-9, label+" phi")
				}
			}
		})
	}
}

// Values from a computer-algebra differentiation of the Peng-Robinson
// equation at hexane, T = 299 K, V = 1.3022208100139953e-4 m3/mol.
func TestDerivativesMatchSymbolicPR(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	for _, reference := range []bool{false, true} {
		d := derivativesAt(t, m, 299, 1e6, 0.00013022208100139953, reference)
		label := fmt.Sprintf("reference=%t", reference)
		assert.InEpsilon(t, -506.20125231401374, d.D2PDT2, 1e-8, label)
		assert.InEpsilon(t, 4.482165856520912834998e+17, d.D2PDV2, 1e-8, label)
		assert.InEpsilon(t, 1.16885136854333385e-9, d.D2VDT2, 1e-8, label)
		assert.InEpsilon(t, 9.10336131405833680e-21, d.D2VDP2, 1e-8, label)
		assert.InEpsilon(t, 2.564684443971313e-15, d.D2TDP2, 1e-8, label)
		assert.InEpsilon(t, -291578941281.8895, d.D2TDV2, 1e-8, label)
		assert.InEpsilon(t, 0.0699417049626260466429, d.D2TDPDV, 1e-8, label)
		assert.InEpsilon(t, -3.772507759880541967e-15, d.D2VDPDT, 1e-8, label)
	}
}

func derivativeValues(d Derivatives) []float64 {
	f, s, m, dep := d.First(), d.Second(), d.Mixed(), d.Departures()
	out := append(append(append(f[:], s[:]...), m[:]...), dep[:]...)
	return append(out, d.CpDep, d.Phi, d.PIP)
}

func TestDerivativesFastMatchesReference(t *testing.T) {
	conditions := [][2]float64{{299, 1e6}, {499, 1e5}, {400, 5e6}, {600, 5e6}, {900, 1e6}, {450, 2e6}}
	for _, fc := range allFamilies(t) {
		t.Run(fc.name, func(t *testing.T) {
			c := fc.model.Coefficients()
			for _, tp := range conditions {
				T, P := tp[0], tp[1]
				roots := rootsAt(t, fc.model, VolumeSolutions, T, P)
				for _, V := range physicalRoots(roots, c.B) {
					fast := derivativeValues(derivativesAt(t, fc.model, T, P, V, false))
					ref := derivativeValues(derivativesAt(t, fc.model, T, P, V, true))
					assertAllClose(t, fast, ref, 1e-10, fmt.Sprintf("T=%g P=%g V=%g", T, P, V))
				}
			}
		})
	}
}

func TestDerivativesFugacityAndPIP(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	d := derivativesAt(t, m, 299, 1e6, 0.00013022208100139953, false)

	// ln φ is the departure Gibbs energy over RT
	assert.InEpsilon(t, (d.HDep-299*d.SDep)/(R*299), math.Log(d.Phi), 1e-12)
	assert.InEpsilon(t, 11.334675962153833, d.PIP, 1e-9)
	// Cp - Cv = -T (dP/dT)² / (dP/dV)
	assert.InEpsilon(t, -299*d.DPDT*d.DPDT/d.DPDV-R, d.CpDep-d.CvDep, 1e-12)
}

// Δ = δ² - 4ε selects the log, arctangent or rational closed form.
func TestAttractiveIntegralBranches(t *testing.T) {
	b := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega)).Coefficients().B

	// ∫_V^∞ dV/D with V = V0/u is the smooth ∫_0^1 V0/(V0² + δV0u + εu²) du
	quadrature := func(V0, delta, epsilon float64) float64 {
		f := func(u float64) float64 { return V0 / (V0*V0 + delta*V0*u + epsilon*u*u) }
		return quad.Fixed(f, 0, 1, 64, nil, 0)
	}

	tests := []struct {
		name           string
		V              float64
		delta, epsilon float64
	}{
		{"positive discriminant", 2e-3, 2 * b, -b * b},
		{"positive discriminant liquid", 1.3e-4, 2 * b, -b * b},
		{"negative discriminant", 2e-3, 2 * b, 4 * b * b},
		{"zero discriminant", 2e-3, 2 * b, b * b},
		{"no attractive constants", 2e-3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InEpsilon(t, quadrature(tt.V, tt.delta, tt.epsilon), attractiveIntegral(tt.V, tt.delta, tt.epsilon), 1e-10)
		})
	}
}

func TestDeparturesAllDiscriminantSigns(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	b := m.Coefficients().B
	T, V := 350.0, 2e-3
	a := m.AAlpha(T)

	tests := []struct {
		name           string
		delta, epsilon float64
		wantDep        []float64
		wantPhi        float64
	}{
		{"negative discriminant", 2 * b, 4 * b * b, []float64{-4008.21329530566, -8.630511701778003, 2.213117117047841}, 0.7122318944741802},
		{"zero discriminant", 2 * b, b * b, []float64{-4027.4990059229585, -8.705603332710343, 2.2189690456283966}, 0.713946300427796},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			P := R*T/(V-b) - a.AAlpha/(V*V+tt.delta*V+tt.epsilon)
			fast, err := DerivativesAndDepartures(T, P, V, b, tt.delta, tt.epsilon, a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2)
			require.NoError(t, err)
			ref, err := DerivativesAndDeparturesReference(T, P, V, b, tt.delta, tt.epsilon, a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2)
			require.NoError(t, err)

			dep := fast.Departures()
			assertAllClose(t, tt.wantDep, dep[:], 1e-9, "fast")
			assertAllClose(t, derivativeValues(fast), derivativeValues(ref), 1e-10, "reference")
			assert.InEpsilon(t, tt.wantPhi, fast.Phi, 1e-9)
		})
	}
}

func TestDerivativesSingularAtCriticalPoint(t *testing.T) {
	// van der Waals: dP/dV = 0 exactly at Tc, Vc = 3b
	m := mustNew(t, FamilyVDW, hexaneTc, hexanePc)
	c := m.Coefficients()
	V := 3 * c.B

	_, err := DerivativesAndDepartures(hexaneTc, hexanePc, V, c.B, c.Delta, c.Epsilon, c.A, 0, 0)
	assert.ErrorIs(t, err, thermoerr.ErrNumerical)
	_, err = DerivativesAndDeparturesReference(hexaneTc, hexanePc, V, c.B, c.Delta, c.Epsilon, c.A, 0, 0)
	assert.ErrorIs(t, err, thermoerr.ErrNumerical)
}

func TestDerivativesDomainErrors(t *testing.T) {
	m := mustNew(t, FamilyPR, hexaneTc, hexanePc, Omega(hexaneOmega))
	c := m.Coefficients()
	a := m.AAlpha(299)

	inputs := [][3]float64{
		{-299, 1e6, 1e-3},
		{299, -1e6, 1e-3},
		{299, 1e6, c.B},
		{299, 1e6, c.B / 2},
	}
	for _, in := range inputs {
		_, errFast := DerivativesAndDepartures(in[0], in[1], in[2], c.B, c.Delta, c.Epsilon, a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2)
		_, errRef := DerivativesAndDeparturesReference(in[0], in[1], in[2], c.B, c.Delta, c.Epsilon, a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2)
		assert.ErrorIs(t, errFast, thermoerr.ErrDomain, "%v", in)
		assert.ErrorIs(t, errRef, thermoerr.ErrDomain, "%v", in)
		assert.Equal(t, errFast.Error(), errRef.Error())
	}
}
