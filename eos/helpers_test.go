package eos

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// n-hexane
const (
	hexaneTc    = 507.6
	hexanePc    = 3025000.0
	hexaneOmega = 0.2975
)

// assertClose compares with a relative tolerance, falling back to an absolute
// one when want is zero.
func assertClose(t *testing.T, want, got, rtol float64, label string) {
	t.Helper()
	if want == 0 {
		assert.InDelta(t, want, got, rtol, label)
		return
	}
	assert.InEpsilon(t, want, got, rtol, label)
}

func assertAllClose(t *testing.T, want, got []float64, rtol float64, label string) {
	t.Helper()
	if !assert.Len(t, got, len(want), label) {
		return
	}
	for i := range want {
		assertClose(t, want[i], got[i], rtol, fmt.Sprintf("%s[%d]", label, i))
	}
}

func mustNew(t *testing.T, family Family, tc, pc float64, opts ...Option) Model {
	t.Helper()
	m, err := New(family, tc, pc, opts...)
	if err != nil {
		t.Fatalf("New(%s): %v", family, err)
	}
	return m
}

type familyCase struct {
	name  string
	model Model
}

// allFamilies builds every family for hexane, with a heavy component for PR78
// so that its own κ correlation is active.
func allFamilies(t *testing.T) []familyCase {
	t.Helper()
	w := Omega(hexaneOmega)
	return []familyCase{
		{"PR", mustNew(t, FamilyPR, hexaneTc, hexanePc, w)},
		{"PR78", mustNew(t, FamilyPR78, 632, 5350000, Omega(0.734))},
		{"PRSV", mustNew(t, FamilyPRSV, hexaneTc, hexanePc, w, Kappa1(0.05104))},
		{"PRSV limited", mustNew(t, FamilyPRSV, hexaneTc, hexanePc, w, Kappa1(0.05104), Kappa1TrLimit(1))},
		{"PRSV2", mustNew(t, FamilyPRSV2, hexaneTc, hexanePc, w, Kappa1(0.05104), Kappa2(0.8634), Kappa3(0.460))},
		{"SRK", mustNew(t, FamilySRK, hexaneTc, hexanePc, w)},
		{"VDW", mustNew(t, FamilyVDW, hexaneTc, hexanePc)},
		{"RK", mustNew(t, FamilyRK, hexaneTc, hexanePc)},
		{"APISRK", mustNew(t, FamilyAPISRK, hexaneTc, hexanePc, w)},
		{"APISRK S1 S2", mustNew(t, FamilyAPISRK, 514, 6137000, S1(1.678665), S2(-0.216396))},
		{"TWUPR", mustNew(t, FamilyTWUPR, hexaneTc, hexanePc, w)},
		{"PRTranslated", mustNew(t, FamilyPRTranslated, hexaneTc, hexanePc, w, VolumeShift(3e-6))},
		{"SRKTranslated", mustNew(t, FamilySRKTranslated, hexaneTc, hexanePc, w, VolumeShift(-2e-6))},
	}
}

func alphaSlice(a AlphaTerms) []float64 {
	return []float64{a.AAlpha, a.DAAlphaDT, a.D2AAlphaDT2}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
