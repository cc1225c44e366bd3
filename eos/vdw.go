package eos

// VDW is the van der Waals equation of state; α = 1.
type VDW struct {
	cubic
}

func newVDW(tc, pc float64) *VDW {
	return &VDW{cubic{
		family: FamilyVDW,
		tc:     tc,
		pc:     pc,
		a:      27.0 / 64.0 * R * R * tc * tc / pc,
		b:      R * tc / (8 * pc),
	}}
}

func (e *VDW) AAlpha(T float64) AlphaTerms {
	return AlphaTerms{AAlpha: e.a}
}

// AAlphaReference is AAlpha; a constant has a single expansion.
func (e *VDW) AAlphaReference(T float64) AlphaTerms {
	return e.AAlpha(T)
}

// T = (P + a/V²)(V - b)/R
func (e *VDW) SolveTClosedForm(P, V float64) (float64, bool) {
	T := (P + e.a/e.attractiveDenominator(V)) * (V - e.b) / R
	return T, T > 0
}
