package eos

// PR is the Peng-Robinson (1976) equation of state.
type PR struct {
	cubic
	kappa float64
}

func prCubic(family Family, tc, pc, omega float64) cubic {
	b := prOmegaB * R * tc / pc
	return cubic{
		family:  family,
		tc:      tc,
		pc:      pc,
		omega:   omega,
		a:       prOmegaA * R * R * tc * tc / pc,
		b:       b,
		delta:   2 * b,
		epsilon: -b * b,
	}
}

func prKappa(omega float64) float64 {
	return 0.37464 + 1.54226*omega - 0.26992*omega*omega
}

func newPR(tc, pc, omega float64) *PR {
	return &PR{cubic: prCubic(FamilyPR, tc, pc, omega), kappa: prKappa(omega)}
}

// Kappa returns κ.
func (e *PR) Kappa() float64 { return e.kappa }

func (e *PR) AAlpha(T float64) AlphaTerms {
	return soaveAlpha(e.a, e.tc, e.kappa, T)
}

func (e *PR) AAlphaReference(T float64) AlphaTerms {
	return soaveChainX(e.a, e.tc, T, e.kappa, 0, 0)
}

func (e *PR) SolveTClosedForm(P, V float64) (float64, bool) {
	return soaveTemperature(&e.cubic, e.kappa, P, V)
}

// PR78 is Peng-Robinson with the 1978 κ correlation for heavy components.
// For omega <= 0.491 it is identical to PR.
type PR78 struct {
	PR
}

func newPR78(tc, pc, omega float64) *PR78 {
	kappa := prKappa(omega)
	if omega > 0.491 {
		kappa = 0.379642 + 1.48503*omega - 0.164423*omega*omega + 0.016666*omega*omega*omega
	}
	return &PR78{PR{cubic: prCubic(FamilyPR78, tc, pc, omega), kappa: kappa}}
}

// PRTranslated is Peng-Robinson with a Peneloux volume translation c:
//
//	b = b0 - c, δ = 2(c + b0), ε = -b0² + c² + 2c b0
type PRTranslated struct {
	PR
	shift float64
}

func newPRTranslated(tc, pc, omega, c float64) *PRTranslated {
	base := prCubic(FamilyPRTranslated, tc, pc, omega)
	b0 := base.b
	base.b = b0 - c
	base.delta = 2 * (c + b0)
	base.epsilon = -b0*b0 + c*c + 2*c*b0
	return &PRTranslated{PR: PR{cubic: base, kappa: prKappa(omega)}, shift: c}
}

// Shift returns the volume translation, m3/mol.
func (e *PRTranslated) Shift() float64 { return e.shift }
