package eos

// 気体定数, J/(mol K)
const R = 8.3144598

// Peng-Robinson critical-point coefficients, a = Ωa R² Tc² / Pc, b = Ωb R Tc / Pc
const (
	prOmegaA = 0.4572355289213821893834601962251837888504
	prOmegaB = 0.0777960739038884559718447100373331839711
)

// Soave-Redlich-Kwong critical-point coefficients (shared with RK)
const (
	srkOmegaA = 0.4274802335403414043909906940611707345513
	srkOmegaB = 0.08664034996495772158907020242607611685675
)

const (
	// Newton iteration cap for the temperature solve
	maxNewtonIterations = 100

	// relative step at which the Newton temperature solve stops
	newtonTolerance = 1e-12

	// bisection iteration cap and relative bracket width
	maxBisectIterations = 200
	bisectTolerance     = 1e-13

	// doublings/halvings allowed while bracketing a temperature
	maxBracketSteps = 64

	// |dP/dV| or |dP/dT| below this fraction of its natural scale is treated as zero
	singularTolerance = 1e-12

	// imaginary parts below this fraction of |V| are dropped from volume roots
	imagTolerance = 1e-12

	// relative spreads below which volume roots are taken as one triple or
	// double root, well above eps^(1/3) and eps^(1/2)
	tripleRootTolerance = 1e-4
	doubleRootTolerance = 1e-7
)
