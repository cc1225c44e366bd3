package eos

import (
	"math"
	"math/cmplx"
)

/*
DerivativesAndDeparturesReference computes the same bundle as
DerivativesAndDepartures along an independent route: P = N/M with

	M = (V - b)(V² + δV + ε)
	N = RT(V² + δV + ε) - aα(V - b)

differentiated with the quotient rule, second derivatives of V and T by
the chain rule on the implicit function, and departures in reduced
(Walas) variables through a complex logarithm.
*/
func DerivativesAndDeparturesReference(T, P, V, b, delta, epsilon, aAlpha, dAAlphaDT, d2AAlphaDT2 float64) (Derivatives, error) {
	if err := checkTPV(T, P, V, b); err != nil {
		return Derivatives{}, err
	}

	RT := R * T
	vb := V - b
	D := V*V + delta*V + epsilon
	w := 2*V + delta

	M := vb * D
	MV := D + vb*w
	MVV := 2*w + 2*vb

	N := RT*D - aAlpha*vb
	NV := RT*w - aAlpha
	NVV := 2 * RT
	NT := R*D - dAAlphaDT*vb
	NTT := -d2AAlphaDT2 * vb
	NTV := R*w - dAAlphaDT

	var d Derivatives
	d.DPDT = NT / M
	d.DPDV = (NV*M - N*MV) / (M * M)
	d.D2PDT2 = NTT / M
	d.D2PDV2 = NVV/M - 2*NV*MV/(M*M) - N*MVV/(M*M) + 2*N*MV*MV/(M*M*M)
	d.D2PDTDV = (NTV*M - NT*MV) / (M * M)

	if err := checkSlopes(T, V, vb, d.DPDT, d.DPDV); err != nil {
		return Derivatives{}, err
	}

	PT, PV := d.DPDT, d.DPDV
	PTT, PVV, PTV := d.D2PDT2, d.D2PDV2, d.D2PDTDV

	VT := -PT / PV
	VP := 1 / PV
	TV := -PV / PT
	TP := 1 / PT
	d.DVDT, d.DVDP, d.DTDV, d.DTDP = VT, VP, TV, TP

	d.D2VDT2 = -(PTT + 2*PTV*VT + PVV*VT*VT) / PV
	d.D2VDP2 = -PVV * VP * VP * VP
	d.D2TDV2 = -(PVV + 2*PTV*TV + PTT*TV*TV) / PT
	d.D2TDP2 = -PTT * TP * TP * TP
	d.D2VDPDT = -(PTV + PVV*VT) / (PV * PV)
	d.D2TDPDV = -(PTV + PTT*TV) / (PT * PT)

	// reduced variables
	B := b * P / RT
	A := aAlpha * P / (RT * RT)
	deltaR := delta * P / RT
	epsR := epsilon * (P / RT) * (P / RT)
	Z := P * V / RT
	J := reducedIntegral(Z, deltaR, epsR)

	d.HDep = RT * (Z - 1 - (A-T*dAAlphaDT*P/(RT*RT))*J)
	d.SDep = R*math.Log(Z-B) + dAAlphaDT*(P/RT)*J
	d.CvDep = T * d2AAlphaDT2 * (P / RT) * J
	d.CpDep = d.CvDep + T*PT*VT - R
	d.Phi = math.Exp(Z - 1 - math.Log(Z-B) - A*J)
	d.PIP = V * (PTV*TP - PVV*VP)

	if err := checkFinite(d, T, P, V); err != nil {
		return Derivatives{}, err
	}
	return d, nil
}

// reducedIntegral is ∫ dZ/(Z² + δ'Z + ε') from Z to ∞ via a complex log,
// which covers both signs of the discriminant.
func reducedIntegral(Z, delta, epsilon float64) float64 {
	w := complex(2*Z+delta, 0)
	disc := delta*delta - 4*epsilon
	if disc == 0 {
		return 2 / real(w)
	}
	s := cmplx.Sqrt(complex(disc, 0))
	return real(cmplx.Log((w+s)/(w-s)) / s)
}
