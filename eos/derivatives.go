package eos

import (
	"fmt"
	"math"

	"github.com/marcosfelt/thermo/thermoerr"
)

// Derivatives is the derivative bundle of one phase, with its departure
// functions. P is in Pa, V in m3/mol, T in K.
type Derivatives struct {
	DPDT float64 // (∂P/∂T)_V
	DPDV float64 // (∂P/∂V)_T
	DVDT float64 // (∂V/∂T)_P
	DVDP float64 // (∂V/∂P)_T
	DTDV float64 // (∂T/∂V)_P
	DTDP float64 // (∂T/∂P)_V

	D2PDT2 float64
	D2PDV2 float64
	D2VDT2 float64
	D2VDP2 float64
	D2TDV2 float64
	D2TDP2 float64

	D2VDPDT float64
	D2PDTDV float64
	D2TDPDV float64

	HDep  float64 // J/mol
	SDep  float64 // J/(mol K)
	CvDep float64 // J/(mol K)
	CpDep float64 // J/(mol K)
	Phi   float64 // fugacity coefficient, -

	// phase identification parameter, V (∂²P/∂T∂V / ∂P/∂T - ∂²P/∂V² / ∂P/∂V)
	PIP float64
}

// First returns dP/dT, dP/dV, dV/dT, dV/dP, dT/dV, dT/dP.
func (d Derivatives) First() [6]float64 {
	return [6]float64{d.DPDT, d.DPDV, d.DVDT, d.DVDP, d.DTDV, d.DTDP}
}

// Second returns d²P/dT², d²P/dV², d²V/dT², d²V/dP², d²T/dV², d²T/dP².
func (d Derivatives) Second() [6]float64 {
	return [6]float64{d.D2PDT2, d.D2PDV2, d.D2VDT2, d.D2VDP2, d.D2TDV2, d.D2TDP2}
}

// Mixed returns d²V/dPdT, d²P/dTdV, d²T/dPdV.
func (d Derivatives) Mixed() [3]float64 {
	return [3]float64{d.D2VDPDT, d.D2PDTDV, d.D2TDPDV}
}

// Departures returns H_dep, S_dep, Cv_dep.
func (d Derivatives) Departures() [3]float64 {
	return [3]float64{d.HDep, d.SDep, d.CvDep}
}

/*
導関数と離脱関数を求める

	Args:
		T: 温度, K
		P: 圧力, Pa
		V: モル体積, m3/mol
		b, delta, epsilon: EOS の係数
		aAlpha, dAAlphaDT, d2AAlphaDT2: a·α とその温度微分

	Returns:
		the derivative bundle, or a Numerical error when dP/dV or dP/dT
		vanishes at this point
*/
func DerivativesAndDepartures(T, P, V, b, delta, epsilon, aAlpha, dAAlphaDT, d2AAlphaDT2 float64) (Derivatives, error) {
	if err := checkTPV(T, P, V, b); err != nil {
		return Derivatives{}, err
	}

	RT := R * T
	vb := V - b
	D := V*V + delta*V + epsilon
	w := 2*V + delta
	D2 := D * D

	var d Derivatives
	d.DPDT = R/vb - dAAlphaDT/D
	d.DPDV = -RT/(vb*vb) + aAlpha*w/D2
	d.D2PDT2 = -d2AAlphaDT2 / D
	d.D2PDV2 = 2 * (RT/(vb*vb*vb) - w*w*aAlpha/(D2*D) + aAlpha/D2)
	d.D2PDTDV = -R/(vb*vb) + w*dAAlphaDT/D2

	if err := checkSlopes(T, V, vb, d.DPDT, d.DPDV); err != nil {
		return Derivatives{}, err
	}

	PT, PV := d.DPDT, d.DPDV
	PTT, PVV, PTV := d.D2PDT2, d.D2PDV2, d.D2PDTDV
	PV3 := PV * PV * PV
	PT3 := PT * PT * PT

	d.DVDT = -PT / PV
	d.DVDP = 1 / PV
	d.DTDV = 1 / d.DVDT
	d.DTDP = 1 / PT

	d.D2VDT2 = -(PTT*PV*PV - 2*PT*PV*PTV + PT*PT*PVV) / PV3
	d.D2TDV2 = -(PVV*PT*PT - 2*PT*PV*PTV + PV*PV*PTT) / PT3
	d.D2VDP2 = -PVV / PV3
	d.D2TDP2 = -PTT / PT3
	d.D2VDPDT = -(PTV*PV - PT*PVV) / PV3
	d.D2TDPDV = -(PTV*PT - PV*PTT) / PT3

	I := attractiveIntegral(V, delta, epsilon)
	d.HDep = P*V - RT + (T*dAAlphaDT-aAlpha)*I
	d.SDep = R*math.Log(P*vb/RT) + dAAlphaDT*I
	d.CvDep = T * d2AAlphaDT2 * I
	d.CpDep = d.CvDep - T*PT*PT/PV - R
	d.Phi = math.Exp((d.HDep - T*d.SDep) / RT)
	d.PIP = V * (PTV/PT - PVV/PV)

	if err := checkFinite(d, T, P, V); err != nil {
		return Derivatives{}, err
	}
	return d, nil
}

func checkTPV(T, P, V, b float64) error {
	if err := checkTP(T, P); err != nil {
		return err
	}
	if !(V > b) || math.IsInf(V, 0) {
		return thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("volume %g must exceed the co-volume %g", V, b))
	}
	return nil
}

// dP/dV is compared with the ideal-gas-like repulsive scale RT/(V-b)²,
// dP/dT with R/(V-b).
func checkSlopes(T, V, vb, PT, PV float64) error {
	meta := func() map[string]string {
		return map[string]string{"T": fmt.Sprint(T), "V": fmt.Sprint(V)}
	}
	if math.Abs(PV) <= singularTolerance*R*T/(vb*vb) {
		return thermoerr.WithMetadata(thermoerr.CodeNumerical, "dP/dV vanishes; reciprocal derivatives are undefined", meta())
	}
	if math.Abs(PT) <= singularTolerance*R/vb {
		return thermoerr.WithMetadata(thermoerr.CodeNumerical, "dP/dT vanishes; reciprocal derivatives are undefined", meta())
	}
	return nil
}

func checkFinite(d Derivatives, T, P, V float64) error {
	values := []float64{d.DPDT, d.DPDV, d.DVDT, d.DVDP, d.DTDV, d.DTDP,
		d.D2PDT2, d.D2PDV2, d.D2VDT2, d.D2VDP2, d.D2TDV2, d.D2TDP2,
		d.D2VDPDT, d.D2PDTDV, d.D2TDPDV,
		d.HDep, d.SDep, d.CvDep, d.CpDep, d.Phi, d.PIP}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return thermoerr.WithMetadata(thermoerr.CodeNumerical, "non-finite derivative",
				map[string]string{"T": fmt.Sprint(T), "P": fmt.Sprint(P), "V": fmt.Sprint(V)})
		}
	}
	return nil
}
