package main

import (
	"github.com/marcosfelt/thermo/eos"
)

// Case is one row of the input CSV: a pure component, its EOS family and two
// of T, P, V. Empty optional cells decode to nil.
type Case struct {
	Name   string  `csv:"name"`
	Family string  `csv:"family"`
	Tc     float64 `csv:"tc"` // 臨界温度, K
	Pc     float64 `csv:"pc"` // 臨界圧力, Pa

	Omega         *float64 `csv:"omega,omitempty"` // 偏心因子, -
	Kappa1        *float64 `csv:"kappa1,omitempty"`
	Kappa2        *float64 `csv:"kappa2,omitempty"`
	Kappa3        *float64 `csv:"kappa3,omitempty"`
	Kappa1TrLimit *float64 `csv:"kappa1_tr_limit,omitempty"`
	S1            *float64 `csv:"s1,omitempty"`
	S2            *float64 `csv:"s2,omitempty"`
	Shift         *float64 `csv:"shift,omitempty"` // m3/mol
	ZRA           *float64 `csv:"zra,omitempty"`   // Rackett parameter, -

	T *float64 `csv:"t,omitempty"` // 温度, K
	P *float64 `csv:"p,omitempty"` // 圧力, Pa
	V *float64 `csv:"v,omitempty"` // モル体積, m3/mol
}

// model builds the EOS the row describes.
func (c *Case) model() (eos.Model, error) {
	family, err := eos.ParseFamily(c.Family)
	if err != nil {
		return nil, err
	}

	var opts []eos.Option
	add := func(v *float64, opt func(float64) eos.Option) {
		if v != nil {
			opts = append(opts, opt(*v))
		}
	}
	add(c.Omega, eos.Omega)
	add(c.Kappa1, eos.Kappa1)
	add(c.Kappa2, eos.Kappa2)
	add(c.Kappa3, eos.Kappa3)
	add(c.Kappa1TrLimit, eos.Kappa1TrLimit)
	add(c.S1, eos.S1)
	add(c.S2, eos.S2)
	add(c.Shift, eos.VolumeShift)
	add(c.ZRA, eos.RackettZ)

	return eos.New(family, c.Tc, c.Pc, opts...)
}

func (c *Case) conditions() eos.Conditions {
	value := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}
	return eos.Conditions{T: value(c.T), P: value(c.P), V: value(c.V)}
}
