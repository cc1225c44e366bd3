package unifac

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/marcosfelt/thermo/thermoerr"
)

//go:embed data/subgroups.csv
var subgroupsCSV []byte

//go:embed data/interactions.csv
var interactionsCSV []byte

// Subgroup is one row of the UNIFAC subgroup table.
type Subgroup struct {
	ID            int     `csv:"id"`
	Name          string  `csv:"name"`
	MainGroup     int     `csv:"main_group"`
	MainGroupName string  `csv:"main_group_name"`
	R             float64 `csv:"r"` // 相対体積, -
	Q             float64 `csv:"q"` // 相対表面積, -
}

type interactionRow struct {
	M int     `csv:"m"`
	N int     `csv:"n"`
	A float64 `csv:"a"` // K
}

type registry struct {
	subgroups    map[int]Subgroup
	interactions map[[2]int]float64
}

// defaultRegistry parses the embedded tables once. The maps are never
// written after this returns.
var defaultRegistry = sync.OnceValues(func() (*registry, error) {
	var subgroups []*Subgroup
	if err := gocsv.UnmarshalBytes(subgroupsCSV, &subgroups); err != nil {
		return nil, fmt.Errorf("read subgroups: %w", err)
	}
	var rows []*interactionRow
	if err := gocsv.UnmarshalBytes(interactionsCSV, &rows); err != nil {
		return nil, fmt.Errorf("read interactions: %w", err)
	}

	reg := &registry{
		subgroups:    make(map[int]Subgroup, len(subgroups)),
		interactions: make(map[[2]int]float64, len(rows)),
	}
	for _, sg := range subgroups {
		reg.subgroups[sg.ID] = *sg
	}
	for _, row := range rows {
		reg.interactions[[2]int{row.M, row.N}] = row.A
	}
	return reg, nil
})

func (reg *registry) subgroup(id int) (Subgroup, error) {
	sg, ok := reg.subgroups[id]
	if !ok {
		return Subgroup{}, thermoerr.New(thermoerr.CodeConfiguration, fmt.Sprintf("unknown UNIFAC subgroup %d", id))
	}
	return sg, nil
}

// interaction returns a_mn between two main groups; a group does not
// interact with itself.
func (reg *registry) interaction(m, n int) (float64, error) {
	if m == n {
		return 0, nil
	}
	a, ok := reg.interactions[[2]int{m, n}]
	if !ok {
		return 0, thermoerr.WithMetadata(thermoerr.CodeConfiguration, "missing UNIFAC interaction parameter",
			map[string]string{"m": fmt.Sprint(m), "n": fmt.Sprint(n)})
	}
	return a, nil
}

// LookupSubgroup returns the registered subgroup with the given id.
func LookupSubgroup(id int) (Subgroup, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return Subgroup{}, err
	}
	return reg.subgroup(id)
}

/*
サブグループ k と m の間の相互作用項

	Args:
		T: 温度, K
		k: サブグループ番号
		m: サブグループ番号

	Returns:
		exp(-a_km / T), where a_km is the interaction between the main groups of k and m
*/
func Psi(T float64, k, m int) (float64, error) {
	if !(T > 0) || math.IsInf(T, 0) {
		return 0, thermoerr.New(thermoerr.CodeDomain, fmt.Sprintf("temperature must be positive, got %g", T))
	}
	reg, err := defaultRegistry()
	if err != nil {
		return 0, err
	}
	sk, err := reg.subgroup(k)
	if err != nil {
		return 0, err
	}
	sm, err := reg.subgroup(m)
	if err != nil {
		return 0, err
	}
	a, err := reg.interaction(sk.MainGroup, sm.MainGroup)
	if err != nil {
		return 0, err
	}
	return math.Exp(-a / T), nil
}

// VanDerWaalsVolume converts a relative volume parameter to m3/mol.
func VanDerWaalsVolume(R float64) float64 {
	return R * 15.17e-6
}

// VanDerWaalsArea converts a relative surface area parameter to m2/mol.
func VanDerWaalsArea(Q float64) float64 {
	return Q * 2.5e5
}
