package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/marcosfelt/thermo/eos"
)

// ResultRow is one line of results.csv: one resolved phase of one case, or
// the error of a failed case. The numeric cells of an error row are empty.
type ResultRow struct {
	Name       string   `csv:"name"`
	Family     string   `csv:"family"`
	StatePhase string   `csv:"state_phase"`
	Phase      string   `csv:"phase"`
	Stable     bool     `csv:"stable"`
	T          *float64 `csv:"t,omitempty"`      // 温度, K
	P          *float64 `csv:"p,omitempty"`      // 圧力, Pa
	V          *float64 `csv:"v,omitempty"`      // モル体積, m3/mol
	Z          *float64 `csv:"z,omitempty"`      // 圧縮係数, -
	HDep       *float64 `csv:"h_dep,omitempty"`  // J/mol
	SDep       *float64 `csv:"s_dep,omitempty"`  // J/(mol K)
	CvDep      *float64 `csv:"cv_dep,omitempty"` // J/(mol K)
	CpDep      *float64 `csv:"cp_dep,omitempty"` // J/(mol K)
	Phi        *float64 `csv:"phi,omitempty"`    // -
	Error      string   `csv:"error"`
}

type Recorder struct {
	rows   []*ResultRow
	failed int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// recording appends the rows of one outcome.
func (r *Recorder) recording(o Outcome) {
	if o.Err != nil {
		r.failed++
		r.rows = append(r.rows, &ResultRow{
			Name:   o.Case.Name,
			Family: o.Case.Family,
			Error:  o.Err.Error(),
		})
		return
	}

	s := o.State
	stable := s.Stable()
	for _, ps := range []*eos.PhaseState{s.Liquid, s.Gas} {
		if ps == nil {
			continue
		}
		r.rows = append(r.rows, &ResultRow{
			Name:       o.Case.Name,
			Family:     string(s.Family),
			StatePhase: string(s.Phase),
			Phase:      string(ps.Phase),
			Stable:     ps == stable,
			T:          ptr(s.T),
			P:          ptr(s.P),
			V:          ptr(ps.V),
			Z:          ptr(ps.Z),
			HDep:       ptr(ps.HDep),
			SDep:       ptr(ps.SDep),
			CvDep:      ptr(ps.CvDep),
			CpDep:      ptr(ps.CpDep),
			Phi:        ptr(ps.Phi),
		})
	}
}

// export writes the recorded rows to path.
func (r *Recorder) export(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&r.rows, file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func ptr(v float64) *float64 {
	return &v
}
