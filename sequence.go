package main

import (
	"context"

	"github.com/marcosfelt/thermo/eos"
	"golang.org/x/sync/errgroup"
)

// Outcome is the resolution of one case: either the state or the error.
type Outcome struct {
	Case  *Case
	State *eos.State
	Err   error
}

// Sequence resolves a batch of independent cases with a bounded number of
// workers.
type Sequence struct {
	numerics eos.Numerics
	workers  int
}

func NewSequence(numerics eos.Numerics, workers int) *Sequence {
	if workers < 1 {
		workers = 1
	}
	return &Sequence{numerics: numerics, workers: workers}
}

/*
全ケースを解く

	Args:
		ctx: cancelling it stops scheduling further cases
		cases: 入力ケース

	Returns:
		one Outcome per case, in input order. A failed case is reported in
		its Outcome and does not stop the others.
*/
func (s *Sequence) Run(ctx context.Context, cases []*Case) ([]Outcome, error) {
	outcomes := make([]Outcome, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, c := range cases {
		if gctx.Err() != nil {
			break
		}
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.resolve(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Sequence) resolve(c *Case) Outcome {
	m, err := c.model()
	if err != nil {
		return Outcome{Case: c, Err: err}
	}
	state, err := eos.Resolve(m, c.conditions(), s.numerics)
	return Outcome{Case: c, State: state, Err: err}
}
