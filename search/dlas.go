package search

import "github.com/critnode/critnode/graph"

// DLAS is diversified late acceptance: a move is accepted whenever it
// matches or beats a sliding history of past objective values rather than
// only the single previous value, which lets the search walk across
// plateaus without committing to strictly-improving moves (§4.F).
type DLAS struct {
	MaxIdleSteps  int
	HistoryLength int
	metrics       *Metrics
}

// NewDLAS constructs a DLAS strategy from params.
func NewDLAS(p ParamBag) *DLAS {
	return &DLAS{MaxIdleSteps: p.MaxIdleSteps, HistoryLength: p.HistoryLength}
}

// SetMetrics wires optional move/idle-step counters.
func (d *DLAS) SetMetrics(m *Metrics) { d.metrics = m }

// Run executes the DLAS loop (§4.F).
func (d *DLAS) Run(g *graph.Graph) (Result, error) {
	if g.GetNumNodes() == 0 {
		return Result{}, ErrEmptyGraph
	}

	prevObj := g.GetObjectiveValue()
	best := snapshotSolution(g)
	bestObj := prevObj

	history := make([]int64, d.HistoryLength)
	for i := range history {
		history[i] = prevObj
	}
	maxCost := prevObj
	numMaxCost := d.HistoryLength

	idle := 0
	step := 0
	for idle < d.MaxIdleSteps {
		step++
		prevSolution := snapshotSolution(g)

		if err := d.performMove(g, step); err != nil {
			idle++
			if d.metrics != nil {
				d.metrics.IdleSteps.Inc()
			}
			continue
		}

		newObj := g.GetObjectiveValue()
		accept := newObj == prevObj || newObj < maxCost
		if !accept {
			if err := g.UpdateByRemovedSet(prevSolution); err != nil {
				return Result{}, err
			}
			idle++
			if d.metrics != nil {
				d.metrics.IdleSteps.Inc()
			}
			continue
		}

		if d.metrics != nil {
			d.metrics.Moves.Inc()
		}

		slot := step % d.HistoryLength
		if newObj > history[slot] {
			history[slot] = newObj
		} else if newObj < history[slot] && newObj < prevObj {
			if history[slot] == maxCost {
				numMaxCost--
			}
			history[slot] = newObj
			if numMaxCost == 0 {
				maxCost = maxInt64Slice(history)
				numMaxCost = countEqual(history, maxCost)
			}
		}
		prevObj = newObj

		if newObj < bestObj {
			bestObj = newObj
			best = snapshotSolution(g)
			idle = 0
		} else {
			idle++
			if d.metrics != nil {
				d.metrics.IdleSteps.Inc()
			}
		}
	}
	return Result{Solution: best, ObjValue: bestObj}, nil
}

// performMove picks a uniformly random vertex from a selected component
// (rather than CBNS's age-based pick) and greedily adds one back, tagging
// the age of both moved vertices (§4.F, SPEC_FULL §6).
func (d *DLAS) performMove(g *graph.Graph, step int) error {
	comp, err := g.SelectComponent()
	if err != nil {
		return err
	}
	v, err := g.RandomSelectNodeFromComponent(comp)
	if err != nil {
		return err
	}
	if err := g.RemoveNode(v); err != nil {
		return err
	}
	g.SetNodeAge(v, step)

	add, err := g.GreedySelectNodeToAdd()
	if err != nil {
		return err
	}
	if add == -1 {
		return nil
	}
	if err := g.AddNode(add); err != nil {
		return err
	}
	g.SetNodeAge(add, step)
	return nil
}

func maxInt64Slice(xs []int64) int64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func countEqual(xs []int64, v int64) int {
	n := 0
	for _, x := range xs {
		if x == v {
			n++
		}
	}
	return n
}
