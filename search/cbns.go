package search

import "github.com/critnode/critnode/graph"

// CBNS repeatedly removes a component's youngest vertex and greedily adds
// one back, tagging both with the current step counter (§4.F).
type CBNS struct {
	MaxIdleSteps int
	metrics      *Metrics
}

// NewCBNS constructs a CBNS strategy from params.
func NewCBNS(p ParamBag) *CBNS {
	return &CBNS{MaxIdleSteps: p.MaxIdleSteps}
}

// SetMetrics wires optional move/idle-step counters.
func (c *CBNS) SetMetrics(m *Metrics) { c.metrics = m }

// Run executes the CBNS loop (§4.F).
func (c *CBNS) Run(g *graph.Graph) (Result, error) {
	if g.GetNumNodes() == 0 {
		return Result{}, ErrEmptyGraph
	}
	best := snapshotSolution(g)
	bestObj := g.GetObjectiveValue()

	idle := 0
	step := 0
	for idle < c.MaxIdleSteps {
		step++
		if err := c.performMove(g, step); err != nil {
			idle++
			if c.metrics != nil {
				c.metrics.IdleSteps.Inc()
			}
			continue
		}
		if c.metrics != nil {
			c.metrics.Moves.Inc()
		}
		obj := g.GetObjectiveValue()
		if obj < bestObj {
			bestObj = obj
			best = snapshotSolution(g)
			idle = 0
		} else {
			idle++
			if c.metrics != nil {
				c.metrics.IdleSteps.Inc()
			}
		}
	}
	return Result{Solution: best, ObjValue: bestObj}, nil
}

// performMove is CBNS's move primitive: select a target component, remove
// its youngest member, greedily add one vertex back, tagging ages on both
// (§4.F). A failure here is a heuristic dead end, not a hard error — the
// caller degrades to an idle step.
func (c *CBNS) performMove(g *graph.Graph, step int) error {
	comp, err := g.SelectComponent()
	if err != nil {
		return err
	}
	v, err := g.AgeSelectNodeFromComponent(comp)
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
