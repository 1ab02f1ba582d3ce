package search

import "github.com/critnode/critnode/graph"

// CHNS is CBNS with probability Theta of using impact-based selection
// instead of age-based selection for the removed vertex (§4.F).
type CHNS struct {
	MaxIdleSteps int
	Theta        float64
	metrics      *Metrics
}

// NewCHNS constructs a CHNS strategy from params.
func NewCHNS(p ParamBag) *CHNS {
	return &CHNS{MaxIdleSteps: p.MaxIdleSteps, Theta: p.Theta}
}

// SetMetrics wires optional move/idle-step counters.
func (c *CHNS) SetMetrics(m *Metrics) { c.metrics = m }

// Run executes the CHNS loop (§4.F).
func (c *CHNS) Run(g *graph.Graph) (Result, error) {
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

func (c *CHNS) performMove(g *graph.Graph, step int) error {
	comp, err := g.SelectComponent()
	if err != nil {
		return err
	}

	var v int
	if g.RNG().Bool(c.Theta) {
		v, err = g.ImpactSelectNodeFromComponent(comp)
	} else {
		v, err = g.AgeSelectNodeFromComponent(comp)
	}
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
