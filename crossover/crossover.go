// Package crossover implements the three parent-to-offspring recombination
// operators of §4.G: DBX (double backbone), RSC (reduce-solve-combine),
// and IRR (inherit-repair-recombine). Parents are solution sets (removed
// vertex ids); offspring is always a freshly cloned residual graph.
package crossover

import (
	"errors"
	"sort"

	"github.com/critnode/critnode/graph"
)

// ErrWrongParentCount is returned when an operator receives a parent slice
// of the wrong arity (§6 "requires 2 (or 3) parents").
var ErrWrongParentCount = errors.New("crossover: wrong number of parents")

// toSet builds a membership set from a solution slice.
func toSet(sol []int) map[int]bool {
	m := make(map[int]bool, len(sol))
	for _, v := range sol {
		m[v] = true
	}
	return m
}

// sortedKeys returns a set's members in ascending order, for deterministic
// iteration over Go's randomized map order.
func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// growRemovedSet repairs an under-sized removed set by repeated random
// removals, mirroring DBX's repair loop (§4.G). It uses the
// variant-transparent RandomSelectNodeToRemove rather than the CNP-only
// selectComponent/randomSelectNodeFromComponent pair, so the same repair
// code serves both CNP and DCNP offspring.
func growRemovedSet(g *graph.Graph, target int) error {
	for len(g.GetRemovedNodes()) < target {
		v, err := g.RandomSelectNodeToRemove()
		if err != nil {
			return err
		}
		if err := g.RemoveNode(v); err != nil {
			return err
		}
	}
	return nil
}

func shrinkRemovedSet(g *graph.Graph, target int) error {
	for len(g.GetRemovedNodes()) > target {
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
	}
	return nil
}
