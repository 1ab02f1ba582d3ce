package crossover

import "github.com/critnode/critnode/graph"

// DBXTheta is the inclusion probability for non-shared parent vertices
// (§4.G).
const DBXTheta = 0.85

// DBX (Double Backbone) unions the two parents' shared removed vertices
// unconditionally, then includes each parent's unshared vertices with
// probability DBXTheta, and repairs the result back to the first parent's
// budget (§4.G).
func DBX(offspring *graph.Graph, parents [][]int) error {
	if len(parents) != 2 {
		return ErrWrongParentCount
	}
	m, f := toSet(parents[0]), toSet(parents[1])

	// Iterate in sorted order, not Go's randomized map order: the draw
	// sequence from offspring's RNG must depend only on (seed, parents),
	// never on map iteration, to satisfy RNG-DET.
	removeSet := make(map[int]bool)
	rng := offspring.RNG()
	for _, v := range sortedKeys(m) {
		if f[v] {
			removeSet[v] = true
		} else if rng.Bool(DBXTheta) {
			removeSet[v] = true
		}
	}
	for _, v := range sortedKeys(f) {
		if removeSet[v] {
			continue
		}
		if rng.Bool(DBXTheta) {
			removeSet[v] = true
		}
	}

	if err := offspring.UpdateByRemovedSet(sortedKeys(removeSet)); err != nil {
		return err
	}

	target := len(parents[0])
	if err := growRemovedSet(offspring, target); err != nil {
		return err
	}
	return shrinkRemovedSet(offspring, target)
}
