package crossover

import (
	"sort"

	"github.com/critnode/critnode/graph"
)

// IRR inheritance thresholds (§4.G): draws below p2 favor freq-2
// candidates, below p1 favor freq-1, otherwise freq-0. irrStop bounds
// how much of N the tabulated removeSet is allowed to reach before the
// final repair phase takes over.
const (
	irrP2       = 0.5
	irrP1       = 0.95
	irrStop     = 0.9
	irrMaxTries = 1000 // backstop against an unreachable stop ratio
)

// IRR (Inherit-Repair-Recombine) tabulates how many of the three parents
// include each vertex, seeds removeSet with the unanimous (freq-3)
// vertices, then draws the remainder preferentially from higher-frequency
// candidates until removeSet reaches irrStop·N, finally repairing to
// exactly N via the DCNP/CNP "remove one more" primitive (§4.G).
func IRR(offspring *graph.Graph, parents [][]int) error {
	if len(parents) != 3 {
		return ErrWrongParentCount
	}
	n := len(parents[0])

	freq := make(map[int]int)
	for _, p := range parents {
		for _, v := range p {
			freq[v]++
		}
	}

	byFreq := map[int][]int{0: {}, 1: {}, 2: {}, 3: {}}
	for _, v := range sortedKeysFromFreq(freq) {
		byFreq[freq[v]] = append(byFreq[freq[v]], v)
	}
	for v := 0; v < offspring.GetNumNodes(); v++ {
		if freq[v] == 0 {
			byFreq[0] = append(byFreq[0], v)
		}
	}

	removeSet := make(map[int]bool)
	for _, v := range byFreq[3] {
		removeSet[v] = true
	}

	rng := offspring.RNG()
	target := int(irrStop * float64(n))
	tries := 0
	for len(removeSet) < target && tries < irrMaxTries {
		tries++
		u := rng.Probability()
		var pool []int
		switch {
		case u < irrP2:
			pool = remaining(byFreq[2], removeSet)
		case u < irrP1:
			pool = remaining(byFreq[1], removeSet)
		}
		if len(pool) == 0 {
			pool = remaining(byFreq[0], removeSet)
		}
		if len(pool) == 0 {
			pool = remaining(byFreq[1], removeSet)
		}
		if len(pool) == 0 {
			pool = remaining(byFreq[2], removeSet)
		}
		if len(pool) == 0 {
			break
		}
		_, idx, err := pickUniform(rng, pool)
		if err != nil {
			return err
		}
		removeSet[pool[idx]] = true
	}

	if err := offspring.UpdateByRemovedSet(sortedKeys(removeSet)); err != nil {
		return err
	}

	for len(offspring.GetRemovedNodes()) < n {
		var v int
		var err error
		if offspring.IsDCNP() {
			v, err = offspring.FindBestNodeToRemove()
		} else {
			comp, cerr := offspring.SelectComponent()
			if cerr != nil {
				return cerr
			}
			v, err = offspring.ImpactSelectNodeFromComponent(comp)
		}
		if err != nil {
			return err
		}
		if err := offspring.RemoveNode(v); err != nil {
			return err
		}
	}
	return shrinkRemovedSet(offspring, n)
}

func sortedKeysFromFreq(freq map[int]int) []int {
	out := make([]int, 0, len(freq))
	for v := range freq {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func remaining(candidates []int, taken map[int]bool) []int {
	out := make([]int, 0, len(candidates))
	for _, v := range candidates {
		if !taken[v] {
			out = append(out, v)
		}
	}
	return out
}

func pickUniform(rng interface{ Index(int) (int, error) }, pool []int) (int, int, error) {
	idx, err := rng.Index(len(pool))
	if err != nil {
		return 0, 0, err
	}
	return pool[idx], idx, nil
}
