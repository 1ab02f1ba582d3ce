package crossover

import (
	"errors"

	"github.com/critnode/critnode/graph"
	"github.com/critnode/critnode/search"
)

// RSCBeta is the Bernoulli keep-probability for vertices shared by both
// parents (§4.G).
const RSCBeta = 0.9

// ErrInvalidBeta is returned by RSC for a beta outside [0,1] (§6 "beta must
// be in [0,1]").
var ErrInvalidBeta = errors.New("crossover: beta must be in [0,1]")

// RSC (Reduce-Solve-Combine) permanently removes a Bernoulli-sampled
// subset of the parents' shared vertices from the offspring instance,
// solves the smaller residual problem from scratch, and unions the
// result back with the reduced set (§4.G).
//
// original must be a fresh, unmutated clone the caller is willing to have
// permanently shrunk by ReducedGraphByRemovedSet; callers that need to
// reuse original afterward should pass original.Clone().
func RSC(original *graph.Graph, parents [][]int, beta float64, runID string) error {
	if len(parents) != 2 {
		return ErrWrongParentCount
	}
	if beta < 0 || beta > 1 {
		return ErrInvalidBeta
	}
	m, f := toSet(parents[0]), toSet(parents[1])

	rng := original.RNG()
	reduced := make([]int, 0)
	for _, v := range sortedKeys(m) {
		if !f[v] {
			continue
		}
		if rng.Bool(beta) {
			reduced = append(reduced, v)
		}
	}

	if err := original.ReducedGraphByRemovedSet(reduced); err != nil {
		return err
	}

	residual, err := original.GetRandomFeasibleGraph()
	if err != nil {
		return err
	}

	strategyName := "CHNS"
	if residual.IsDCNP() {
		strategyName = "BCLS"
	}
	s := search.New(residual, runID)
	if err := s.SetStrategy(strategyName, search.ParamBag{}); err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}

	union := toSet(reduced)
	for _, v := range res.Solution {
		union[v] = true
	}
	return original.UpdateByRemovedSet(sortedKeys(union))
}
