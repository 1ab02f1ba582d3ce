package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/cnp"
	"github.com/critnode/critnode/dcnp"
	"github.com/critnode/critnode/graph"
	"github.com/critnode/critnode/search"
)

func pathEdges(n int) [][2]int {
	edges := make([][2]int, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return edges
}

func newCNPGraph(t *testing.T, n, budget int, edges [][2]int, seed uint32) *graph.Graph {
	t.Helper()
	e, err := cnp.New(n, budget, edges, seed)
	require.NoError(t, err)
	return graph.NewCNP(e)
}

func newDCNPGraph(t *testing.T, n, budget, k int, edges [][2]int, seed uint32) *graph.Graph {
	t.Helper()
	e, err := dcnp.New(n, budget, k, edges, seed)
	require.NoError(t, err)
	return graph.NewDCNP(e)
}

func TestSetStrategyUnknownNameFails(t *testing.T) {
	g := newCNPGraph(t, 5, 1, pathEdges(5), 1)
	s := search.New(g, "run-1")
	err := s.SetStrategy("NOPE", search.ParamBag{})
	require.ErrorIs(t, err, search.ErrUnknownStrategy)
}

func TestRunWithoutStrategyFails(t *testing.T) {
	g := newCNPGraph(t, 5, 1, pathEdges(5), 1)
	s := search.New(g, "run-1")
	_, err := s.Run()
	require.ErrorIs(t, err, search.ErrStrategyNotSet)
}

func TestRunOnEmptyGraphFails(t *testing.T) {
	g := newCNPGraph(t, 0, 0, nil, 1)
	s := search.New(g, "run-1")
	require.NoError(t, s.SetStrategy("CBNS", search.ParamBag{MaxIdleSteps: 5}))
	_, err := s.Run()
	require.ErrorIs(t, err, search.ErrEmptyGraph)
}

func TestCBNSImprovesOrMatchesStarGraph(t *testing.T) {
	g := newCNPGraph(t, 16, 1, starEdges(15), 7)
	// Start from a feasible state: leaf 1 removed leaves 15 connected
	// vertices, i.e. 105 pairs.
	require.NoError(t, g.UpdateByRemovedSet([]int{1}))
	s := search.New(g, "run-cbns")
	require.NoError(t, s.SetStrategy("CBNS", search.ParamBag{MaxIdleSteps: 50}))
	res, err := s.Run()
	require.NoError(t, err)
	require.LessOrEqual(t, res.ObjValue, int64(105)) // never worse than the starting state
}

func starEdges(leaves int) [][2]int {
	edges := make([][2]int, 0, leaves)
	for i := 1; i <= leaves; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return edges
}

func TestCHNSRunsOnCycleGraph(t *testing.T) {
	g := newCNPGraph(t, 6, 2, cycleEdges(6), 3)
	s := search.New(g, "run-chns")
	require.NoError(t, s.SetStrategy("CHNS", search.ParamBag{MaxIdleSteps: 30, Theta: 0.5}))
	res, err := s.Run()
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.ObjValue, int64(0))
}

func cycleEdges(n int) [][2]int {
	edges := pathEdges(n)
	edges = append(edges, [2]int{n - 1, 0})
	return edges
}

func TestDLASRunsOnPathGraph(t *testing.T) {
	g := newCNPGraph(t, 9, 2, pathEdges(9), 11)
	s := search.New(g, "run-dlas")
	require.NoError(t, s.SetStrategy("DLAS", search.ParamBag{MaxIdleSteps: 40, HistoryLength: 4}))
	res, err := s.Run()
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.ObjValue, int64(0))
}

func TestBCLSRejectsCNPGraph(t *testing.T) {
	g := newCNPGraph(t, 5, 1, pathEdges(5), 1)
	s := search.New(g, "run-bcls")
	require.NoError(t, s.SetStrategy("BCLS", search.ParamBag{MaxIdleSteps: 10, SelectionProb: 0.8}))
	_, err := s.Run()
	require.ErrorIs(t, err, graph.ErrWrongVariant)
}

func TestBCLSRunsOnDCNPGraph(t *testing.T) {
	g := newDCNPGraph(t, 9, 2, 2, pathEdges(9), 5)
	s := search.New(g, "run-bcls-dcnp")
	require.NoError(t, s.SetStrategy("BCLS", search.ParamBag{MaxIdleSteps: 20, SelectionProb: 0.8}))
	res, err := s.Run()
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.ObjValue, int64(0))
}

func TestWithMetricsWiresIntoStrategy(t *testing.T) {
	reg := newTestRegistry()
	m := search.NewMetrics(reg)
	g := newCNPGraph(t, 9, 2, pathEdges(9), 2)
	s := search.New(g, "run-metrics", search.WithMetrics(m))
	require.NoError(t, s.SetStrategy("CBNS", search.ParamBag{MaxIdleSteps: 20}))
	_, err := s.Run()
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var moves float64
	for _, mf := range mfs {
		if mf.GetName() == "critnode_search_moves_total" {
			moves = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	require.Greater(t, moves, float64(0))
}
